package model

import (
	"strings"
	"time"
)

// 订单状态机：pending为初始态，dispatched/cancelled为终态
const (
	OrderStatusPending    = "pending"    // 待支付确认
	OrderStatusConfirmed  = "confirmed"  // 支付已确认
	OrderStatusDispatched = "dispatched" // 已发货
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// ShippingAddress 收货地址的结构化字段
// 展示串在下单时派生一次后冻结，后续不再重新计算
type ShippingAddress struct {
	DoorNo    string `gorm:"size:50" json:"door_no"`
	Street    string `gorm:"size:100" json:"street"`
	Landmark  string `gorm:"size:100" json:"landmark"`
	Place     string `gorm:"size:100" json:"place"`
	District  string `gorm:"size:100" json:"district"`
	State     string `gorm:"size:100" json:"state"`
	AltMobile string `gorm:"size:20" json:"alt_mobile"`
	Pincode   string `gorm:"size:20" json:"pincode"`
}

// Compose 拼接非空字段，pincode以" - xxx"后缀形式附加
func (a ShippingAddress) Compose() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.DoorNo, a.Street, a.Landmark, a.Place, a.District, a.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	s := strings.Join(parts, ", ")
	if a.Pincode != "" {
		s += " - " + a.Pincode
	}
	return s
}

// Order 订单模型
type Order struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerID      int64           `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Status          string          `gorm:"column:status;size:20;not null;default:pending" json:"status"`
	Total           float64         `gorm:"column:total;not null" json:"total"`
	ShippingAddress string          `gorm:"column:shipping_address;size:500" json:"shipping_address"`
	Address         ShippingAddress `gorm:"embedded" json:"address"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单行项，Price为下单时刻的商品单价快照
// 商品后续调价不影响历史订单金额
type OrderItem struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   int64   `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID int64   `gorm:"column:product_id;not null;index" json:"product_id"`
	Quantity  int32   `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
