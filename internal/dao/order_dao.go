package dao

import (
	"context"
	"errors"
	"time"

	"github.com/anash06/E-commerce/internal/model"
	"gorm.io/gorm"
)

var ErrOrderStatusChanged = errors.New("订单状态已变更")

type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{
		db: db,
	}
}

// OrderWithPayment 管理端订单视图：客户名 + 最新一笔支付
type OrderWithPayment struct {
	ID              int64     `gorm:"column:id" json:"id"`
	CustomerID      int64     `gorm:"column:customer_id" json:"customer_id"`
	CustomerName    string    `gorm:"column:customer_name" json:"customer_name"`
	Status          string    `gorm:"column:status" json:"status"`
	Total           float64   `gorm:"column:total" json:"total"`
	ShippingAddress string    `gorm:"column:shipping_address" json:"shipping_address"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	PaymentTxn      string    `gorm:"column:payment_txn" json:"payment_txn"`
	PaymentStatus   string    `gorm:"column:payment_status" json:"payment_status"`
}

// CreateOrderWithItems 在单事务内完成下单：
// 逐项读取商品快照单价 -> 条件扣减库存 -> 写入订单与行项
// 任一商品扣减失败则整单回滚，不产生部分扣减
func (d *OrderDao) CreateOrderWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	if len(items) == 0 {
		return gorm.ErrEmptySlice
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, item := range items {
			var product model.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return err
			}
			if err := decrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			// 单价快照取事务内读取到的目录价
			item.Price = product.Price
			total += product.Price * float64(item.Quantity)
		}

		order.Total = total
		order.Status = model.OrderStatusPending
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		return tx.CreateInBatches(items, len(items)).Error
	})
}

// GetOrderByID 根据ID获取订单
func (d *OrderDao) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderWithItems 获取订单及其行项（发票视图）
func (d *OrderDao) GetOrderWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	err := d.db.WithContext(ctx).Preload("Items").Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetCustomerOrders 获取客户订单列表
func (d *OrderDao) GetCustomerOrders(ctx context.Context, customerID int64, page, pageSize int32) ([]*model.Order, int64, error) {
	var orders []*model.Order
	var total int64
	offset := (page - 1) * pageSize

	// 获取总数
	if err := d.db.WithContext(ctx).Model(&model.Order{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取分页数据
	err := d.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(int(pageSize)).
		Offset(int(offset)).
		Find(&orders).Error

	return orders, total, err
}

// ListOrdersWithPayment 管理端全量订单列表，关联客户名与最新支付记录
// 最新支付 = 该订单payments中id最大的一条
func (d *OrderDao) ListOrdersWithPayment(ctx context.Context, page, pageSize int32) ([]*OrderWithPayment, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*OrderWithPayment
	offset := (page - 1) * pageSize
	err := d.db.WithContext(ctx).Raw(`
		SELECT o.id, o.customer_id, u.name AS customer_name, o.status, o.total,
		       o.shipping_address, o.created_at,
		       p.transaction_id AS payment_txn, p.status AS payment_status
		FROM orders o
		LEFT JOIN users u ON u.id = o.customer_id
		LEFT JOIN payments p ON p.order_id = o.id AND p.id = (
			SELECT MAX(id) FROM payments WHERE order_id = o.id
		)
		ORDER BY o.id DESC
		LIMIT ? OFFSET ?`, pageSize, offset).Scan(&rows).Error

	return rows, total, err
}

// UpdateOrderStatus 状态CAS更新，防止并发下状态被悄悄改写
func (d *OrderDao) UpdateOrderStatus(ctx context.Context, orderID int64, fromStatus, toStatus string) error {
	result := d.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, fromStatus).
		Update("status", toStatus)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderStatusChanged // 统一错误类型
	}
	return nil
}
