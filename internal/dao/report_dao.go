package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ReportDao struct {
	db *gorm.DB
}

func NewReportDao(db *gorm.DB) *ReportDao {
	return &ReportDao{db: db}
}

// DailySales 按自然日聚合的销售概要
type DailySales struct {
	Day     string  `gorm:"column:day" json:"day"`
	Orders  int64   `gorm:"column:orders" json:"orders"`
	Revenue float64 `gorm:"column:revenue" json:"revenue"`
}

// OrderReportRow 指定日期的订单明细，附商品名拼接串
type OrderReportRow struct {
	ID           int64     `gorm:"column:id" json:"id"`
	CustomerID   int64     `gorm:"column:customer_id" json:"customer_id"`
	CustomerName string    `gorm:"column:customer_name" json:"customer_name"`
	Status       string    `gorm:"column:status" json:"status"`
	Total        float64   `gorm:"column:total" json:"total"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	ProductNames string    `gorm:"column:product_names" json:"product_names"`
}

// DailySummary 最近N个自然日的订单数与营收（日期降序）
func (d *ReportDao) DailySummary(ctx context.Context, days int) ([]*DailySales, error) {
	var rows []*DailySales
	err := d.db.WithContext(ctx).Raw(`
		SELECT DATE(created_at) AS day, COUNT(*) AS orders, SUM(total) AS revenue
		FROM orders
		GROUP BY DATE(created_at)
		ORDER BY day DESC
		LIMIT ?`, days).Scan(&rows).Error
	return rows, err
}

// OrdersForDate 某日全部订单，product_names为该单商品名的逗号拼接
// 只读派生视图，不做任何变更
// GROUP_CONCAT只用单参数形式，默认逗号分隔在MySQL和sqlite下行为一致
func (d *ReportDao) OrdersForDate(ctx context.Context, date string) ([]*OrderReportRow, error) {
	var rows []*OrderReportRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT o.id, o.customer_id, u.name AS customer_name, o.status, o.total, o.created_at,
		       (
		         SELECT GROUP_CONCAT(p.name)
		         FROM order_items oi
		         LEFT JOIN products p ON p.id = oi.product_id
		         WHERE oi.order_id = o.id
		       ) AS product_names
		FROM orders o
		LEFT JOIN users u ON u.id = o.customer_id
		WHERE DATE(o.created_at) = ?
		ORDER BY o.id DESC`, date).Scan(&rows).Error
	return rows, err
}
