package model

import (
	"time"
)

// 支付状态
const (
	PaymentStatusSubmitted = "submitted" // 客户已提交，等待核验
	PaymentStatusSuccess   = "success"   // 管理员确认到账
	PaymentStatusFailed    = "failed"    // 管理员驳回
)

// PaymentMethodUPI 固定的人工收款渠道
const PaymentMethodUPI = "upi"

// Payment 支付记录，按订单追加写入
// 同一订单可能有多条记录，状态展示与核验只认最新一条（id最大）
type Payment struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID       int64      `gorm:"column:order_id;not null;index" json:"order_id"`
	Amount        float64    `gorm:"column:amount;not null" json:"amount"`
	Method        string     `gorm:"column:method;size:20;not null;default:upi" json:"method"`
	Status        string     `gorm:"column:status;size:20;not null" json:"status"`
	TransactionID string     `gorm:"column:transaction_id;size:100" json:"transaction_id"`
	Notes         string     `gorm:"column:notes;size:255" json:"notes"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
