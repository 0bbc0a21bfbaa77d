package dao

import (
	"context"
	"errors"
	"time"

	"github.com/anash06/E-commerce/internal/model"
	"gorm.io/gorm"
)

type PaymentDao struct {
	db *gorm.DB
}

func NewPaymentDao(db *gorm.DB) *PaymentDao {
	return &PaymentDao{db: db}
}

// CreatePayment 追加一条支付记录（账本只增不改写历史行的归属）
func (d *PaymentDao) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return d.db.WithContext(ctx).Create(payment).Error
}

// GetLatestPayment 获取订单最新一条支付记录（id最大者）
// 状态展示与核验统一走这里，保证"最新支付为准"规则只有一处实现
func (d *PaymentDao) GetLatestPayment(ctx context.Context, orderID int64) (*model.Payment, error) {
	var payment model.Payment
	err := d.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id DESC").
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListOrderPayments 订单的全部支付记录（新到旧）
func (d *PaymentDao) ListOrderPayments(ctx context.Context, orderID int64) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := d.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id DESC").
		Find(&payments).Error
	return payments, err
}

// VerifyOrderPayment 核验落账：订单状态CAS与支付流水写入在同一事务内完成
// 订单非pending时整体失败，任一写入失败则两者一起回滚，
// 不会出现订单已confirmed而流水仍是submitted的中间态
// 无流水时补一条合成流水（交易号由调用方给定），金额取订单总额
func (d *PaymentDao) VerifyOrderPayment(ctx context.Context, orderID int64, toOrderStatus, paymentStatus, notes, fallbackTxnRef string) error {
	now := time.Now()
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", orderID, model.OrderStatusPending).
			Update("status", toOrderStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderStatusChanged
		}

		var latest model.Payment
		err := tx.Where("order_id = ?", orderID).Order("id DESC").First(&latest).Error
		switch {
		case err == nil:
			return tx.Model(&model.Payment{}).
				Where("id = ?", latest.ID).
				Updates(map[string]interface{}{
					"status":  paymentStatus,
					"notes":   notes,
					"paid_at": now,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&model.Payment{
				OrderID:       orderID,
				Amount:        order.Total,
				Method:        model.PaymentMethodUPI,
				Status:        paymentStatus,
				TransactionID: fallbackTxnRef,
				Notes:         notes,
				PaidAt:        &now,
			}).Error
		default:
			return err
		}
	})
}
