package service

import (
	"context"
	"time"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/pkg/utils"
)

// PaymentStore 支付流水持久化操作
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetLatestPayment(ctx context.Context, orderID int64) (*model.Payment, error)
	ListOrderPayments(ctx context.Context, orderID int64) ([]*model.Payment, error)
	VerifyOrderPayment(ctx context.Context, orderID int64, toOrderStatus, paymentStatus, notes, fallbackTxnRef string) error
}

// 审核动作
const (
	VerifyActionConfirm = "confirm"
	VerifyActionReject  = "reject"
)

// PaymentService 人工对账的支付流水管理
// 一个订单可以有多条流水，以最新一条（id最大）为准
type PaymentService struct {
	paymentStore PaymentStore
	orderStore   OrderStore
	pub          Publisher
}

func NewPaymentService(paymentStore PaymentStore, orderStore OrderStore, pub Publisher) *PaymentService {
	return &PaymentService{
		paymentStore: paymentStore,
		orderStore:   orderStore,
		pub:          pub,
	}
}

// Submit 客户提交转账回执
// 只允许pending订单提交；重复提交追加新流水，旧流水保留为历史
func (s *PaymentService) Submit(ctx context.Context, orderID int64, transactionID string) (*model.Payment, error) {
	if transactionID == "" {
		return nil, ErrEmptyTransactionRef
	}

	orderInfo, err := s.orderStore.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if orderInfo.Status != model.OrderStatusPending {
		return nil, ErrOrderNotPayable
	}

	now := time.Now()
	payment := &model.Payment{
		OrderID:       orderID,
		Amount:        orderInfo.Total,
		Method:        model.PaymentMethodUPI,
		Status:        model.PaymentStatusSubmitted,
		TransactionID: transactionID,
		PaidAt:        &now,
	}
	if err := s.paymentStore.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Verify 管理员审核支付
// confirm: 订单 pending -> confirmed，最新流水置为success
// reject:  订单 pending -> cancelled，最新流水置为failed
// 订单无流水时补一条管理员流水，保证审核结果有据可查
// 状态CAS与流水写入由store在同一事务内完成，并发审核只有一个生效
func (s *PaymentService) Verify(ctx context.Context, orderID int64, action, notes string) error {
	var toStatus, paymentStatus, txnRef string
	switch action {
	case VerifyActionConfirm:
		toStatus = model.OrderStatusConfirmed
		paymentStatus = model.PaymentStatusSuccess
		txnRef = utils.AdminConfirmTxnRef(orderID)
	case VerifyActionReject:
		toStatus = model.OrderStatusCancelled
		paymentStatus = model.PaymentStatusFailed
		txnRef = utils.AdminRejectTxnRef(orderID)
	default:
		return ErrInvalidAction
	}

	if err := s.paymentStore.VerifyOrderPayment(ctx, orderID, toStatus, paymentStatus, notes, txnRef); err != nil {
		return err
	}

	publishExportSync(s.pub, "payment_verified")
	return nil
}

// GetLatestPayment 当前生效的支付流水
func (s *PaymentService) GetLatestPayment(ctx context.Context, orderID int64) (*model.Payment, error) {
	return s.paymentStore.GetLatestPayment(ctx, orderID)
}

// ListPayments 订单全部流水（含历史）
func (s *PaymentService) ListPayments(ctx context.Context, orderID int64) ([]*model.Payment, error) {
	return s.paymentStore.ListOrderPayments(ctx, orderID)
}
