package dao

import (
	"context"
	"testing"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPaymentDao_LatestWins(t *testing.T) {
	db := newTestDB(t)
	d := NewPaymentDao(db)
	ctx := context.Background()

	// 无流水
	_, err := d.GetLatestPayment(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, d.CreatePayment(ctx, &model.Payment{
		OrderID:       1,
		Amount:        500,
		Method:        model.PaymentMethodUPI,
		Status:        model.PaymentStatusSubmitted,
		TransactionID: "TXN-OLD",
	}))
	require.NoError(t, d.CreatePayment(ctx, &model.Payment{
		OrderID:       1,
		Amount:        500,
		Method:        model.PaymentMethodUPI,
		Status:        model.PaymentStatusSubmitted,
		TransactionID: "TXN-NEW",
	}))
	// 其他订单的流水不串台
	require.NoError(t, d.CreatePayment(ctx, &model.Payment{
		OrderID:       2,
		Amount:        100,
		Status:        model.PaymentStatusSubmitted,
		TransactionID: "TXN-OTHER",
	}))

	latest, err := d.GetLatestPayment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "TXN-NEW", latest.TransactionID)

	payments, err := d.ListOrderPayments(ctx, 1)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	// 新到旧
	assert.Equal(t, "TXN-NEW", payments[0].TransactionID)
	assert.Equal(t, "TXN-OLD", payments[1].TransactionID)
}

func TestPaymentDao_VerifyOrderPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm updates order and latest payment together", func(t *testing.T) {
		db := newTestDB(t)
		d := NewPaymentDao(db)

		order := &model.Order{CustomerID: 1, Status: model.OrderStatusPending, Total: 500}
		require.NoError(t, db.Create(order).Error)
		require.NoError(t, d.CreatePayment(ctx, &model.Payment{
			OrderID:       order.ID,
			Amount:        500,
			Status:        model.PaymentStatusSubmitted,
			TransactionID: "TXN-OLD",
		}))
		require.NoError(t, d.CreatePayment(ctx, &model.Payment{
			OrderID:       order.ID,
			Amount:        500,
			Status:        model.PaymentStatusSubmitted,
			TransactionID: "TXN-NEW",
		}))

		require.NoError(t, d.VerifyOrderPayment(ctx, order.ID,
			model.OrderStatusConfirmed, model.PaymentStatusSuccess, "verified", "ADMINCONF0"))

		var got model.Order
		require.NoError(t, db.First(&got, order.ID).Error)
		assert.Equal(t, model.OrderStatusConfirmed, got.Status)

		latest, err := d.GetLatestPayment(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "TXN-NEW", latest.TransactionID)
		assert.Equal(t, model.PaymentStatusSuccess, latest.Status)
		assert.Equal(t, "verified", latest.Notes)
		require.NotNil(t, latest.PaidAt)

		// 旧流水保持历史原样
		payments, err := d.ListOrderPayments(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, model.PaymentStatusSubmitted, payments[1].Status)
	})

	t.Run("second verification rejected", func(t *testing.T) {
		db := newTestDB(t)
		d := NewPaymentDao(db)

		order := &model.Order{CustomerID: 1, Status: model.OrderStatusPending, Total: 500}
		require.NoError(t, db.Create(order).Error)

		require.NoError(t, d.VerifyOrderPayment(ctx, order.ID,
			model.OrderStatusConfirmed, model.PaymentStatusSuccess, "", "ADMINCONF0"))
		err := d.VerifyOrderPayment(ctx, order.ID,
			model.OrderStatusCancelled, model.PaymentStatusFailed, "", "ADMINREJ0")
		assert.ErrorIs(t, err, ErrOrderStatusChanged)

		// 第二次核验整体失败，第一次的结果不被改写
		var got model.Order
		require.NoError(t, db.First(&got, order.ID).Error)
		assert.Equal(t, model.OrderStatusConfirmed, got.Status)
		latest, err := d.GetLatestPayment(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusSuccess, latest.Status)
	})

	t.Run("no receipt synthesizes ledger row", func(t *testing.T) {
		db := newTestDB(t)
		d := NewPaymentDao(db)

		order := &model.Order{CustomerID: 1, Status: model.OrderStatusPending, Total: 250}
		require.NoError(t, db.Create(order).Error)

		require.NoError(t, d.VerifyOrderPayment(ctx, order.ID,
			model.OrderStatusCancelled, model.PaymentStatusFailed, "no proof", "ADMINREJ123"))

		latest, err := d.GetLatestPayment(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, 250.0, latest.Amount)
		assert.Equal(t, model.PaymentMethodUPI, latest.Method)
		assert.Equal(t, model.PaymentStatusFailed, latest.Status)
		assert.Equal(t, "ADMINREJ123", latest.TransactionID)
	})

	t.Run("missing order", func(t *testing.T) {
		db := newTestDB(t)
		d := NewPaymentDao(db)

		err := d.VerifyOrderPayment(ctx, 404,
			model.OrderStatusConfirmed, model.PaymentStatusSuccess, "", "ADMINCONF0")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
