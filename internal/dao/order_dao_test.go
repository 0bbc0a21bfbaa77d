package dao

import (
	"context"
	"testing"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDao_CreateOrderWithItems(t *testing.T) {
	db := newTestDB(t)
	d := NewOrderDao(db)
	ctx := context.Background()

	soap := mustCreateProduct(t, db, "Soap", 25, 10)
	brush := mustCreateProduct(t, db, "Brush", 40, 5)

	order := &model.Order{CustomerID: 1, ShippingAddress: "12A, Gandhi Street - 600004"}
	items := []*model.OrderItem{
		{ProductID: soap.ID, Quantity: 2},
		{ProductID: brush.ID, Quantity: 1},
	}
	require.NoError(t, d.CreateOrderWithItems(ctx, order, items))

	// 总额与状态在事务内计算
	assert.Equal(t, 90.0, order.Total)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	// 单价快照落在行项上
	got, err := d.GetOrderWithItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 25.0, got.Items[0].Price)
	assert.Equal(t, 40.0, got.Items[1].Price)

	// 库存已扣减
	var p model.Product
	require.NoError(t, db.First(&p, soap.ID).Error)
	assert.Equal(t, int32(8), p.Stock)
}

// 单价快照：下单后调价不影响既有订单金额
func TestOrderDao_PriceSnapshotImmutable(t *testing.T) {
	db := newTestDB(t)
	d := NewOrderDao(db)
	ctx := context.Background()

	soap := mustCreateProduct(t, db, "Soap", 25, 10)

	order := &model.Order{CustomerID: 1}
	require.NoError(t, d.CreateOrderWithItems(ctx, order, []*model.OrderItem{
		{ProductID: soap.ID, Quantity: 2},
	}))

	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", soap.ID).Update("price", 100).Error)

	got, err := d.GetOrderWithItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Total)
	assert.Equal(t, 25.0, got.Items[0].Price)
}

// 任一行项库存不足则整单回滚，不产生部分扣减
func TestOrderDao_CreateOrderAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	d := NewOrderDao(db)
	ctx := context.Background()

	soap := mustCreateProduct(t, db, "Soap", 25, 10)
	rare := mustCreateProduct(t, db, "Rare", 500, 1)

	order := &model.Order{CustomerID: 1}
	err := d.CreateOrderWithItems(ctx, order, []*model.OrderItem{
		{ProductID: soap.ID, Quantity: 2},
		{ProductID: rare.ID, Quantity: 5},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// 第一个商品的扣减也必须回滚
	var p model.Product
	require.NoError(t, db.First(&p, soap.ID).Error)
	assert.Equal(t, int32(10), p.Stock)

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderDao_GetCustomerOrders(t *testing.T) {
	db := newTestDB(t)
	d := NewOrderDao(db)
	ctx := context.Background()

	soap := mustCreateProduct(t, db, "Soap", 25, 100)
	for i := 0; i < 3; i++ {
		order := &model.Order{CustomerID: 7}
		require.NoError(t, d.CreateOrderWithItems(ctx, order, []*model.OrderItem{
			{ProductID: soap.ID, Quantity: 1},
		}))
	}
	other := &model.Order{CustomerID: 8}
	require.NoError(t, d.CreateOrderWithItems(ctx, other, []*model.OrderItem{
		{ProductID: soap.ID, Quantity: 1},
	}))

	orders, total, err := d.GetCustomerOrders(ctx, 7, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 3)
	for _, o := range orders {
		assert.Equal(t, int64(7), o.CustomerID)
	}
}

func TestOrderDao_UpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	d := NewOrderDao(db)
	ctx := context.Background()

	soap := mustCreateProduct(t, db, "Soap", 25, 10)
	order := &model.Order{CustomerID: 1}
	require.NoError(t, d.CreateOrderWithItems(ctx, order, []*model.OrderItem{
		{ProductID: soap.ID, Quantity: 1},
	}))

	// pending -> confirmed
	require.NoError(t, d.UpdateOrderStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed))

	// 二次confirm：前置状态已不匹配
	err := d.UpdateOrderStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderStatusChanged)

	// confirmed -> dispatched
	require.NoError(t, d.UpdateOrderStatus(ctx, order.ID, model.OrderStatusConfirmed, model.OrderStatusDispatched))

	got, err := d.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDispatched, got.Status)
}
