package service

import (
	"context"
	"errors"
	"testing"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_Add(t *testing.T) {
	products := &stubProductReader{products: map[int64]*model.Product{
		1: {ID: 1, Name: "Soap", Price: 25},
	}}

	t.Run("non positive quantity rejected", func(t *testing.T) {
		svc := NewCartService(&stubCartStore{}, products)
		assert.ErrorIs(t, svc.Add(context.Background(), 1, 1, 0), ErrInvalidQuantity)
		assert.ErrorIs(t, svc.Add(context.Background(), 1, 1, -2), ErrInvalidQuantity)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		cart := &stubCartStore{}
		svc := NewCartService(cart, products)
		assert.Error(t, svc.Add(context.Background(), 1, 999, 1))
		assert.Empty(t, cart.cart)
	})

	t.Run("quantities accumulate", func(t *testing.T) {
		cart := &stubCartStore{}
		svc := NewCartService(cart, products)
		require.NoError(t, svc.Add(context.Background(), 1, 1, 2))
		require.NoError(t, svc.Add(context.Background(), 1, 1, 3))
		assert.Equal(t, int32(5), cart.cart[1])
	})
}

func TestCartService_View(t *testing.T) {
	products := &stubProductReader{products: map[int64]*model.Product{
		1: {ID: 1, Name: "Soap", Price: 25},
		2: {ID: 2, Name: "Brush", Price: 40},
	}}

	t.Run("totals from live catalog prices", func(t *testing.T) {
		cart := &stubCartStore{cart: map[int64]int32{1: 2, 2: 1}}
		svc := NewCartService(cart, products)

		view, err := svc.View(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, view.Items, 2)
		assert.Equal(t, 90.0, view.Total)
	})

	t.Run("vanished products skipped", func(t *testing.T) {
		cart := &stubCartStore{cart: map[int64]int32{1: 1, 999: 3}}
		svc := NewCartService(cart, products)

		view, err := svc.View(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 25.0, view.Total)
	})

	t.Run("catalog errors propagate", func(t *testing.T) {
		cart := &stubCartStore{cart: map[int64]int32{1: 2}}
		broken := &stubProductReader{err: errors.New("db gone")}
		svc := NewCartService(cart, broken)

		// 暂时性查询失败不能伪装成空购物车
		view, err := svc.View(context.Background(), 1)
		assert.Error(t, err)
		assert.Nil(t, view)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc := NewCartService(&stubCartStore{}, products)
		view, err := svc.View(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Zero(t, view.Total)
	})
}

func TestCartService_RemoveAndClear(t *testing.T) {
	products := &stubProductReader{products: map[int64]*model.Product{
		1: {ID: 1, Name: "Soap", Price: 25},
	}}
	cart := &stubCartStore{cart: map[int64]int32{1: 2}}
	svc := NewCartService(cart, products)

	require.NoError(t, svc.Remove(context.Background(), 1, 1))
	assert.Empty(t, cart.cart)

	require.NoError(t, svc.Add(context.Background(), 1, 1, 1))
	require.NoError(t, svc.Clear(context.Background(), 1))
	assert.True(t, cart.cleared)
}
