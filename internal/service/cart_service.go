package service

import (
	"context"
	"errors"

	"github.com/anash06/E-commerce/internal/model"
	"gorm.io/gorm"
)

// CartStore 会话购物车存取（生产环境为redis实现）
type CartStore interface {
	AddItem(ctx context.Context, userID, productID int64, qty int32) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	GetCart(ctx context.Context, userID int64) (map[int64]int32, error)
}

// ProductReader 目录只读访问
type ProductReader interface {
	GetProductByID(ctx context.Context, productID int64) (*model.Product, error)
}

type CartService struct {
	cartStore CartStore
	products  ProductReader
}

func NewCartService(cartStore CartStore, products ProductReader) *CartService {
	return &CartService{
		cartStore: cartStore,
		products:  products,
	}
}

// CartItemView 购物车条目视图：实时目录价 × 数量
type CartItemView struct {
	Product  *model.Product `json:"product"`
	Quantity int32          `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// CartView 购物车整体视图
type CartView struct {
	Items []*CartItemView `json:"items"`
	Total float64         `json:"total"`
}

// Add 加入购物车
// 只校验数量为正与商品存在，不校验库存——库存在结算时才检查
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int32) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		return err
	}
	return s.cartStore.AddItem(ctx, userID, productID, qty)
}

// Remove 移除商品
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	return s.cartStore.RemoveItem(ctx, userID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.cartStore.Clear(ctx, userID)
}

// View 购物车视图，重新拉取商品数据计算小计
// 只有商品已下架的条目跳过，查询失败原样上抛
func (s *CartService) View(ctx context.Context, userID int64) (*CartView, error) {
	cart, err := s.cartStore.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]*CartItemView, 0, len(cart))}
	for pid, qty := range cart {
		product, err := s.products.GetProductByID(ctx, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		subtotal := product.Price * float64(qty)
		view.Items = append(view.Items, &CartItemView{
			Product:  product,
			Quantity: qty,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}
	return view, nil
}
