// Package service 订单工作流实现
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// OrderStore 订单持久化操作
type OrderStore interface {
	CreateOrderWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetOrderWithItems(ctx context.Context, orderID int64) (*model.Order, error)
	GetCustomerOrders(ctx context.Context, customerID int64, page, pageSize int32) ([]*model.Order, int64, error)
	ListOrdersWithPayment(ctx context.Context, page, pageSize int32) ([]*dao.OrderWithPayment, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, fromStatus, toStatus string) error
}

// OrderItemInput 下单条目
type OrderItemInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required"`
}

type OrderService struct {
	orderStore OrderStore
	cartStore  CartStore
	redisDB    redis.UniversalClient
	pub        Publisher
}

func NewOrderService(orderStore OrderStore, cartStore CartStore, redisDB redis.UniversalClient, pub Publisher) *OrderService {
	return &OrderService{
		orderStore: orderStore,
		cartStore:  cartStore,
		redisDB:    redisDB,
		pub:        pub,
	}
}

// CreateOrder 下单（直接购买或管理员代客下单共用）
// 整单在一个数据库事务内完成：校验库存、快照单价、扣减、落库
// 任一条目库存不足则全单失败，不产生部分扣减
func (s *OrderService) CreateOrder(ctx context.Context, customerID int64, address model.ShippingAddress, items []OrderItemInput) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	// 防重复提交锁；短超时，避免阻塞
	unlock, err := s.acquireSubmitLock(ctx, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order := &model.Order{
		CustomerID:      customerID,
		Address:         address,
		ShippingAddress: address.Compose(), // 展示串下单时派生一次，此后冻结
	}
	orderItems := make([]*model.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, &model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orderStore.CreateOrderWithItems(ctx, order, orderItems); err != nil {
		return nil, err
	}
	order.Items = make([]model.OrderItem, 0, len(orderItems))
	for _, item := range orderItems {
		order.Items = append(order.Items, *item)
	}

	publishExportSync(s.pub, "order_created")
	return order, nil
}

// CheckoutCart 购物车结算：读取会话购物车转为订单，成功后清空购物车
func (s *OrderService) CheckoutCart(ctx context.Context, customerID int64, address model.ShippingAddress) (*model.Order, error) {
	cart, err := s.cartStore.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	// 固定条目顺序，避免map遍历顺序影响行项写入
	productIDs := make([]int64, 0, len(cart))
	for pid := range cart {
		productIDs = append(productIDs, pid)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	items := make([]OrderItemInput, 0, len(cart))
	for _, pid := range productIDs {
		items = append(items, OrderItemInput{ProductID: pid, Quantity: cart[pid]})
	}

	order, err := s.CreateOrder(ctx, customerID, address, items)
	if err != nil {
		return nil, err
	}

	// 订单已提交，清空失败不影响结果
	if err := s.cartStore.Clear(ctx, customerID); err != nil {
		logger.Warn("结算后清空购物车失败", "customer_id", customerID, "err", err)
	}
	return order, nil
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.orderStore.GetOrderByID(ctx, orderID)
}

// GetInvoice 发票视图：订单与行项
func (s *OrderService) GetInvoice(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.orderStore.GetOrderWithItems(ctx, orderID)
}

// ListCustomerOrders 客户订单列表
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID int64, page, pageSize int32) ([]*model.Order, int64, error) {
	return s.orderStore.GetCustomerOrders(ctx, customerID, page, pageSize)
}

// ListOrders 管理端订单列表（含客户名与最新支付）
func (s *OrderService) ListOrders(ctx context.Context, page, pageSize int32) ([]*dao.OrderWithPayment, int64, error) {
	return s.orderStore.ListOrdersWithPayment(ctx, page, pageSize)
}

// Dispatch 发货：仅允许 confirmed -> dispatched
func (s *OrderService) Dispatch(ctx context.Context, orderID int64) error {
	if _, err := s.orderStore.GetOrderByID(ctx, orderID); err != nil {
		return err
	}
	if err := s.orderStore.UpdateOrderStatus(ctx, orderID, model.OrderStatusConfirmed, model.OrderStatusDispatched); err != nil {
		return err
	}
	publishExportSync(s.pub, "order_dispatched")
	return nil
}

// acquireSubmitLock 同一客户的下单互斥锁，防止双击重复提交
// redis未配置时退化为无锁（单测场景）
func (s *OrderService) acquireSubmitLock(ctx context.Context, customerID int64) (func(), error) {
	if s.redisDB == nil {
		return func() {}, nil
	}
	lockKey := fmt.Sprintf("order:lock:user:%d", customerID)
	lctx, lcancel := context.WithTimeout(ctx, 80*time.Millisecond)
	defer lcancel()
	locked, err := s.redisDB.SetNX(lctx, lockKey, "1", 10*time.Second).Result()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrDuplicateSubmit
	}
	return func() {
		c, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_ = s.redisDB.Del(c, lockKey).Err()
	}, nil
}
