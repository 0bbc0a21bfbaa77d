package service

// 测试桩：以最小内存实现替代 dao 与 mq，聚焦service层逻辑

import (
	"context"
	"time"

	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/model"
	"gorm.io/gorm"
)

type stubOrderStore struct {
	prices    map[int64]float64 // product_id -> 目录价
	orders    map[int64]*model.Order
	nextID    int64
	createErr error
	statusErr error

	createdItems []*model.OrderItem
	statusFrom   string
	statusTo     string
}

func newStubOrderStore() *stubOrderStore {
	return &stubOrderStore{
		prices: map[int64]float64{},
		orders: map[int64]*model.Order{},
		nextID: 1,
	}
}

func (s *stubOrderStore) CreateOrderWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	if s.createErr != nil {
		return s.createErr
	}
	var total float64
	for _, item := range items {
		item.Price = s.prices[item.ProductID]
		total += item.Price * float64(item.Quantity)
	}
	order.ID = s.nextID
	s.nextID++
	order.Total = total
	order.Status = model.OrderStatusPending
	for _, item := range items {
		item.OrderID = order.ID
	}
	s.createdItems = items
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderStore) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderStore) GetOrderWithItems(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.GetOrderByID(ctx, orderID)
}

func (s *stubOrderStore) GetCustomerOrders(ctx context.Context, customerID int64, page, pageSize int32) ([]*model.Order, int64, error) {
	var out []*model.Order
	for _, order := range s.orders {
		if order.CustomerID == customerID {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubOrderStore) ListOrdersWithPayment(ctx context.Context, page, pageSize int32) ([]*dao.OrderWithPayment, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderStore) UpdateOrderStatus(ctx context.Context, orderID int64, fromStatus, toStatus string) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	order, ok := s.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if order.Status != fromStatus {
		return dao.ErrOrderStatusChanged
	}
	s.statusFrom = fromStatus
	s.statusTo = toStatus
	order.Status = toStatus
	return nil
}

type stubCartStore struct {
	cart     map[int64]int32
	getErr   error
	clearErr error
	cleared  bool
}

func (s *stubCartStore) AddItem(ctx context.Context, userID, productID int64, qty int32) error {
	if s.cart == nil {
		s.cart = map[int64]int32{}
	}
	s.cart[productID] += qty
	return nil
}

func (s *stubCartStore) RemoveItem(ctx context.Context, userID, productID int64) error {
	delete(s.cart, productID)
	return nil
}

func (s *stubCartStore) Clear(ctx context.Context, userID int64) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = true
	s.cart = map[int64]int32{}
	return nil
}

func (s *stubCartStore) GetCart(ctx context.Context, userID int64) (map[int64]int32, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cart, nil
}

type stubPaymentStore struct {
	orders    *stubOrderStore
	payments  map[int64][]*model.Payment // order_id -> 按插入序
	nextID    int64
	createErr error
	latestErr error
	verifyErr error

	updatedID     int64
	updatedStatus string
	updatedNotes  string
}

func newStubPaymentStore(orders *stubOrderStore) *stubPaymentStore {
	return &stubPaymentStore{
		orders:   orders,
		payments: map[int64][]*model.Payment{},
		nextID:   1,
	}
}

func (s *stubPaymentStore) CreatePayment(ctx context.Context, payment *model.Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	payment.ID = s.nextID
	s.nextID++
	payment.CreatedAt = time.Now()
	s.payments[payment.OrderID] = append(s.payments[payment.OrderID], payment)
	return nil
}

func (s *stubPaymentStore) GetLatestPayment(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	rows := s.payments[orderID]
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return rows[len(rows)-1], nil
}

func (s *stubPaymentStore) ListOrderPayments(ctx context.Context, orderID int64) ([]*model.Payment, error) {
	return s.payments[orderID], nil
}

// VerifyOrderPayment 与真实dao一致：要么状态与流水一起落账，要么都不动
func (s *stubPaymentStore) VerifyOrderPayment(ctx context.Context, orderID int64, toOrderStatus, paymentStatus, notes, fallbackTxnRef string) error {
	if s.verifyErr != nil {
		return s.verifyErr
	}
	order, ok := s.orders.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if order.Status != model.OrderStatusPending {
		return dao.ErrOrderStatusChanged
	}

	now := time.Now()
	rows := s.payments[orderID]
	if len(rows) > 0 {
		latest := rows[len(rows)-1]
		latest.Status = paymentStatus
		latest.Notes = notes
		latest.PaidAt = &now
		s.updatedID = latest.ID
		s.updatedStatus = paymentStatus
		s.updatedNotes = notes
	} else {
		payment := &model.Payment{
			ID:            s.nextID,
			OrderID:       orderID,
			Amount:        order.Total,
			Method:        model.PaymentMethodUPI,
			Status:        paymentStatus,
			TransactionID: fallbackTxnRef,
			Notes:         notes,
			PaidAt:        &now,
		}
		s.nextID++
		s.payments[orderID] = append(s.payments[orderID], payment)
	}
	order.Status = toOrderStatus
	return nil
}

type stubReportStore struct {
	summary     []*dao.DailySales
	ordersByDay map[string][]*dao.OrderReportRow
	summaryErr  error
	ordersErr   error

	gotDays  int
	gotDates []string
}

func (s *stubReportStore) DailySummary(ctx context.Context, days int) ([]*dao.DailySales, error) {
	s.gotDays = days
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return s.summary, nil
}

func (s *stubReportStore) OrdersForDate(ctx context.Context, date string) ([]*dao.OrderReportRow, error) {
	s.gotDates = append(s.gotDates, date)
	if s.ordersErr != nil {
		return nil, s.ordersErr
	}
	return s.ordersByDay[date], nil
}

type stubProductReader struct {
	products map[int64]*model.Product
	err      error
}

func (s *stubProductReader) GetProductByID(ctx context.Context, productID int64) (*model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	product, ok := s.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

type stubPublisher struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (s *stubPublisher) PublishAsyncWithID(exchange, key string, body []byte, messageID string) error {
	if s.err != nil {
		return s.err
	}
	s.keys = append(s.keys, key)
	s.bodies = append(s.bodies, body)
	return nil
}
