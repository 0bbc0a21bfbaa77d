package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
	"github.com/gin-gonic/gin"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes 客户订单路由（需 JWT）
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// 统一规范：不在 handler 内再创建分组或添加限流
	rg.POST("", h.CreateOrder)
	rg.POST("/checkout", h.Checkout)
	rg.GET("/my", h.ListMyOrders)
	rg.GET(":id", h.GetOrder)
	rg.GET(":id/invoice", h.GetInvoice)
}

// RegisterAdminRoutes 管理端订单路由（需 JWT + admin）
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListAllOrders)
		orders.POST("", h.AdminCreateOrder)
		orders.POST(":id/dispatch", h.DispatchOrder)
	}
}

type addressRequest struct {
	DoorNo    string `json:"door_no"`
	Street    string `json:"street"`
	Landmark  string `json:"landmark"`
	Place     string `json:"place"`
	District  string `json:"district"`
	State     string `json:"state"`
	AltMobile string `json:"alt_mobile"`
	Pincode   string `json:"pincode" binding:"required"`
}

func (r addressRequest) toModel() model.ShippingAddress {
	return model.ShippingAddress{
		DoorNo:    r.DoorNo,
		Street:    r.Street,
		Landmark:  r.Landmark,
		Place:     r.Place,
		District:  r.District,
		State:     r.State,
		AltMobile: r.AltMobile,
		Pincode:   r.Pincode,
	}
}

type createOrderRequest struct {
	Address addressRequest           `json:"address" binding:"required"`
	Items   []service.OrderItemInput `json:"items" binding:"required"`
}

type checkoutRequest struct {
	Address addressRequest `json:"address" binding:"required"`
}

type adminCreateOrderRequest struct {
	CustomerID int64                    `json:"customer_id" binding:"required"`
	Address    addressRequest           `json:"address" binding:"required"`
	Items      []service.OrderItemInput `json:"items" binding:"required"`
}

// CreateOrder 直接下单
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	userID := c.GetInt64("user_id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orderInfo, err := h.orderService.CreateOrder(ctx, userID, req.Address.toModel(), req.Items)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, orderInfo)
}

// Checkout 购物车结算下单
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	userID := c.GetInt64("user_id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orderInfo, err := h.orderService.CheckoutCart(ctx, userID, req.Address.toModel())
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, orderInfo)
}

// ListMyOrders 我的订单
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID := c.GetInt64("user_id")
	page := toInt32(c.Query("page"), 1)
	pageSize := toInt32(c.Query("page_size"), 20)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orders, total, err := h.orderService.ListCustomerOrders(ctx, userID, page, pageSize)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	Success(c, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// GetOrder 订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orderInfo, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	// 简单校验归属
	if orderInfo.CustomerID != c.GetInt64("user_id") && c.GetString("user_role") != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"code": e.ERROR_FORBIDDEN, "message": "无权访问该订单"})
		return
	}
	Success(c, orderInfo)
}

// GetInvoice 发票视图（含行项）
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orderInfo, err := h.orderService.GetInvoice(ctx, orderID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	if orderInfo.CustomerID != c.GetInt64("user_id") && c.GetString("user_role") != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"code": e.ERROR_FORBIDDEN, "message": "无权访问该订单"})
		return
	}
	Success(c, orderInfo)
}

// ListAllOrders 管理端订单列表（含客户名与最新支付）
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	page := toInt32(c.Query("page"), 1)
	pageSize := toInt32(c.Query("page_size"), 20)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orders, total, err := h.orderService.ListOrders(ctx, page, pageSize)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	Success(c, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// AdminCreateOrder 管理员代客下单
func (h *OrderHandler) AdminCreateOrder(c *gin.Context) {
	var req adminCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orderInfo, err := h.orderService.CreateOrder(ctx, req.CustomerID, req.Address.toModel(), req.Items)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, orderInfo)
}

// DispatchOrder 发货
func (h *OrderHandler) DispatchOrder(c *gin.Context) {
	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.orderService.Dispatch(ctx, orderID); err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	Success(c, nil)
}
