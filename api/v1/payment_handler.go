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

// PaymentHandler 人工对账支付接口
type PaymentHandler struct {
	paymentService *service.PaymentService
	orderService   *service.OrderService
}

func NewPaymentHandler(paymentService *service.PaymentService, orderService *service.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// RegisterRoutes 客户支付路由（需 JWT），挂在 /orders 分组下
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST(":id/payment", h.SubmitPayment)
	rg.GET(":id/payment", h.GetLatestPayment)
}

// RegisterAdminRoutes 管理端支付路由（需 JWT + admin）
func (h *PaymentHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST(":id/verify", h.VerifyPayment)
		orders.GET(":id/payments", h.ListPayments)
	}
}

type submitPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

type verifyPaymentRequest struct {
	Action string `json:"action" binding:"required"` // confirm / reject
	Notes  string `json:"notes"`
}

// SubmitPayment 客户提交转账回执
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// 回执只能由订单归属人提交
	orderInfo, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	if orderInfo.CustomerID != c.GetInt64("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"code": e.ERROR_FORBIDDEN, "message": "无权访问该订单"})
		return
	}

	payment, err := h.paymentService.Submit(ctx, orderID, req.TransactionID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	Success(c, payment)
}

// GetLatestPayment 当前生效流水
func (h *PaymentHandler) GetLatestPayment(c *gin.Context) {
	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	orderInfo, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	if orderInfo.CustomerID != c.GetInt64("user_id") && c.GetString("user_role") != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"code": e.ERROR_FORBIDDEN, "message": "无权访问该订单"})
		return
	}

	payment, err := h.paymentService.GetLatestPayment(ctx, orderID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PAYMENT_NOT_EXISTS)
		return
	}
	Success(c, payment)
}

// VerifyPayment 管理员审核支付（confirm/reject）
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.paymentService.Verify(ctx, orderID, req.Action, req.Notes); err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	Success(c, nil)
}

// ListPayments 订单全部流水（含历史）
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	orderID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	payments, err := h.paymentService.ListPayments(ctx, orderID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PAYMENT_NOT_EXISTS)
		return
	}
	Success(c, payments)
}
