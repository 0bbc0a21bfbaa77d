package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
	"github.com/gin-gonic/gin"
)

// CartHandler 会话购物车接口（需 JWT）
type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes 注册购物车路由
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.ViewCart)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:product_id", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required"`
}

// ViewCart 购物车视图（实时目录价）
func (h *CartHandler) ViewCart(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	view, err := h.cartService.View(ctx, userID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, view)
}

// AddItem 加入购物车（数量累加）
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addCartItemRequest
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

	if err := h.cartService.Add(ctx, userID, req.ProductID, req.Quantity); err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, nil)
}

// RemoveItem 移除商品
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetInt64("user_id")
	productID := toInt64(c.Param("product_id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.cartService.Remove(ctx, userID, productID); err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, nil)
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.cartService.Clear(ctx, userID); err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, nil)
}
