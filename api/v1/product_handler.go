package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
	"github.com/gin-gonic/gin"
)

// ProductHandler 商品目录接口
type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes 公开目录路由（无需登录即可浏览）
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET(":id", h.GetProduct)
	}
}

// RegisterAdminRoutes 管理端商品路由（需 JWT + admin）
func (h *ProductHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.PUT(":id", h.UpdateProduct)
		products.DELETE(":id", h.DeleteProduct)
	}
}

// ListProducts 商品列表
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page := toInt32(c.Query("page"), 1)
	pageSize := toInt32(c.Query("page_size"), 20)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, total, err := h.productService.ListProducts(ctx, page, pageSize)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, gin.H{
		"products": products,
		"total":    total,
	})
}

// GetProduct 商品详情
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, product)
}

// CreateProduct 创建商品
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.productService.CreateProduct(ctx, req)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, product)
}

// UpdateProduct 更新商品
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.ProductUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	productID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	product, err := h.productService.UpdateProduct(ctx, productID, req)
	if err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, product)
}

// DeleteProduct 删除商品
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		renderServiceError(c, err, e.ERROR_PRODUCT_NOT_EXISTS)
		return
	}
	Success(c, nil)
}
