package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
	"github.com/gin-gonic/gin"
)

// UserHandler 客户档案接口：管理端CRUD + 客户自助
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes 客户自助路由（需 JWT）
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Profile)
	rg.POST("/password", h.ChangePassword)
}

// RegisterAdminRoutes 管理端客户路由（需 JWT + admin）
func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET(":id", h.GetCustomer)
		customers.PUT(":id", h.UpdateCustomer)
		customers.DELETE(":id", h.DeleteCustomer)
	}
}

type customerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type customerUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Profile 当前登录用户信息
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userInfo, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, userInfo)
}

// ChangePassword 修改密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
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

	if err := h.userService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, nil)
}

// ListCustomers 客户列表
func (h *UserHandler) ListCustomers(c *gin.Context) {
	page := toInt32(c.Query("page"), 1)
	pageSize := toInt32(c.Query("page_size"), 20)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	customers, total, err := h.userService.ListCustomers(ctx, page, pageSize)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, gin.H{
		"customers": customers,
		"total":     total,
	})
}

// GetCustomer 客户详情
func (h *UserHandler) GetCustomer(c *gin.Context) {
	customerID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	customer, err := h.userService.GetUser(ctx, customerID)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, customer)
}

// CreateCustomer 管理员创建客户
func (h *UserHandler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	customer, err := h.userService.CreateCustomer(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, customer)
}

// UpdateCustomer 管理员更新客户信息
func (h *UserHandler) UpdateCustomer(c *gin.Context) {
	var req customerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	customerID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	customer, err := h.userService.UpdateCustomer(ctx, customerID, req.Name, req.Email, req.Phone)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, customer)
}

// DeleteCustomer 管理员删除客户
func (h *UserHandler) DeleteCustomer(c *gin.Context) {
	customerID := toInt64(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.userService.DeleteCustomer(ctx, customerID); err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}
	Success(c, nil)
}
