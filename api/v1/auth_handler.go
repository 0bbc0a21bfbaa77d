package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
)

// AuthHandler 处理认证
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Identity string `json:"identity" binding:"required"` // 邮箱或手机号
	Password string `json:"password" binding:"required"`
}

// Register 客户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userInfo, err := h.authService.Register(ctx, req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}

	Success(c, userInfo)
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	// 登录参数要匹配
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": e.GetMsg(e.INVALID_PARAMS),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	token, userInfo, err := h.authService.Login(ctx, req.Identity, req.Password)
	if err != nil {
		renderServiceError(c, err, e.ERROR_USER_NOT_EXISTS)
		return
	}

	Success(c, gin.H{
		"token": token,
		"user":  userInfo,
	})
}

// RegisterRoutes 注册路由
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}
}
