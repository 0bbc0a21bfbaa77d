package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Success 统一成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    e.SUCCESS,
		"message": e.GetMsg(e.SUCCESS),
		"data":    data,
	})
}

// Fail 按错误码返回
func Fail(c *gin.Context, status, code int) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": e.GetMsg(code),
	})
}

// renderServiceError 把service/dao层错误映射为错误码响应
// notFoundCode: 记录不存在时使用的资源错误码
func renderServiceError(c *gin.Context, err error, notFoundCode int) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		Fail(c, http.StatusNotFound, notFoundCode)
	case errors.Is(err, dao.ErrUserExists):
		Fail(c, http.StatusBadRequest, e.ERROR_USER_EXISTS)
	case errors.Is(err, dao.ErrInsufficientStock):
		Fail(c, http.StatusConflict, e.ERROR_STOCK_NOT_ENOUGH)
	case errors.Is(err, dao.ErrOrderStatusChanged), errors.Is(err, service.ErrOrderNotPayable):
		Fail(c, http.StatusConflict, e.ERROR_ORDER_STATUS_CHANGED)
	case errors.Is(err, service.ErrDuplicateSubmit):
		Fail(c, http.StatusTooManyRequests, e.ERROR_ORDER_DUPLICATE)
	case errors.Is(err, service.ErrEmptyCart):
		Fail(c, http.StatusBadRequest, e.ERROR_CART_EMPTY)
	case errors.Is(err, service.ErrPasswordMismatch):
		Fail(c, http.StatusUnauthorized, e.ERROR_PASSWORD)
	case errors.Is(err, service.ErrIdentityRequired),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrEmptyTransactionRef),
		errors.Is(err, service.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    e.INVALID_PARAMS,
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    e.ERROR,
			"message": e.GetMsg(e.ERROR),
		})
	}
}

// 工具
func toInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// toInt32 解析分页类查询参数，非法或非正值回落到调用方默认值
func toInt32(s string, def int32) int32 {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v <= 0 {
		return def
	}
	return int32(v)
}
