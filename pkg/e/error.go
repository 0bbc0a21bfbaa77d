package e

// 错误码定义
const (
	SUCCESS        = 0
	ERROR          = 1
	INVALID_PARAMS = 2

	ERROR_AUTH_CHECK_TOKEN_FAIL    = 10001
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT = 10002
	ERROR_AUTH_TOKEN               = 10003
	ERROR_AUTH                     = 10004
	ERROR_FORBIDDEN                = 10005

	ERROR_USER_EXISTS     = 20001
	ERROR_USER_NOT_EXISTS = 20002
	ERROR_PASSWORD        = 20003

	ERROR_PRODUCT_NOT_EXISTS = 30001
	ERROR_STOCK_NOT_ENOUGH   = 30002

	ERROR_ORDER_NOT_EXISTS     = 40001
	ERROR_ORDER_STATUS_CHANGED = 40002
	ERROR_ORDER_DUPLICATE      = 40003
	ERROR_PAYMENT_NOT_EXISTS   = 40004

	ERROR_CART_EMPTY = 50001
)

var MsgFlags = map[int]string{
	SUCCESS:        "成功",
	ERROR:          "失败",
	INVALID_PARAMS: "请求参数错误",

	ERROR_AUTH_CHECK_TOKEN_FAIL:    "Token验证失败",
	ERROR_AUTH_CHECK_TOKEN_TIMEOUT: "Token已超时",
	ERROR_AUTH_TOKEN:               "Token生成失败",
	ERROR_AUTH:                     "认证失败",
	ERROR_FORBIDDEN:                "权限不足",

	ERROR_USER_EXISTS:     "邮箱或手机号已注册",
	ERROR_USER_NOT_EXISTS: "用户不存在",
	ERROR_PASSWORD:        "密码错误",

	ERROR_PRODUCT_NOT_EXISTS: "商品不存在",
	ERROR_STOCK_NOT_ENOUGH:   "库存不足",

	ERROR_ORDER_NOT_EXISTS:     "订单不存在",
	ERROR_ORDER_STATUS_CHANGED: "订单状态已变更",
	ERROR_ORDER_DUPLICATE:      "订单提交处理中，请勿重复提交",
	ERROR_PAYMENT_NOT_EXISTS:   "支付记录不存在",

	ERROR_CART_EMPTY: "购物车为空",
}

func GetMsg(code int) string {
	msg, ok := MsgFlags[code]
	if ok {
		return msg
	}
	return MsgFlags[ERROR]
}
