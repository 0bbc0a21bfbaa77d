package service

import "errors"

// 业务校验类错误，handler层统一映射为pkg/e错误码
var (
	ErrIdentityRequired    = errors.New("邮箱与手机号至少填写一项")
	ErrPasswordMismatch    = errors.New("密码错误")
	ErrInvalidQuantity     = errors.New("数量必须为正整数")
	ErrEmptyOrder          = errors.New("订单至少包含一个商品")
	ErrEmptyCart           = errors.New("购物车为空")
	ErrEmptyTransactionRef = errors.New("交易号不能为空")
	ErrDuplicateSubmit     = errors.New("订单提交处理中，请勿重复提交")
	ErrOrderNotPayable     = errors.New("订单当前状态不可提交支付")
	ErrInvalidAction       = errors.New("不支持的核验动作")
)
