package utils

import (
	"fmt"
	"time"
)

// AdminConfirmTxnRef 管理员直接确认订单时合成的交易号
// 保证"已确认订单至少有一条success支付记录"的约束成立
func AdminConfirmTxnRef(orderID int64) string {
	return fmt.Sprintf("ADMINCONF%d%d", time.Now().Unix(), orderID)
}

// AdminRejectTxnRef 管理员在无支付记录时驳回订单合成的交易号
func AdminRejectTxnRef(orderID int64) string {
	return fmt.Sprintf("ADMINREJ%d%d", time.Now().Unix(), orderID)
}
