package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/anash06/E-commerce/internal/mq"
	"github.com/anash06/E-commerce/pkg/logger"
)

// ExportSyncKey Excel镜像同步事件的路由键
const ExportSyncKey = "export.sync"

// Publisher 事件发布端（生产环境为mq.Pool）
type Publisher interface {
	PublishAsyncWithID(exchange, key string, body []byte, messageID string) error
}

// exportSyncEvent 数据变更后发出的镜像同步事件
// 由cmd/export_consumer异步消费，绝不阻塞主事务
type exportSyncEvent struct {
	EventID    string `json:"event_id"`
	OccurredAt int64  `json:"occurred_at"`
	Reason     string `json:"reason"`
}

// publishExportSync 发布同步事件，发布失败只记日志（导出为旁路副本）
func publishExportSync(pub Publisher, reason string) {
	if pub == nil {
		return
	}
	evt := exportSyncEvent{
		EventID:    fmt.Sprintf("%s-%d", reason, time.Now().UnixNano()),
		OccurredAt: time.Now().Unix(),
		Reason:     reason,
	}
	b, err := json.Marshal(evt)
	if err != nil {
		logger.Warn("导出同步事件序列化失败", "reason", reason, "err", err)
		return
	}
	if err := pub.PublishAsyncWithID(mq.Exchange, ExportSyncKey, b, evt.EventID); err != nil {
		logger.Warn("导出同步事件发布失败", "reason", reason, "err", err)
	}
}

// PublishExportSync 管理端手动触发全量镜像同步
func PublishExportSync(pub Publisher, reason string) {
	publishExportSync(pub, reason)
}
