package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anash06/E-commerce/internal/dao/mysql"
	redisinit "github.com/anash06/E-commerce/internal/dao/redis"
	"github.com/anash06/E-commerce/internal/export"
	"github.com/anash06/E-commerce/internal/mq"
	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/app"
	"github.com/anash06/E-commerce/pkg/logger"
)

// exportEvent 与发布端的事件结构保持一致
type exportEvent struct {
	EventID    string `json:"event_id"`
	OccurredAt int64  `json:"occurred_at"`
	Reason     string `json:"reason"`
}

const exportQueue = "export.sync"

func main() {
	cfg := app.BootstrapApp()

	db, err := mysql.InitDB(&cfg.Database.Mysql)
	if err != nil {
		logger.Fatal("连接Mysql数据库失败", "err", err)
	}

	rdb, err := redisinit.InitRedis(&cfg.Database.Redis)
	if err != nil {
		logger.Fatal("连接Redis失败", "err", err)
	}

	exporter := export.NewExporter(db, cfg.Export.Dir)

	// 只绑定 export.sync
	conn, consumerCh, msgs, err := mq.NewConsumerChannel(&cfg.MQ, exportQueue, service.ExportSyncKey, mq.Exchange, true, cfg.MQ.ConsumerPrefetch)
	if err != nil {
		logger.Fatal("init consumer channel failed", "err", err)
	}
	defer mq.CloseConsumer(conn, consumerCh)

	logger.Info("export consumer started", "queue", exportQueue, "dir", cfg.Export.Dir)

	for d := range msgs {
		key := "export:msg:done:" + d.MessageId
		// 幂等：如果MessageId存在则用Redis去重
		if d.MessageId != "" {
			added, _ := rdb.SetNX(context.Background(), key, 1, 30*time.Minute).Result()
			if !added {
				logger.Warn("Duplicate message detected, skipping", "message_id", d.MessageId)
				_ = d.Ack(false)
				continue
			}
		}
		var evt exportEvent
		if err := json.Unmarshal(d.Body, &evt); err != nil {
			logger.Error("导出同步消息解析失败", "err", err)
			_ = d.Nack(false, false)
			continue
		}

		// 全量重建三个镜像文件，事件只是触发信号
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		err = exporter.SyncAll(ctx)
		cancel()
		if err != nil {
			logger.Error("导出镜像重建失败", "reason", evt.Reason, "err", err)
			_ = d.Nack(false, true)
			rdb.Del(context.Background(), key)
			continue
		}
		logger.Info("导出镜像已更新", "reason", evt.Reason, "event_id", evt.EventID)
		_ = d.Ack(false)
	}
}
