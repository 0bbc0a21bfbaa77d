package v1

import (
	"context"
	"time"

	"github.com/anash06/E-commerce/internal/service"
	"github.com/anash06/E-commerce/pkg/e"
	"github.com/gin-gonic/gin"
)

// ReportHandler 管理端报表与导出接口
type ReportHandler struct {
	reportService *service.ReportService
	pub           service.Publisher
}

func NewReportHandler(reportService *service.ReportService, pub service.Publisher) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		pub:           pub,
	}
}

// RegisterAdminRoutes 报表路由（需 JWT + admin）
func (h *ReportHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/sales", h.SalesReport)
	rg.POST("/exports/sync", h.TriggerExport)
}

// SalesReport 销售日报
// ?date=2026-08-30 指定日期，缺省取最近有订单的一天；?days=7 控制汇总区间
func (h *ReportHandler) SalesReport(c *gin.Context) {
	date := c.Query("date")
	days := toInt32(c.Query("days"), 7)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	report, err := h.reportService.DailyReport(ctx, date, days)
	if err != nil {
		renderServiceError(c, err, e.ERROR_ORDER_NOT_EXISTS)
		return
	}
	Success(c, report)
}

// TriggerExport 手动触发全量Excel镜像同步
// 只投递事件，重建由导出消费者异步完成
func (h *ReportHandler) TriggerExport(c *gin.Context) {
	service.PublishExportSync(h.pub, "manual_trigger")
	Success(c, gin.H{"queued": true})
}
