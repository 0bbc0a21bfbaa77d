package service

import (
	"context"

	"github.com/anash06/E-commerce/internal/dao"
)

const defaultSummaryDays = 7

// ReportStore 销售日报的只读查询
type ReportStore interface {
	DailySummary(ctx context.Context, days int) ([]*dao.DailySales, error)
	OrdersForDate(ctx context.Context, date string) ([]*dao.OrderReportRow, error)
}

// ReportService 销售日报
type ReportService struct {
	reportStore ReportStore
}

func NewReportService(reportStore ReportStore) *ReportService {
	return &ReportService{reportStore: reportStore}
}

// SalesReport 日报视图：按天汇总 + 选中日期的订单明细
type SalesReport struct {
	Summary []*dao.DailySales     `json:"summary"`
	Date    string                `json:"date"`
	Orders  []*dao.OrderReportRow `json:"orders"`
}

// DailyReport 获取销售日报
// date为空时默认取最近有订单的一天；days<=0时默认7天
func (s *ReportService) DailyReport(ctx context.Context, date string, days int32) (*SalesReport, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}

	summary, err := s.reportStore.DailySummary(ctx, int(days))
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Summary: summary,
		Date:    date,
		Orders:  []*dao.OrderReportRow{},
	}
	if report.Date == "" && len(summary) > 0 {
		report.Date = summary[0].Day
	}
	if report.Date == "" {
		return report, nil
	}

	orders, err := s.reportStore.OrdersForDate(ctx, report.Date)
	if err != nil {
		return nil, err
	}
	report.Orders = orders
	return report, nil
}
