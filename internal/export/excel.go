package export

// Excel镜像导出：将products/users/orders三张表整表落盘为xlsx
// 只作为旁路副本，失败只记日志，绝不影响主事务

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/pkg/logger"
	"gorm.io/gorm"
)

type Exporter struct {
	db  *gorm.DB
	dir string
}

func NewExporter(db *gorm.DB, dir string) *Exporter {
	return &Exporter{db: db, dir: dir}
}

// SyncAll 重写全部镜像文件，单表失败不中断其余表
func (e *Exporter) SyncAll(ctx context.Context) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return err
	}
	var firstErr error
	for _, job := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"products", e.ExportProducts},
		{"customers", e.ExportCustomers},
		{"orders", e.ExportOrders},
	} {
		if err := job.fn(ctx); err != nil {
			logger.Error("Excel导出失败", "table", job.name, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ExportProducts 商品表镜像 products.xlsx
func (e *Exporter) ExportProducts(ctx context.Context) error {
	var products []*model.Product
	if err := e.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return err
	}
	header := []string{"id", "name", "description", "price", "stock", "image_url", "created_at"}
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		rows = append(rows, []interface{}{
			p.ID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CreatedAt.Format(time.RFC3339),
		})
	}
	return e.writeSheet("products", "products.xlsx", header, rows)
}

// ExportCustomers 用户表镜像 customers.xlsx（不含密码哈希）
func (e *Exporter) ExportCustomers(ctx context.Context) error {
	var users []*model.User
	if err := e.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return err
	}
	header := []string{"id", "name", "email", "phone", "role", "created_at"}
	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{
			u.ID, u.Name, u.Email, u.Phone, u.Role, u.CreatedAt.Format(time.RFC3339),
		})
	}
	return e.writeSheet("users", "customers.xlsx", header, rows)
}

// ExportOrders 订单表镜像 orders.xlsx
func (e *Exporter) ExportOrders(ctx context.Context) error {
	var orders []*model.Order
	if err := e.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return err
	}
	header := []string{"id", "customer_id", "status", "total", "shipping_address", "created_at"}
	rows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []interface{}{
			o.ID, o.CustomerID, o.Status, o.Total, o.ShippingAddress, o.CreatedAt.Format(time.RFC3339),
		})
	}
	return e.writeSheet("orders", "orders.xlsx", header, rows)
}

// writeSheet 写单个工作簿：首行表头，其后逐行数据
func (e *Exporter) writeSheet(sheet, fileName string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	for col, h := range header {
		f.SetCellValue(sheet, axis(col, 1), h)
	}
	if len(rows) == 0 {
		f.SetCellValue(sheet, "A2", "no_data")
	}
	for i, row := range rows {
		for col, v := range row {
			f.SetCellValue(sheet, axis(col, i+2), v)
		}
	}

	path := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s failed: %w", fileName, err)
	}
	return nil
}

// axis 0基列号+1基行号 -> "A1"风格坐标
func axis(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}
