package dao

import (
	"context"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/pkg/logger"
	"github.com/anash06/E-commerce/pkg/utils"
	"gorm.io/gorm"
)

// Migrate 启动时执行一次schema迁移，替代请求期的运行时探测
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	)
}

// Seed 保证至少存在一个管理员账号；商品表为空时写入演示商品
// 幂等，可重复执行
func Seed(ctx context.Context, db *gorm.DB) error {
	var adminCount int64
	if err := db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		admin := &model.User{
			Name:         "Admin",
			Email:        "admin@mgmstore.com",
			Phone:        "0000000000",
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}
		if err := db.WithContext(ctx).Create(admin).Error; err != nil {
			return err
		}
		logger.Info("默认管理员已创建", "email", admin.Email)
	}

	var productCount int64
	if err := db.WithContext(ctx).Model(&model.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		demo := []*model.Product{
			{Name: "Classic T-Shirt", Description: "Cotton t-shirt", Price: 499.0, Stock: 50},
			{Name: "Denim Jeans", Description: "Blue slim fit", Price: 1299.0, Stock: 30},
			{Name: "Men Kurta", Description: "Festive wear", Price: 999.0, Stock: 20},
			{Name: "Silk Saree", Description: "Traditional saree", Price: 2499.0, Stock: 15},
		}
		if err := db.WithContext(ctx).Create(&demo).Error; err != nil {
			return err
		}
		logger.Info("演示商品已写入", "count", len(demo))
	}
	return nil
}
