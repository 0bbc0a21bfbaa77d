package dao

import (
	"context"
	"errors"

	"github.com/anash06/E-commerce/internal/model"
	"gorm.io/gorm"
)

// ErrInsufficientStock 条件扣减未命中任何行：库存不足（或商品已被删除）
var ErrInsufficientStock = errors.New("库存不足")

type ProductDao struct {
	db *gorm.DB
}

func NewProductDao(db *gorm.DB) *ProductDao {
	return &ProductDao{db: db}
}

// CreateProduct 创建商品
func (d *ProductDao) CreateProduct(ctx context.Context, product *model.Product) (int64, error) {
	err := d.db.WithContext(ctx).Create(product).Error
	if err != nil {
		return 0, err
	}
	return product.ID, nil
}

// GetProductByID 根据ID获取商品
func (d *ProductDao) GetProductByID(ctx context.Context, productID int64) (*model.Product, error) {
	var product model.Product
	err := d.db.WithContext(ctx).First(&product, productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct 更新商品字段
func (d *ProductDao) UpdateProduct(ctx context.Context, productID int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", productID).Updates(updates).Error
}

// DeleteProductByID 删除商品
func (d *ProductDao) DeleteProductByID(ctx context.Context, productID int64) error {
	return d.db.WithContext(ctx).Delete(&model.Product{}, productID).Error
}

// ListProducts 分页查询商品列表（最新优先）
func (d *ProductDao) ListProducts(ctx context.Context, page, pageSize int32) ([]*model.Product, int64, error) {
	var products []*model.Product
	var total int64
	offset := (page - 1) * pageSize

	if err := d.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := d.db.WithContext(ctx).
		Order("id DESC").
		Limit(int(pageSize)).
		Offset(int(offset)).
		Find(&products).Error

	return products, total, err
}

// DecrementStock 原子条件扣减库存
// UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?
// 影响行数为0视为库存不足，保证任何并发序列下 stock >= 0
func (d *ProductDao) DecrementStock(ctx context.Context, productID int64, qty int32) error {
	return decrementStock(d.db.WithContext(ctx), productID, qty)
}

// decrementStock 供订单创建事务内复用的条件扣减
func decrementStock(tx *gorm.DB, productID int64, qty int32) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
