package service

import (
	"context"

	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/model"
)

type ProductService struct {
	productDao *dao.ProductDao
	pub        Publisher
}

func NewProductService(productDao *dao.ProductDao, pub Publisher) *ProductService {
	return &ProductService{
		productDao: productDao,
		pub:        pub,
	}
}

// ProductInput 商品创建参数
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Stock       int32   `json:"stock" binding:"gte=0"`
	ImageURL    string  `json:"image_url"`
}

// ProductUpdateInput 商品更新参数，指针字段区分"未提供"与"零值"
type ProductUpdateInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int32   `json:"stock"`
	ImageURL    string   `json:"image_url"`
}

// GetProduct 获取商品详情
func (s *ProductService) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	return s.productDao.GetProductByID(ctx, productID)
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	productModel := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}

	if _, err := s.productDao.CreateProduct(ctx, productModel); err != nil {
		return nil, err
	}

	publishExportSync(s.pub, "product_created")
	return productModel, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, productID int64, input ProductUpdateInput) (*model.Product, error) {
	// 检查商品是否存在
	if _, err := s.productDao.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	// 构建更新字段
	updates := make(map[string]interface{})
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Price != nil && *input.Price >= 0 {
		updates["price"] = *input.Price
	}
	if input.Stock != nil && *input.Stock >= 0 {
		updates["stock"] = *input.Stock
	}
	if input.ImageURL != "" {
		updates["image_url"] = input.ImageURL
	}

	if len(updates) > 0 {
		if err := s.productDao.UpdateProduct(ctx, productID, updates); err != nil {
			return nil, err
		}
		publishExportSync(s.pub, "product_updated")
	}

	return s.productDao.GetProductByID(ctx, productID)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, productID int64) error {
	// 检查商品是否存在
	if _, err := s.productDao.GetProductByID(ctx, productID); err != nil {
		return err
	}

	if err := s.productDao.DeleteProductByID(ctx, productID); err != nil {
		return err
	}

	publishExportSync(s.pub, "product_deleted")
	return nil
}

// ListProducts 分页查询商品列表（最新优先）
func (s *ProductService) ListProducts(ctx context.Context, page, pageSize int32) ([]*model.Product, int64, error) {
	return s.productDao.ListProducts(ctx, page, pageSize)
}
