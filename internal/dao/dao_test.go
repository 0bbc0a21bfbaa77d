package dao

// dao层测试统一跑在内存sqlite上，不依赖外部MySQL
// 原生SQL只使用两个方言通用的写法，报表查询同样在sqlite上覆盖

import (
	"context"
	"testing"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库绑定单连接，避免每个连接各见一个空库
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func mustCreateProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int32) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestSeedIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var adminCount int64
	require.NoError(t, db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&adminCount).Error)
	require.Equal(t, int64(1), adminCount)

	var productCount int64
	require.NoError(t, db.Model(&model.Product{}).Count(&productCount).Error)
	require.Equal(t, int64(4), productCount)
}
