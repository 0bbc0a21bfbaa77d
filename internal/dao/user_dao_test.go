package dao

import (
	"context"
	"testing"

	"github.com/anash06/E-commerce/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDao_CreateUserDuplicate(t *testing.T) {
	db := newTestDB(t)
	d := NewUserDao(db)
	ctx := context.Background()

	first := &model.User{
		Name:         "Anitha",
		Email:        "anitha@example.com",
		Phone:        "9876543210",
		PasswordHash: "x",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, d.CreateUser(ctx, first))

	// 邮箱重复
	err := d.CreateUser(ctx, &model.User{
		Name:         "Other",
		Email:        "anitha@example.com",
		Phone:        "1111111111",
		PasswordHash: "x",
		Role:         model.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrUserExists)

	// 手机号重复
	err = d.CreateUser(ctx, &model.User{
		Name:         "Other",
		Email:        "other@example.com",
		Phone:        "9876543210",
		PasswordHash: "x",
		Role:         model.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrUserExists)

	// 已有行不受影响
	got, err := d.GetUserByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anitha", got.Name)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserDao_GetUserByIdentity(t *testing.T) {
	db := newTestDB(t)
	d := NewUserDao(db)
	ctx := context.Background()

	require.NoError(t, d.CreateUser(ctx, &model.User{
		Name:         "Anitha",
		Email:        "anitha@example.com",
		Phone:        "9876543210",
		PasswordHash: "x",
		Role:         model.RoleCustomer,
	}))

	byEmail, err := d.GetUserByIdentity(ctx, "anitha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Anitha", byEmail.Name)

	byPhone, err := d.GetUserByIdentity(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, byPhone.ID)

	_, err = d.GetUserByIdentity(ctx, "missing@example.com")
	assert.Error(t, err)
}

func TestUserDao_ListCustomersExcludesAdmin(t *testing.T) {
	db := newTestDB(t)
	d := NewUserDao(db)
	ctx := context.Background()

	require.NoError(t, d.CreateUser(ctx, &model.User{
		Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: model.RoleAdmin,
	}))
	require.NoError(t, d.CreateUser(ctx, &model.User{
		Name: "C1", Email: "c1@example.com", PasswordHash: "x", Role: model.RoleCustomer,
	}))
	require.NoError(t, d.CreateUser(ctx, &model.User{
		Name: "C2", Email: "c2@example.com", PasswordHash: "x", Role: model.RoleCustomer,
	}))

	customers, total, err := d.ListCustomers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, customers, 2)
	for _, c := range customers {
		assert.Equal(t, model.RoleCustomer, c.Role)
	}
}
