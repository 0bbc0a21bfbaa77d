package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anash06/E-commerce/internal/model"

	"gorm.io/gorm"
)

// ErrUserExists 邮箱或手机号已被占用
var ErrUserExists = errors.New("邮箱或手机号已注册")

type UserDao struct {
	db *gorm.DB
}

// NewUserDao 构造函数（依赖注入）
func NewUserDao(db *gorm.DB) *UserDao {
	return &UserDao{db: db}
}

// CreateUser 创建用户，邮箱/手机号重复时返回ErrUserExists且不影响已有行
// 唯一索引兜底，先查后插只用于给出友好错误
func (dao *UserDao) CreateUser(ctx context.Context, user *model.User) error {
	var count int64
	q := dao.db.WithContext(ctx).Model(&model.User{})
	if user.Email != "" && user.Phone != "" {
		q = q.Where("email = ? OR phone = ?", user.Email, user.Phone)
	} else if user.Email != "" {
		q = q.Where("email = ?", user.Email)
	} else {
		q = q.Where("phone = ?", user.Phone)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}

	err := dao.db.WithContext(ctx).Create(user).Error
	if err != nil && strings.Contains(err.Error(), "Duplicate") {
		return ErrUserExists
	}
	return err
}

// GetUserByID 根据用户ID获取用户
func (dao *UserDao) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := dao.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByIdentity 按登录标识查询：含@按邮箱，否则按手机号
func (dao *UserDao) GetUserByIdentity(ctx context.Context, identity string) (*model.User, error) {
	var user model.User
	q := dao.db.WithContext(ctx)
	if strings.Contains(identity, "@") {
		q = q.Where("email = ?", identity)
	} else {
		q = q.Where("phone = ?", identity)
	}
	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCustomers 客户列表（最新优先）
func (dao *UserDao) ListCustomers(ctx context.Context, page, pageSize int32) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64
	offset := (page - 1) * pageSize

	if err := dao.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleCustomer).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := dao.db.WithContext(ctx).
		Where("role = ?", model.RoleCustomer).
		Order("id DESC").
		Limit(int(pageSize)).
		Offset(int(offset)).
		Find(&users).Error

	return users, total, err
}

// UpdateUser 更新用户信息（不包括密码）
func (dao *UserDao) UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) error {
	return dao.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

// UpdateUserPassword 更新用户密码
func (dao *UserDao) UpdateUserPassword(ctx context.Context, userID int64, newPasswordHash string) error {
	return dao.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": newPasswordHash,
		"updated_at":    time.Now(),
	}).Error
}

// DeleteUserByID 删除用户
func (dao *UserDao) DeleteUserByID(ctx context.Context, userID int64) error {
	return dao.db.WithContext(ctx).Delete(&model.User{}, userID).Error
}
