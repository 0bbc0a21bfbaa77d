package service

import (
	"context"

	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/pkg/utils"
)

// UserService 客户档案管理（管理端CRUD + 客户自助）
type UserService struct {
	userDao *dao.UserDao
	pub     Publisher
}

func NewUserService(userDao *dao.UserDao, pub Publisher) *UserService {
	return &UserService{
		userDao: userDao,
		pub:     pub,
	}
}

// GetUser 根据id获取用户
func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.userDao.GetUserByID(ctx, userID)
}

// ListCustomers 客户列表
func (s *UserService) ListCustomers(ctx context.Context, page, pageSize int32) ([]*model.User, int64, error) {
	return s.userDao.ListCustomers(ctx, page, pageSize)
}

// CreateCustomer 管理员创建客户账号
func (s *UserService) CreateCustomer(ctx context.Context, name, email, phone, password string) (*model.User, error) {
	if email == "" && phone == "" {
		return nil, ErrIdentityRequired
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	customer := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         model.RoleCustomer,
	}
	if err := s.userDao.CreateUser(ctx, customer); err != nil {
		return nil, err
	}

	publishExportSync(s.pub, "customer_created")
	return customer, nil
}

// UpdateCustomer 更新客户信息（不包括密码）
func (s *UserService) UpdateCustomer(ctx context.Context, userID int64, name, email, phone string) (*model.User, error) {
	// 1. 检查用户是否存在
	userInfo, err := s.userDao.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. 构建更新字段
	updates := map[string]interface{}{}
	if name != "" && userInfo.Name != name {
		updates["name"] = name
	}
	if email != "" && userInfo.Email != email {
		updates["email"] = email
	}
	if phone != "" && userInfo.Phone != phone {
		updates["phone"] = phone
	}

	// 3. 没有更新字段则直接返回
	if len(updates) == 0 {
		return userInfo, nil
	}

	// 4. 执行更新
	if err := s.userDao.UpdateUser(ctx, userID, updates); err != nil {
		return nil, err
	}

	publishExportSync(s.pub, "customer_updated")

	// 5. 获取最新信息返回
	return s.userDao.GetUserByID(ctx, userID)
}

// DeleteCustomer 删除客户账号
func (s *UserService) DeleteCustomer(ctx context.Context, userID int64) error {
	if _, err := s.userDao.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userDao.DeleteUserByID(ctx, userID); err != nil {
		return err
	}
	publishExportSync(s.pub, "customer_deleted")
	return nil
}

// ChangePassword 客户修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	userInfo, err := s.userDao.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(oldPassword, userInfo.PasswordHash) {
		return ErrPasswordMismatch
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userDao.UpdateUserPassword(ctx, userID, newHash)
}
