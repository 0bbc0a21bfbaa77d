package service

import (
	"context"

	"github.com/anash06/E-commerce/internal/dao"
	"github.com/anash06/E-commerce/internal/model"
	"github.com/anash06/E-commerce/pkg/utils"
)

type AuthService struct {
	userDao *dao.UserDao
	jwtUtil *utils.JWTUtil
	pub     Publisher
}

func NewAuthService(userDao *dao.UserDao, jwtSecret string, jwtExpireHours int, pub Publisher) *AuthService {
	return &AuthService{
		userDao: userDao,
		jwtUtil: utils.NewJWTUtil(jwtSecret, jwtExpireHours),
		pub:     pub,
	}
}

// Register 客户注册，邮箱与手机号至少填一项
// 重复身份返回dao.ErrUserExists，已有行不受影响
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*model.User, error) {
	if email == "" && phone == "" {
		return nil, ErrIdentityRequired
	}

	// 加密密码
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         model.RoleCustomer,
	}

	// 调用dao层  执行数据库操作
	if err := s.userDao.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	publishExportSync(s.pub, "user_created")
	return newUser, nil
}

// Login 按邮箱或手机号登录，成功返回带角色声明的token
func (s *AuthService) Login(ctx context.Context, identity, password string) (string, *model.User, error) {
	dbUser, err := s.userDao.GetUserByIdentity(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	// 验证密码
	if !utils.CheckPassword(password, dbUser.PasswordHash) {
		return "", nil, ErrPasswordMismatch
	}

	// 生成 token
	token, err := s.jwtUtil.GenerateToken(dbUser.ID, dbUser.Name, dbUser.Role)
	if err != nil {
		return "", nil, err
	}

	return token, dbUser, nil
}
