package service

import (
	"crypto/subtle"

	"github.com/google/uuid"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/jwt"
	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/repository"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("用户名或密码错误")
	ErrInvalidToken       = apperr.Unauthorized("Token 无效或已过期")
	ErrNameExists         = apperr.Conflict("用户名已被使用")
	ErrUserNotFound       = apperr.NotFound("用户不存在")
)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Authenticate 校验用户名与密码，返回用户 ID
func (s *AuthService) Authenticate(name, password string) (string, error) {
	user, err := s.userRepo.GetByName(name)
	if err != nil {
		if isNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", storeError(err)
	}

	if !passwordMatch(user.Password, password) {
		return "", ErrInvalidCredentials
	}
	return user.ID, nil
}

// ValidateToken 解析 Bearer Token，返回用户 ID
func (s *AuthService) ValidateToken(token string) (string, error) {
	claims, err := jwt.ParseToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// LoginOrRegister 用户存在则校验密码，不存在则注册；created 表示是否新注册
func (s *AuthService) LoginOrRegister(req *dto.LoginRequest) (*dto.LoginResponse, bool, error) {
	user, err := s.userRepo.GetByName(req.Name)
	created := false

	switch {
	case err == nil:
		if !passwordMatch(user.Password, req.Password) {
			return nil, false, ErrInvalidCredentials
		}
	case isNotFound(err):
		user = &model.User{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Password: req.Password,
		}
		if err := s.userRepo.Create(user); err != nil {
			if isDuplicate(err) {
				return nil, false, ErrNameExists
			}
			return nil, false, storeError(err)
		}
		created = true
		logger.Log.WithField("user_id", user.ID).Info("user registered")
	default:
		return nil, false, storeError(err)
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, false, apperr.Internal(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toUserInfo(user),
	}, created, nil
}

// ValidateName 用户名是否已存在
func (s *AuthService) ValidateName(name string) (bool, error) {
	exists, err := s.userRepo.ExistsByName(name)
	if err != nil {
		return false, storeError(err)
	}
	return exists, nil
}

func passwordMatch(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
