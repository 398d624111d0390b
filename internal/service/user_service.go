package service

import (
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/repository"
)

var ErrUserPermission = apperr.Forbidden("只能修改自己的信息")

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByName 按用户名获取公开信息
func (s *UserService) GetByName(name string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByName(name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return toUserInfo(user), nil
}

// UpdateProfile 更新用户信息，只能修改自己
func (s *UserService) UpdateProfile(callerID, userID string, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	if callerID != userID {
		return nil, ErrUserPermission
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}

	// 检查用户名是否已被他人占用
	if req.Name != user.Name {
		exists, err := s.userRepo.ExistsByName(req.Name)
		if err != nil {
			return nil, storeError(err)
		}
		if exists {
			return nil, ErrNameExists
		}
	}

	user.Name = req.Name
	user.Password = req.Password
	user.AvatarURL = req.AvatarURL
	user.UpdatedAt = now()

	if err := s.userRepo.Update(user); err != nil {
		if isDuplicate(err) {
			return nil, ErrNameExists
		}
		return nil, storeError(err)
	}

	return toUserInfo(user), nil
}
