package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return errors.Wrap(r.db.Create(user).Error, "create user")
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get user %s", id)
	}
	return &user, nil
}

func (r *UserRepository) GetByName(name string) (*model.User, error) {
	var user model.User
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get user by name %s", name)
	}
	return &user, nil
}

// Update 更新可变字段（id、created_at 不变）
func (r *UserRepository) Update(user *model.User) error {
	err := r.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":       user.Name,
		"password":   user.Password,
		"avatar_url": user.AvatarURL,
		"updated_at": user.UpdatedAt,
	}).Error
	return errors.Wrapf(err, "update user %s", user.ID)
}

func (r *UserRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("name = ?", name).Count(&count).Error
	return count > 0, errors.Wrap(err, "count user by name")
}
