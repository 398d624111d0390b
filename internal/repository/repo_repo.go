package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/model"
)

type RepoRepository struct {
	db *gorm.DB
}

func NewRepoRepository(db *gorm.DB) *RepoRepository {
	return &RepoRepository{db: db}
}

// Create 创建仓库，未指定状态时为 Normal
func (r *RepoRepository) Create(repo *model.Repo) error {
	if repo.Status == 0 {
		repo.Status = model.RepoStatusNormal
	}
	return errors.Wrap(r.db.Create(repo).Error, "create repo")
}

// GetByID 按 ID 获取仓库（包含已软删除的记录，由调用方判断状态）
func (r *RepoRepository) GetByID(id string) (*model.Repo, error) {
	var repo model.Repo
	err := r.db.Where("id = ?", id).First(&repo).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get repo %s", id)
	}
	return &repo, nil
}

func (r *RepoRepository) GetByName(name string) (*model.Repo, error) {
	var repo model.Repo
	err := r.db.Where("name = ?", name).First(&repo).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get repo by name %s", name)
	}
	return &repo, nil
}

// ListByOwner 获取用户的仓库列表（不含已删除）
func (r *RepoRepository) ListByOwner(owner string) ([]*model.Repo, error) {
	var repos []*model.Repo
	err := r.db.Where("owner = ? AND status = ?", owner, model.RepoStatusNormal).
		Order("created_at ASC").
		Find(&repos).Error
	return repos, errors.Wrap(err, "list repos by owner")
}

// Update 更新可变字段，owner 与 created_at 不会被覆盖
func (r *RepoRepository) Update(repo *model.Repo) error {
	err := r.db.Model(&model.Repo{}).Where("id = ?", repo.ID).Updates(map[string]interface{}{
		"name":        repo.Name,
		"description": repo.Description,
		"updated_at":  repo.UpdatedAt,
	}).Error
	return errors.Wrapf(err, "update repo %s", repo.ID)
}

// SoftDelete 标记为已删除，记录保留
func (r *RepoRepository) SoftDelete(id string, at time.Time) error {
	err := r.db.Model(&model.Repo{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.RepoStatusDeleted,
		"updated_at": at,
	}).Error
	return errors.Wrapf(err, "soft delete repo %s", id)
}
