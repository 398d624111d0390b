package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create 新增订阅，(user_id, repo_id) 重复时返回 gorm.ErrDuplicatedKey
func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return errors.Wrap(r.db.Create(sub).Error, "create subscription")
}

// Exists 是否存在订阅记录（不关心仓库状态）
func (r *SubscriptionRepository) Exists(userID, repoID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND repo_id = ?", userID, repoID).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count subscription")
}

// ExistsActive 订阅存在且仓库状态正常
func (r *SubscriptionRepository) ExistsActive(userID, repoID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Joins("JOIN repos ON repos.id = subscriptions.repo_id").
		Where("subscriptions.user_id = ? AND subscriptions.repo_id = ? AND repos.status = ?",
			userID, repoID, model.RepoStatusNormal).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "count active subscription")
}

// Delete 删除订阅，返回删除行数
func (r *SubscriptionRepository) Delete(userID, repoID string) (int64, error) {
	result := r.db.Where("user_id = ? AND repo_id = ?", userID, repoID).Delete(&model.Subscription{})
	return result.RowsAffected, errors.Wrap(result.Error, "delete subscription")
}

// ListActiveRepos 获取用户订阅的、状态正常的仓库
func (r *SubscriptionRepository) ListActiveRepos(userID string) ([]*model.Repo, error) {
	var repos []*model.Repo
	err := r.db.Model(&model.Repo{}).
		Select("repos.*").
		Joins("JOIN subscriptions ON subscriptions.repo_id = repos.id").
		Where("subscriptions.user_id = ? AND repos.status = ?", userID, model.RepoStatusNormal).
		Order("repos.created_at ASC").
		Find(&repos).Error
	return repos, errors.Wrap(err, "list subscribed repos")
}
