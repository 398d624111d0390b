package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return errors.Wrap(r.db.Create(post).Error, "create post")
}

func (r *PostRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get post %s", id)
	}
	return &post, nil
}

// ListByRepoID 获取仓库下的文章
func (r *PostRepository) ListByRepoID(repoID string) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Where("repo_id = ?", repoID).Order("created_at ASC").Find(&posts).Error
	return posts, errors.Wrap(err, "list posts by repo")
}

// Update 只更新内容字段和 updated_at
func (r *PostRepository) Update(post *model.Post) error {
	err := r.db.Model(&model.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":      post.Title,
		"category":   post.Category,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	}).Error
	return errors.Wrapf(err, "update post %s", post.ID)
}

// DeleteWithComments 删除文章及其评论
func (r *PostRepository) DeleteWithComments(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
	return errors.Wrapf(err, "delete post %s", id)
}
