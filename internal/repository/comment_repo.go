package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return errors.Wrap(r.db.Create(comment).Error, "create comment")
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get comment %s", id)
	}
	return &comment, nil
}

// ListByPostID 获取文章下的全部评论（按时间正序，客户端自行组装楼层）
func (r *CommentRepository) ListByPostID(postID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, errors.Wrap(err, "list comments by post")
}

// Update 更新内容、父评论和 updated_at
func (r *CommentRepository) Update(comment *model.Comment) error {
	err := r.db.Model(&model.Comment{}).Where("id = ?", comment.ID).Updates(map[string]interface{}{
		"content":    comment.Content,
		"parent_id":  comment.ParentID,
		"updated_at": comment.UpdatedAt,
	}).Error
	return errors.Wrapf(err, "update comment %s", comment.ID)
}

// Delete 删除评论
func (r *CommentRepository) Delete(id string) error {
	err := r.db.Where("id = ?", id).Delete(&model.Comment{}).Error
	return errors.Wrapf(err, "delete comment %s", id)
}

// CountByPostID 获取文章的评论数
func (r *CommentRepository) CountByPostID(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, errors.Wrap(err, "count comments")
}
