package model

import (
	"time"
)

// Comment 评论，RepoID 冗余存储以便不经联表即可做权限校验
type Comment struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	PostID    string    `gorm:"size:64;not null;index" json:"post_id"`
	RepoID    string    `gorm:"size:64;not null;index" json:"repo_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:64;not null;index" json:"author"`
	ParentID  *string   `gorm:"size:64;index" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
