package model

import (
	"time"
)

type Post struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Category  string    `gorm:"size:100" json:"category"`
	Content   string    `gorm:"type:text" json:"content"`
	Author    string    `gorm:"size:64;not null;index" json:"author"`
	RepoID    string    `gorm:"size:64;not null;index" json:"repo_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
