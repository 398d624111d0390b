package dto

import "time"

// CreatePostRequest 新建文章（服务端生成 ID）
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"max=100"`
	Content  string `json:"content"`
}

// PushPostRequest 客户端同步文章（自带 ID）
type PushPostRequest struct {
	ID        string     `json:"id" binding:"required,max=64"`
	Title     string     `json:"title" binding:"required,min=1,max=200"`
	Category  string     `json:"category" binding:"max=100"`
	Content   string     `json:"content"`
	Author    string     `json:"author" binding:"required,max=64"`
	RepoID    string     `json:"repo_id" binding:"required,max=64"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// PostInfo 文章信息
type PostInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	RepoID    string `json:"repo_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
