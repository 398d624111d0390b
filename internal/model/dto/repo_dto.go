package dto

import "time"

// CreateRepoRequest 创建仓库请求
type CreateRepoRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// PushRepoRequest 客户端同步仓库（自带 ID）
type PushRepoRequest struct {
	ID          string     `json:"id" binding:"required,max=64"`
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Owner       string     `json:"owner" binding:"required,max=64"`
	Description string     `json:"description" binding:"max=2000"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// RepoInfo 仓库信息
type RepoInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// PostSummary 同步用的文章摘要
type PostSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	UpdatedAt string `json:"updated_at"`
}

// SyncInfoResponse 仓库同步信息
type SyncInfoResponse struct {
	Repo         *RepoInfo      `json:"repo"`
	PostsSummary []*PostSummary `json:"posts_summary"`
}

// ShareLinkResponse 分享链接
type ShareLinkResponse struct {
	Link string `json:"link"`
}
