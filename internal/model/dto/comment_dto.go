package dto

// PushCommentRequest 新建或更新评论，ID 为空表示新建
type PushCommentRequest struct {
	ID       *string `json:"id,omitempty" binding:"omitempty,max=64"`
	Content  string  `json:"content" binding:"required,min=1,max=5000"`
	ParentID *string `json:"parent_id,omitempty" binding:"omitempty,max=64"`
}

// CommentItem 评论项
type CommentItem struct {
	ID        string  `json:"id"`
	PostID    string  `json:"post_id"`
	RepoID    string  `json:"repo_id"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	ParentID  *string `json:"parent_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
