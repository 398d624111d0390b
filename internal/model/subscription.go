package model

// Subscription 订阅关系：仓库所有者授予其他用户的只读权限
type Subscription struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	UserID string `gorm:"size:64;not null;uniqueIndex:idx_subscription_user_repo" json:"user_id"`
	RepoID string `gorm:"size:64;not null;uniqueIndex:idx_subscription_user_repo;index" json:"repo_id"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
