package testutil

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/model"
)

// TestUser 创建测试用户，默认密码 secret
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	user := &model.User{
		ID:       uuid.NewString(),
		Name:     gofakeit.Username() + "_" + uuid.NewString()[:8],
		Password: "secret",
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithName 设置用户名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// WithPassword 设置密码
func WithPassword(password string) func(*model.User) {
	return func(u *model.User) {
		u.Password = password
	}
}

// TestRepo 创建测试仓库
func TestRepo(t *testing.T, db *gorm.DB, ownerID string, opts ...func(*model.Repo)) *model.Repo {
	t.Helper()

	repo := &model.Repo{
		ID:          uuid.NewString(),
		Name:        gofakeit.AppName() + "_" + uuid.NewString()[:8],
		Owner:       ownerID,
		Description: gofakeit.Sentence(6),
		Status:      model.RepoStatusNormal,
	}

	for _, opt := range opts {
		opt(repo)
	}

	if err := db.Create(repo).Error; err != nil {
		t.Fatalf("Failed to create test repo: %v", err)
	}

	return repo
}

// WithRepoName 设置仓库名
func WithRepoName(name string) func(*model.Repo) {
	return func(r *model.Repo) {
		r.Name = name
	}
}

// WithRepoDeleted 创建已软删除的仓库
func WithRepoDeleted() func(*model.Repo) {
	return func(r *model.Repo) {
		r.Status = model.RepoStatusDeleted
	}
}

// WithRepoCreatedAt 设置创建时间
func WithRepoCreatedAt(at time.Time) func(*model.Repo) {
	return func(r *model.Repo) {
		r.CreatedAt = at
		r.UpdatedAt = at
	}
}

// TestPost 创建测试文章
func TestPost(t *testing.T, db *gorm.DB, repoID, authorID string, opts ...func(*model.Post)) *model.Post {
	t.Helper()

	post := &model.Post{
		ID:       uuid.NewString(),
		Title:    gofakeit.Sentence(4),
		Category: gofakeit.Word(),
		Content:  gofakeit.Paragraph(1, 3, 10, " "),
		Author:   authorID,
		RepoID:   repoID,
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// WithPostCreatedAt 设置文章创建时间
func WithPostCreatedAt(at time.Time) func(*model.Post) {
	return func(p *model.Post) {
		p.CreatedAt = at
		p.UpdatedAt = at
	}
}

// TestComment 创建测试评论
func TestComment(t *testing.T, db *gorm.DB, post *model.Post, authorID, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		ID:      uuid.NewString(),
		PostID:  post.ID,
		RepoID:  post.RepoID,
		Content: content,
		Author:  authorID,
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}

// TestReply 创建测试回复
func TestReply(t *testing.T, db *gorm.DB, parent *model.Comment, authorID, content string) *model.Comment {
	t.Helper()

	parentID := parent.ID
	reply := &model.Comment{
		ID:       uuid.NewString(),
		PostID:   parent.PostID,
		RepoID:   parent.RepoID,
		Content:  content,
		Author:   authorID,
		ParentID: &parentID,
	}

	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("Failed to create test reply: %v", err)
	}

	return reply
}

// TestSubscription 创建订阅关系
func TestSubscription(t *testing.T, db *gorm.DB, userID, repoID string) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		ID:     uuid.NewString(),
		UserID: userID,
		RepoID: repoID,
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}
