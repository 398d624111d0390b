package service

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
	"github.com/qs3c/xbb_server/internal/repository"
	"github.com/qs3c/xbb_server/internal/testutil"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []*pubsub.RepoEvent
}

func (p *recordingPublisher) PublishRepoEvent(_ context.Context, event *pubsub.RepoEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []*pubsub.RepoEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*pubsub.RepoEvent(nil), p.events...)
}

type testEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	events   *recordingPublisher
	access   *AccessService
	auth     *AuthService
	users    *UserService
	repos    *RepoService
	posts    *PostService
	comments *CommentService
	subs     *SubscriptionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, testutil.SetupTestDB(t))
}

func newTestEnvWithDB(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	}

	userRepo := repository.NewUserRepository(db)
	repoRepo := repository.NewRepoRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	events := &recordingPublisher{}
	access := NewAccessService(repoRepo, subRepo)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		events:   events,
		access:   access,
		auth:     NewAuthService(userRepo, cfg),
		users:    NewUserService(userRepo),
		repos:    NewRepoService(repoRepo, postRepo, access, cfg, events),
		posts:    NewPostService(postRepo, access, events),
		comments: NewCommentService(commentRepo, postRepo, access, events),
		subs:     NewSubscriptionService(subRepo, repoRepo, cfg),
	}
}
