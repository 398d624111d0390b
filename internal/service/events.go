package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/internal/pkg/apperr"
	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
)

// EventPublisher 仓库变更事件的发布方（Redis 或进程内 Hub）
type EventPublisher interface {
	PublishRepoEvent(ctx context.Context, event *pubsub.RepoEvent) error
}

// PushResult push 的结果：新建或更新
type PushResult int

const (
	PushCreated PushResult = iota + 1
	PushUpdated
)

func (r PushResult) String() string {
	switch r {
	case PushCreated:
		return "created"
	case PushUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

const publishTimeout = 2 * time.Second

// publish 尽力发布事件，失败只记录日志
func publish(events EventPublisher, eventType, repoID, entity, entityID, actorID string) {
	if events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := events.PublishRepoEvent(ctx, &pubsub.RepoEvent{
		Type:     eventType,
		RepoID:   repoID,
		Entity:   entity,
		EntityID: entityID,
		ActorID:  actorID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		logger.Log.WithError(err).WithField("repo_id", repoID).Warn("failed to publish repo event")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// storeError 存储层错误统一转换为 Internal
func storeError(err error) error {
	logger.Log.WithError(err).Error("store failure")
	return apperr.Internal(err)
}

func now() time.Time {
	return time.Now().UTC()
}
