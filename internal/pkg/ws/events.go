package ws

import (
	"context"

	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
)

// MessageTypeRepoEvent 推送给观察者的仓库变更消息类型
const MessageTypeRepoEvent = "repo_event"

// ForwardRepoEvent 将变更事件推送给观察该仓库的连接，作为 pubsub 订阅回调使用
// 仓库被删除时，推送后断开这些连接
func (h *Hub) ForwardRepoEvent(event *pubsub.RepoEvent) {
	if !h.IsWatched(event.RepoID) {
		return
	}
	if err := h.BroadcastToRepo(event.RepoID, &Message{Type: MessageTypeRepoEvent, Data: event}); err != nil {
		logRepoEventError(event, err)
	}
	if event.Entity == pubsub.EntityRepo && event.Type == pubsub.EventDeleted {
		h.CloseRepo(event.RepoID)
	}
}

// PublishRepoEvent 未启用 Redis 时，Hub 直接作为进程内事件发布方
func (h *Hub) PublishRepoEvent(_ context.Context, event *pubsub.RepoEvent) error {
	h.ForwardRepoEvent(event)
	return nil
}
