package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelRepoEvents = "repo_events"
)

// 事件类型
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// 实体类型
const (
	EntityRepo    = "repo"
	EntityPost    = "post"
	EntityComment = "comment"
)

// RepoEvent 仓库内容变更事件
type RepoEvent struct {
	Type     string    `json:"type"`
	RepoID   string    `json:"repo_id"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	ActorID  string    `json:"actor_id"`
	At       time.Time `json:"at"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishRepoEvent 发布仓库变更事件
func (p *Publisher) PublishRepoEvent(ctx context.Context, event *RepoEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal repo event: %w", err)
	}

	return p.client.Publish(ctx, ChannelRepoEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅仓库变更事件，直到 ctx 结束
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*RepoEvent)) error {
	ps := s.client.Subscribe(ctx, ChannelRepoEvents)
	defer ps.Close()

	// 等待订阅确认，保证返回前的发布不会丢失
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event RepoEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
