package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
)

// Hub 按仓库分组的 WebSocket 连接
type Hub struct {
	// 每个仓库可以有多个观察者连接（不同用户、多标签页）
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	UserID string
	RepoID string
	Conn   *websocket.Conn
	mu     sync.Mutex // 写锁，防止并发写入
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.RepoID] == nil {
		h.clients[client.RepoID] = make(map[*Client]struct{})
	}
	h.clients[client.RepoID][client] = struct{}{}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    client.UserID,
		"repo_id":    client.RepoID,
		"repo_conns": len(h.clients[client.RepoID]),
	}).Debug("websocket client connected")
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.RepoID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.clients, client.RepoID)
		}
	}
	logger.Log.WithField("user_id", client.UserID).Debug("websocket client disconnected")
}

// BroadcastToRepo 向观察某仓库的所有连接发送消息
func (h *Hub) BroadcastToRepo(repoID string, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns, ok := h.clients[repoID]
	if !ok {
		h.mu.RUnlock()
		return nil
	}
	// 复制一份引用，避免长时间持锁
	clients := make([]*Client, 0, len(conns))
	for c := range conns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			logger.Log.WithError(err).WithField("user_id", c.UserID).Warn("websocket write failed")
		}
	}
	return nil
}

// CloseRepo 断开观察某仓库的全部连接
func (h *Hub) CloseRepo(repoID string) {
	h.mu.Lock()
	conns := h.clients[repoID]
	delete(h.clients, repoID)
	h.mu.Unlock()

	for c := range conns {
		c.mu.Lock()
		_ = c.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "repo deleted"),
			time.Now().Add(time.Second))
		c.Conn.Close()
		c.mu.Unlock()
	}
	if len(conns) > 0 {
		logger.Log.WithField("repo_id", repoID).WithField("conns", len(conns)).Debug("websocket clients dropped")
	}
}

// IsWatched 是否有连接在观察该仓库
func (h *Hub) IsWatched(repoID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns, ok := h.clients[repoID]
	return ok && len(conns) > 0
}

// ConnectionCount 获取在线连接数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}
	return total
}

func logRepoEventError(event *pubsub.RepoEvent, err error) {
	logger.Log.WithError(err).WithFields(logrus.Fields{
		"repo_id": event.RepoID,
		"type":    event.Type,
	}).Warn("failed to forward repo event")
}
