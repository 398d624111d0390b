package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/xbb_server/internal/pkg/pubsub"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// newTestServer 每个连接按 query 中的 repo_id 注册到 hub
func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := &Client{
			UserID: r.URL.Query().Get("user_id"),
			RepoID: r.URL.Query().Get("repo_id"),
			Conn:   conn,
		}
		hub.Register(client)
		defer hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.False(t, hub.IsWatched("r1"))
}

func TestHub_BroadcastToRepo_NoWatchers(t *testing.T) {
	hub := NewHub()

	err := hub.BroadcastToRepo("r1", &Message{Type: "repo_event", Data: "x"})
	assert.NoError(t, err)
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub)
	defer server.Close()

	conn := dial(t, server, "user_id=alice&repo_id=r1")

	require.Eventually(t, func() bool { return hub.IsWatched("r1") }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.ConnectionCount())

	conn.Close()

	require.Eventually(t, func() bool { return !hub.IsWatched("r1") }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_BroadcastToRepo_OnlyMatchingRepo(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub)
	defer server.Close()

	watcher := dial(t, server, "user_id=alice&repo_id=r1")
	defer watcher.Close()
	other := dial(t, server, "user_id=carol&repo_id=r2")
	defer other.Close()

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, time.Second, 10*time.Millisecond)

	err := hub.BroadcastToRepo("r1", &Message{
		Type: "repo_event",
		Data: map[string]string{"entity_id": "p1"},
	})
	require.NoError(t, err)

	watcher.SetReadDeadline(time.Now().Add(time.Second))
	_, received, err := watcher.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(received), "repo_event")
	assert.Contains(t, string(received), "p1")

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err, "watcher of another repo should not receive the message")
}

func TestHub_MultipleWatchersSameRepo(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub)
	defer server.Close()

	var conns []*websocket.Conn
	for _, user := range []string{"alice", "bob", "bob"} {
		conns = append(conns, dial(t, server, "user_id="+user+"&repo_id=r1"))
	}
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 3 }, time.Second, 10*time.Millisecond)
	assert.True(t, hub.IsWatched("r1"))
	assert.False(t, hub.IsWatched("r2"))
}

func TestHub_PublishRepoEvent(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub)
	defer server.Close()

	watcher := dial(t, server, "user_id=alice&repo_id=r1")
	defer watcher.Close()
	require.Eventually(t, func() bool { return hub.IsWatched("r1") }, time.Second, 10*time.Millisecond)

	// 无人观察的仓库直接忽略
	require.NoError(t, hub.PublishRepoEvent(context.Background(), &pubsub.RepoEvent{RepoID: "r2", Type: pubsub.EventCreated}))

	err := hub.PublishRepoEvent(context.Background(), &pubsub.RepoEvent{
		Type:     pubsub.EventUpdated,
		RepoID:   "r1",
		Entity:   pubsub.EntityPost,
		EntityID: "p9",
	})
	require.NoError(t, err)

	watcher.SetReadDeadline(time.Now().Add(time.Second))
	_, received, err := watcher.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(received), MessageTypeRepoEvent)
	assert.Contains(t, string(received), "p9")
}

func TestHub_RepoDeletedDropsWatchers(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub)
	defer server.Close()

	watcher := dial(t, server, "user_id=alice&repo_id=r1")
	defer watcher.Close()
	other := dial(t, server, "user_id=carol&repo_id=r2")
	defer other.Close()
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.ForwardRepoEvent(&pubsub.RepoEvent{
		Type:     pubsub.EventDeleted,
		RepoID:   "r1",
		Entity:   pubsub.EntityRepo,
		EntityID: "r1",
	})

	watcher.SetReadDeadline(time.Now().Add(time.Second))
	_, received, err := watcher.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(received), pubsub.EventDeleted)

	_, _, err = watcher.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))

	assert.False(t, hub.IsWatched("r1"))
	assert.True(t, hub.IsWatched("r2"))
}
