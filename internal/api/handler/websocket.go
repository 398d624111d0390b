package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/qs3c/xbb_server/internal/pkg/logger"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/pkg/ws"
	"github.com/qs3c/xbb_server/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	hub           *ws.Hub
	authService   *service.AuthService
	accessService *service.AccessService
}

func NewWebSocketHandler(hub *ws.Hub, authService *service.AuthService, accessService *service.AccessService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		authService:   authService,
		accessService: accessService,
	}
}

// Handle 观察仓库变更，连接时校验读权限
// GET /api/v1/ws?token=xxx&repo_id=xxx
func (h *WebSocketHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.AuthError(c, "缺少 token")
		return
	}

	userID, err := h.authService.ValidateToken(token)
	if err != nil {
		response.FromError(c, err)
		return
	}

	repoID := c.Query("repo_id")
	if repoID == "" {
		response.ParamError(c, "缺少 repo_id")
		return
	}
	if err := h.accessService.AuthorizeRead(repoID, userID); err != nil {
		response.FromError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to upgrade websocket connection")
		return
	}

	client := &ws.Client{
		UserID: userID,
		RepoID: repoID,
		Conn:   conn,
	}

	h.hub.Register(client)

	// 只读取以检测断开
	go func() {
		defer func() {
			h.hub.Unregister(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
