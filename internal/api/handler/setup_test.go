package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/api"
	"github.com/qs3c/xbb_server/internal/api/handler"
	"github.com/qs3c/xbb_server/internal/model"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/pkg/ws"
	"github.com/qs3c/xbb_server/internal/repository"
	"github.com/qs3c/xbb_server/internal/service"
	"github.com/qs3c/xbb_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testContext struct {
	DB     *gorm.DB
	Router *gin.Engine
	Hub    *ws.Hub
	Auth   *service.AuthService
}

// setupRouter 使用线上路由，事件直接发给进程内 Hub
func setupRouter(t *testing.T) *testContext {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: "handler-test-secret", ExpireHours: 1},
		Client: config.ClientConfig{LatestVersion: "1.2.3"},
	}

	userRepo := repository.NewUserRepository(db)
	repoRepo := repository.NewRepoRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	hub := ws.NewHub()
	access := service.NewAccessService(repoRepo, subRepo)
	authService := service.NewAuthService(userRepo, cfg)

	router := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(service.NewUserService(userRepo)),
		handler.NewRepoHandler(service.NewRepoService(repoRepo, postRepo, access, cfg, hub)),
		handler.NewPostHandler(service.NewPostService(postRepo, access, hub)),
		handler.NewCommentHandler(service.NewCommentService(commentRepo, postRepo, access, hub)),
		handler.NewSubscriptionHandler(service.NewSubscriptionService(subRepo, repoRepo, cfg)),
		handler.NewVersionHandler(cfg),
		handler.NewWebSocketHandler(hub, authService, access),
		authService,
		cfg,
	).Setup()

	return &testContext{
		DB:     db,
		Router: router,
		Hub:    hub,
		Auth:   authService,
	}
}

// performRequest 发送 JSON 请求，user 不为空时使用 Basic 认证（测试用户密码为 secret）
func performRequest(r http.Handler, method, path string, body interface{}, user *model.User) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.SetBasicAuth(user.Name, user.Password)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// dataMap 响应中的 data 对象
func dataMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object: %s", w.Body.String())
	return data
}

// dataList 响应中的 data 数组
func dataList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	resp := parseResponse(t, w)
	items, ok := resp.Data.([]interface{})
	require.True(t, ok, "data should be an array: %s", w.Body.String())
	return items
}
