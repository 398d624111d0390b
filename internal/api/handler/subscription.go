package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/internal/api/middleware"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/service"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
	}
}

// Subscribe 通过分享链接订阅
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	repo, created, err := h.subService.Subscribe(userID, req.Link)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if created {
		response.Created(c, repo)
		return
	}
	response.SuccessWithMessage(c, "已订阅", repo)
}

// List 订阅的仓库
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	repos, err := h.subService.List(userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, repos)
}

// Unsubscribe 取消订阅
// DELETE /api/v1/subscriptions/:repo_id
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.subService.Unsubscribe(userID, c.Param("repo_id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已取消订阅", nil)
}
