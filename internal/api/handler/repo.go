package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/internal/api/middleware"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/service"
)

type RepoHandler struct {
	repoService *service.RepoService
}

func NewRepoHandler(repoService *service.RepoService) *RepoHandler {
	return &RepoHandler{
		repoService: repoService,
	}
}

// List 当前用户的仓库列表
// GET /api/v1/repos
func (h *RepoHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	repos, err := h.repoService.ListByOwner(userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, repos)
}

// Create 创建仓库
// POST /api/v1/repos
func (h *RepoHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	repo, err := h.repoService.Create(userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, repo)
}

// Get 仓库详情
// GET /api/v1/repos/:repo_id
func (h *RepoHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	repo, err := h.repoService.Get(userID, c.Param("repo_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, repo)
}

// Push 客户端同步仓库（不存在则创建）
// PUT /api/v1/repos/:repo_id
func (h *RepoHandler) Push(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.PushRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	repo, result, err := h.repoService.Push(userID, c.Param("repo_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writePushResult(c, result, repo)
}

// Delete 删除仓库（软删除）
// DELETE /api/v1/repos/:repo_id
func (h *RepoHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.repoService.Delete(userID, c.Param("repo_id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// SyncInfo 仓库同步信息
// GET /api/v1/repos/:repo_id/sync
func (h *RepoHandler) SyncInfo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.repoService.SyncInfo(userID, c.Param("repo_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, info)
}

// Share 生成订阅链接
// GET /api/v1/repos/:repo_id/share
func (h *RepoHandler) Share(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	link, err := h.repoService.ShareLink(userID, c.Param("repo_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, link)
}

// writePushResult 新建返回 201，更新返回 200
func writePushResult(c *gin.Context, result service.PushResult, data interface{}) {
	if result == service.PushCreated {
		response.Created(c, data)
		return
	}
	response.Success(c, data)
}
