package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/internal/api/middleware"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// List 仓库下的文章
// GET /api/v1/repos/:repo_id/posts
func (h *PostHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	posts, err := h.postService.List(userID, c.Param("repo_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, posts)
}

// Create 新建文章
// POST /api/v1/repos/:repo_id/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Create(userID, c.Param("repo_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, post)
}

// Get 文章详情
// GET /api/v1/repos/:repo_id/posts/:post_id
func (h *PostHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	post, err := h.postService.Get(userID, c.Param("repo_id"), c.Param("post_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, post)
}

// Push 客户端同步文章（不存在则创建）
// PUT /api/v1/repos/:repo_id/posts/:post_id
func (h *PostHandler) Push(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.PushPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, result, err := h.postService.Push(userID, c.Param("repo_id"), c.Param("post_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writePushResult(c, result, post)
}

// Delete 删除文章
// DELETE /api/v1/repos/:repo_id/posts/:post_id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.postService.Delete(userID, c.Param("repo_id"), c.Param("post_id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
