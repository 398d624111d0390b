package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/internal/api/middleware"
	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List 获取评论列表
// GET /api/v1/repos/:repo_id/posts/:post_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.commentService.List(userID, c.Param("repo_id"), c.Param("post_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, items)
}

// Get 获取单条评论
// GET /api/v1/repos/:repo_id/posts/:post_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	item, err := h.commentService.Get(userID, c.Param("repo_id"), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, item)
}

// Push 发表或修改评论（带 id 为修改）
// POST /api/v1/repos/:repo_id/posts/:post_id/comments
func (h *CommentHandler) Push(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.PushCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, result, err := h.commentService.Push(userID, c.Param("repo_id"), c.Param("post_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writePushResult(c, result, item)
}

// Delete 删除评论
// DELETE /api/v1/repos/:repo_id/posts/:post_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	err := h.commentService.Delete(userID, c.Param("repo_id"), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
