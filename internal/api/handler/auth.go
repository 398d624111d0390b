package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/internal/model/dto"
	"github.com/qs3c/xbb_server/internal/pkg/response"
	"github.com/qs3c/xbb_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ValidateName 用户名是否已存在
// GET /api/v1/users/validate-name/:name
func (h *AuthHandler) ValidateName(c *gin.Context) {
	exists, err := h.authService.ValidateName(c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, &dto.ValidateNameResponse{Exist: exists})
}

// ValidateLogin 登录，用户不存在时自动注册
// POST /api/v1/users/validate-login
func (h *AuthHandler) ValidateLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, created, err := h.authService.LoginOrRegister(&req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if created {
		response.Created(c, resp)
		return
	}
	response.Success(c, resp)
}
