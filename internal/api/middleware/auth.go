package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

// Authenticator 校验调用方身份，返回用户 ID
type Authenticator interface {
	Authenticate(name, password string) (string, error)
	ValidateToken(token string) (string, error)
}

// Auth 认证中间件，支持 Basic（用户名+密码）与 Bearer（JWT）两种方式
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "请提供认证信息")
			return
		}

		var (
			userID string
			err    error
		)
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			userID, err = authenticator.ValidateToken(token)
		} else if name, password, ok := c.Request.BasicAuth(); ok {
			userID, err = authenticator.Authenticate(name, password)
		} else {
			response.AuthError(c, "认证格式错误")
			return
		}

		if err != nil {
			response.FromError(c, err)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
