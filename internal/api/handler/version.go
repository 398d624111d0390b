package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/xbb_server/config"
	"github.com/qs3c/xbb_server/internal/pkg/response"
)

type VersionHandler struct {
	cfg *config.Config
}

func NewVersionHandler(cfg *config.Config) *VersionHandler {
	return &VersionHandler{cfg: cfg}
}

// Latest 客户端最新版本
// GET /api/v1/version
func (h *VersionHandler) Latest(c *gin.Context) {
	response.Success(c, gin.H{
		"version": h.cfg.Client.LatestVersion,
	})
}
