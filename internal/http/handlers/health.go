package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/http/response"
)

type HealthInfo struct {
	Service       string
	Model         string
	FallbackModel string
	Version       string
}

type HealthHandler struct {
	info HealthInfo
}

func NewHealthHandler(info HealthInfo) *HealthHandler { return &HealthHandler{info: info} }

// GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "ok"})
}

// GET /api/health/details
func (h *HealthHandler) Details(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":        "ok",
		"service":       h.info.Service,
		"model":         h.info.Model,
		"fallbackModel": h.info.FallbackModel,
		"version":       h.info.Version,
	})
}
