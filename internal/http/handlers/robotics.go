package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/domain/robotics"
	"github.com/yungbote/cas-backend/internal/http/response"
	"github.com/yungbote/cas-backend/internal/services"
)

type RoboticsHandler struct {
	svc services.RoboticsService
}

func NewRoboticsHandler(svc services.RoboticsService) *RoboticsHandler {
	return &RoboticsHandler{svc: svc}
}

// POST /api/robotics/skills
func (h *RoboticsHandler) Skills(c *gin.Context) {
	var req robotics.SkillsRequest
	if err := bindObject(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out, err := h.svc.Skills(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
