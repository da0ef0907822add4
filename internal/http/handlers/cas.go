package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/domain/cas"
	"github.com/yungbote/cas-backend/internal/http/response"
	"github.com/yungbote/cas-backend/internal/services"
)

type CASHandler struct {
	svc services.CASService
}

func NewCASHandler(svc services.CASService) *CASHandler {
	return &CASHandler{svc: svc}
}

// POST /api/cas/plan
func (h *CASHandler) Plan(c *gin.Context) {
	var req cas.PlanRequest
	if err := bindObject(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out, err := h.svc.Plan(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/cas/coach
func (h *CASHandler) Coach(c *gin.Context) {
	var req cas.CoachRequest
	if err := bindObject(c, &req); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out, err := h.svc.Coach(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
