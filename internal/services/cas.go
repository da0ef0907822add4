package services

import (
	"context"

	"github.com/yungbote/cas-backend/internal/domain/cas"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/prompts"
)

const (
	EndpointPlan  = "plan"
	EndpointCoach = "coach"
)

type CASService interface {
	// Plan turns a goal and the user's current state into a short list of small steps.
	Plan(ctx context.Context, req cas.PlanRequest) (*cas.PlanResponse, error)
	// Coach answers a question about an existing plan and may suggest edits to its items.
	Coach(ctx context.Context, req cas.CoachRequest) (*cas.CoachResponse, error)
}

type casService struct {
	m modelCaller
}

func NewCASService(log *logger.Logger, completer Completer, metrics *observability.Metrics, opts Options) CASService {
	if log == nil {
		log = logger.NewNop()
	}
	return &casService{m: modelCaller{
		log:     log.With("service", "CASService"),
		llm:     completer,
		metrics: metrics,
		opts:    opts,
	}}
}

func (s *casService) Plan(ctx context.Context, req cas.PlanRequest) (*cas.PlanResponse, error) {
	out, err := completeJSON(ctx, s.m, EndpointPlan, prompts.Plan(req), cas.DefaultPlanResponse)
	if err != nil {
		return nil, err
	}
	return out.Normalize(), nil
}

func (s *casService) Coach(ctx context.Context, req cas.CoachRequest) (*cas.CoachResponse, error) {
	out, err := completeJSON(ctx, s.m, EndpointCoach, prompts.Coach(req), cas.DefaultCoachResponse)
	if err != nil {
		return nil, err
	}
	return out.Normalize(), nil
}
