package services

import (
	"context"

	"github.com/yungbote/cas-backend/internal/domain/robotics"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/prompts"
)

const EndpointSkills = "skills"

type RoboticsService interface {
	// Skills maps a free-text intent and environment description to robot skills.
	Skills(ctx context.Context, req robotics.SkillsRequest) (*robotics.SkillsResponse, error)
}

type roboticsService struct {
	m modelCaller
}

func NewRoboticsService(log *logger.Logger, completer Completer, metrics *observability.Metrics, opts Options) RoboticsService {
	if log == nil {
		log = logger.NewNop()
	}
	return &roboticsService{m: modelCaller{
		log:     log.With("service", "RoboticsService"),
		llm:     completer,
		metrics: metrics,
		opts:    opts,
	}}
}

func (s *roboticsService) Skills(ctx context.Context, req robotics.SkillsRequest) (*robotics.SkillsResponse, error) {
	out, err := completeJSON(ctx, s.m, EndpointSkills, prompts.Skills(req), robotics.DefaultSkillsResponse)
	if err != nil {
		return nil, err
	}
	return out.Normalize(), nil
}
