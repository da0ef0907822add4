package app

import (
	"github.com/yungbote/cas-backend/internal/config"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/services"
)

type Services struct {
	CAS      services.CASService
	Robotics services.RoboticsService
}

func wireServices(log *logger.Logger, cfg *config.Config, clients Clients) Services {
	log.Info("Wiring services...")
	opts := services.Options{RepairJSON: cfg.LLM.JSONRepair}
	return Services{
		CAS:      services.NewCASService(log, clients.LLM, clients.Metrics, opts),
		Robotics: services.NewRoboticsService(log, clients.LLM, clients.Metrics, opts),
	}
}
