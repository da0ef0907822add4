package app

import (
	"github.com/yungbote/cas-backend/internal/config"
	httpH "github.com/yungbote/cas-backend/internal/http/handlers"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	CAS      *httpH.CASHandler
	Robotics *httpH.RoboticsHandler
}

func wireHandlers(cfg *config.Config, clients Clients, svcs Services, version string) Handlers {
	return Handlers{
		Health: httpH.NewHealthHandler(httpH.HealthInfo{
			Service:       cfg.Tracing.ServiceName,
			Model:         clients.LLM.PrimaryModel(),
			FallbackModel: clients.LLM.FallbackModel(),
			Version:       version,
		}),
		CAS:      httpH.NewCASHandler(svcs.CAS),
		Robotics: httpH.NewRoboticsHandler(svcs.Robotics),
	}
}
