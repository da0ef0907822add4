package app

import (
	"github.com/yungbote/cas-backend/internal/config"
	httpserver "github.com/yungbote/cas-backend/internal/http"
	"github.com/yungbote/cas-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg *config.Config, clients Clients, h Handlers) *httpserver.Server {
	log.Info("Wiring router...")
	rc := httpserver.RouterConfig{
		Log:             log,
		Metrics:         clients.Metrics,
		Limiter:         clients.Limiter,
		FrontendOrigin:  cfg.CORS.FrontendOrigin,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
		TrustedProxies:  cfg.HTTP.TrustedProxies,
		ExposeMetrics:   cfg.Metrics.Enabled,
		HealthHandler:   h.Health,
		CASHandler:      h.CAS,
		RoboticsHandler: h.Robotics,
	}
	if cfg.Tracing.Enabled {
		rc.TracingService = cfg.Tracing.ServiceName
	}
	return httpserver.NewServer(httpserver.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	}, rc)
}
