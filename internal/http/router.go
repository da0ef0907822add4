package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/cas-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cas-backend/internal/http/middleware"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/ratelimit"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics
	Limiter ratelimit.Limiter

	FrontendOrigin  string
	MaxRequestBytes int64
	// TrustedProxies may set the client IP through forwarding headers. Nil means the
	// socket peer is always the client, which is what the rate limiter keys on.
	TrustedProxies []string

	// TracingService enables otelgin spans named after this service when non-empty.
	TracingService string
	// ExposeMetrics mounts GET /metrics.
	ExposeMetrics bool

	HealthHandler   *httpH.HealthHandler
	CASHandler      *httpH.CASHandler
	RoboticsHandler *httpH.RoboticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		if cfg.Log != nil {
			cfg.Log.Warn("invalid trusted proxies, trusting none", "error", err)
		}
		_ = r.SetTrustedProxies(nil)
	}
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS(cfg.FrontendOrigin))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.BodyLimit(cfg.MaxRequestBytes))

	if cfg.ExposeMetrics && cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.RateLimit(cfg.Limiter, cfg.Log, cfg.Metrics))
	{
		// Health
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.HealthCheck)
			api.GET("/health/details", cfg.HealthHandler.Details)
		}

		// CAS
		if cfg.CASHandler != nil {
			api.POST("/cas/plan", cfg.CASHandler.Plan)
			api.POST("/cas/coach", cfg.CASHandler.Coach)
		}

		// Robotics
		if cfg.RoboticsHandler != nil {
			api.POST("/robotics/skills", cfg.RoboticsHandler.Skills)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found", "code": "not_found"}})
	})
	return r
}
