package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/http/response"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/apierr"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/ratelimit"
)

// RateLimit admits requests per client IP. Limiter errors are logged and the request is
// let through.
func RateLimit(l ratelimit.Limiter, log *logger.Logger, m *observability.Metrics) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := c.ClientIP()
		res, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			if log != nil {
				log.Warn("rate limiter unavailable, allowing request", "rate_key", key, "error", err)
			}
			c.Next()
			return
		}
		if res.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		}
		if !res.Allowed {
			m.IncRateLimited()
			secs := int(math.Ceil(res.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			response.RespondError(c, http.StatusTooManyRequests, apierr.CodeRateLimited,
				errors.New("too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
