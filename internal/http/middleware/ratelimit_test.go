package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cas-backend/internal/ratelimit"
)

type limiterFunc func(ctx context.Context, key string) (ratelimit.Result, error)

func (f limiterFunc) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	return f(ctx, key)
}

func serveLimited(t *testing.T, l ratelimit.Limiter, n int) []*httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(l, nil, nil))
	r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	out := make([]*httptest.ResponseRecorder, 0, n)
	for i := 0; i < n; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		out = append(out, rec)
	}
	return out
}

func TestRateLimitRejectsAfterBudget(t *testing.T) {
	recs := serveLimited(t, ratelimit.NewMemory(ratelimit.Config{Max: 3, Window: time.Minute}), 4)
	for i, rec := range recs[:3] {
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d status=%d", i, rec.Code)
		}
	}
	last := recs[3]
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", last.Code)
	}
	if ra := last.Header().Get("Retry-After"); ra == "" || ra == "0" {
		t.Fatalf("Retry-After=%q", ra)
	}
	want := `{"error":{"message":"too many requests, please try again later","code":"rate_limited"}}`
	if last.Body.String() != want {
		t.Fatalf("body=%s", last.Body.String())
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	l := limiterFunc(func(context.Context, string) (ratelimit.Result, error) {
		return ratelimit.Result{}, errors.New("redis down")
	})
	recs := serveLimited(t, l, 1)
	if recs[0].Code != http.StatusOK {
		t.Fatalf("status=%d", recs[0].Code)
	}
}
