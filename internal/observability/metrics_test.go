package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/health", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveLLMRequest("gpt-4o-mini", "primary", "200", time.Second, 10, 5)
	m.IncOutputFallback("plan")
	m.IncRateLimited()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestObserveLLMRequest(t *testing.T) {
	m := NewMetrics("test", nil)
	m.ObserveLLMRequest("gpt-4o-mini", "primary", "500", 20*time.Millisecond, 0, 0)
	m.ObserveLLMRequest("gpt-4o", "fallback", "200", 30*time.Millisecond, 12, 7)

	if got := testutil.ToFloat64(m.llmRequests.WithLabelValues("gpt-4o-mini", "primary", "500")); got != 1 {
		t.Fatalf("primary failures=%v", got)
	}
	if got := testutil.ToFloat64(m.llmTokens.WithLabelValues("gpt-4o", "input")); got != 12 {
		t.Fatalf("input tokens=%v", got)
	}
	if got := testutil.ToFloat64(m.llmTokens.WithLabelValues("gpt-4o", "output")); got != 7 {
		t.Fatalf("output tokens=%v", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := NewMetrics("test", nil)
	m.IncOutputFallback("coach")
	m.ObserveAPI("POST", "", "200", time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	if !strings.Contains(body, `test_llm_output_fallbacks_total{endpoint="coach"} 1`) {
		t.Fatalf("missing fallback counter:\n%s", body)
	}
	if !strings.Contains(body, `route="unknown"`) {
		t.Fatalf("empty route should be recorded as unknown")
	}
}
