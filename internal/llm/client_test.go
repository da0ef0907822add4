package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/cas-backend/internal/config"
	"github.com/yungbote/cas-backend/internal/observability"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// recorder captures every outbound request body in order.
type recorder struct {
	mu    sync.Mutex
	calls []chatCompletionRequest
	auth  []string
}

func (r *recorder) record(t *testing.T, req *http.Request) chatCompletionRequest {
	t.Helper()
	var in chatCompletionRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		t.Fatalf("decode req: %v", err)
	}
	r.mu.Lock()
	r.calls = append(r.calls, in)
	r.auth = append(r.auth, req.Header.Get("Authorization"))
	r.mu.Unlock()
	return in
}

func (r *recorder) models() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Model)
	}
	return out
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		BaseURL:             "http://upstream",
		ChatCompletionsPath: "/v1/chat/completions",
		APIKey:              "sk-test",
		PrimaryModel:        "primary-model",
		FallbackModel:       "fallback-model",
		Temperature:         0.4,
		Timeout:             config.Duration{Duration: 2 * time.Second},
	}
}

func jsonResponse(status int, v any) *http.Response {
	b, _ := json.Marshal(v)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":    "chatcmpl-1",
		"model": "served",
		"choices": []any{
			map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"prompt_tokens": 11, "completion_tokens": 4, "total_tokens": 15},
	}
}

func newTestClient(t *testing.T, cfg config.LLMConfig, fn roundTripperFunc) *Client {
	t.Helper()
	c, err := NewWithHTTPClient(cfg, nil, observability.NewMetrics("test", nil), &http.Client{Transport: fn})
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	return c
}

func TestCompletePrimarySuccessSkipsFallback(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, testConfig(), func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "http://upstream/v1/chat/completions" {
			t.Fatalf("unexpected url: %s", req.URL)
		}
		rec.record(t, req)
		return jsonResponse(http.StatusOK, completionBody(`{"ok":true}`)), nil
	})

	out, err := c.Complete(context.Background(), "user prompt", "system prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := rec.models(); len(got) != 1 || got[0] != "primary-model" {
		t.Fatalf("calls=%v", got)
	}
	if out.Text() != `{"ok":true}` || out.Fallback || out.RequestedModel != "primary-model" {
		t.Fatalf("out=%+v", out)
	}

	call := rec.calls[0]
	if call.Temperature != 0.4 {
		t.Fatalf("temperature=%v", call.Temperature)
	}
	if len(call.Messages) != 2 || call.Messages[0].Role != "system" || call.Messages[0].Content != "system prompt" ||
		call.Messages[1].Role != "user" || call.Messages[1].Content != "user prompt" {
		t.Fatalf("messages=%+v", call.Messages)
	}
	if rec.auth[0] != "Bearer sk-test" {
		t.Fatalf("authorization=%q", rec.auth[0])
	}
}

func TestCompleteFallsBackOnceOnStatus(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, testConfig(), func(req *http.Request) (*http.Response, error) {
		in := rec.record(t, req)
		if in.Model == "primary-model" {
			return jsonResponse(http.StatusTooManyRequests, map[string]any{"error": "slow down"}), nil
		}
		return jsonResponse(http.StatusOK, completionBody("from fallback")), nil
	})

	out, err := c.Complete(context.Background(), "u", "s")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := rec.models(); len(got) != 2 || got[0] != "primary-model" || got[1] != "fallback-model" {
		t.Fatalf("calls=%v", got)
	}
	if !out.Fallback || out.RequestedModel != "fallback-model" || out.Text() != "from fallback" {
		t.Fatalf("out=%+v", out)
	}
	if rec.calls[1].Messages[1].Content != "u" {
		t.Fatalf("fallback must resend the same prompt")
	}
}

func TestCompleteFallsBackOnTransportAndDecodeErrors(t *testing.T) {
	cases := map[string]func() (*http.Response, error){
		"transport": func() (*http.Response, error) { return nil, errors.New("connection reset") },
		"bad body": func() (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("<html>"))}, nil
		},
	}
	for name, primary := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{}
			c := newTestClient(t, testConfig(), func(req *http.Request) (*http.Response, error) {
				in := rec.record(t, req)
				if in.Model == "primary-model" {
					return primary()
				}
				return jsonResponse(http.StatusOK, completionBody("ok")), nil
			})
			if _, err := c.Complete(context.Background(), "u", "s"); err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if got := rec.models(); len(got) != 2 {
				t.Fatalf("calls=%v", got)
			}
		})
	}
}

func TestCompleteBothFailPropagates(t *testing.T) {
	rec := &recorder{}
	c := newTestClient(t, testConfig(), func(req *http.Request) (*http.Response, error) {
		in := rec.record(t, req)
		if in.Model == "primary-model" {
			return jsonResponse(http.StatusInternalServerError, map[string]any{"error": "boom"}), nil
		}
		return jsonResponse(http.StatusServiceUnavailable, map[string]any{"error": "down"}), nil
	})

	_, err := c.Complete(context.Background(), "u", "s")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := rec.models(); len(got) != 2 {
		t.Fatalf("expected exactly two attempts, got %v", got)
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError in chain: %v", err)
	}
	if !strings.Contains(err.Error(), "status=503") || !strings.Contains(err.Error(), "status=500") {
		t.Fatalf("error should mention both attempts: %v", err)
	}
}

func TestCompleteMissingAPIKeyMakesNoCall(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = ""
	c := newTestClient(t, cfg, func(req *http.Request) (*http.Response, error) {
		t.Fatalf("no request expected")
		return nil, nil
	})
	if _, err := c.Complete(context.Background(), "u", "s"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err=%v", err)
	}
}

func TestCompleteCanceledContextSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	c := newTestClient(t, testConfig(), func(req *http.Request) (*http.Response, error) {
		rec.record(t, req)
		cancel()
		return nil, context.Canceled
	})
	_, err := c.Complete(ctx, "u", "s")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if got := rec.models(); len(got) != 1 {
		t.Fatalf("calls=%v", got)
	}
}

func TestCompletionTextWithoutChoices(t *testing.T) {
	var nilCompletion *Completion
	if nilCompletion.Text() != "" {
		t.Fatalf("nil completion should have empty text")
	}
	if (&Completion{}).Text() != "" {
		t.Fatalf("empty choices should have empty text")
	}
}
