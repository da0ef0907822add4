// Package llm talks to an OpenAI-compatible chat completion endpoint with a single
// fallback model.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/cas-backend/internal/config"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/logger"
)

const (
	rolePrimary  = "primary"
	roleFallback = "fallback"

	maxErrorBody = 1 << 20
)

type Client struct {
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer

	endpoint      string
	apiKey        string
	primaryModel  string
	fallbackModel string
	temperature   float64
	timeout       time.Duration

	httpClient *http.Client
}

func New(cfg config.LLMConfig, log *logger.Logger, metrics *observability.Metrics) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("llm: base_url required")
	}
	path := strings.TrimSpace(cfg.ChatCompletionsPath)
	if path == "" {
		path = "/v1/chat/completions"
	}
	primary := strings.TrimSpace(cfg.PrimaryModel)
	if primary == "" {
		return nil, errors.New("llm: primary model required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		log:           log.With("component", "LLMClient"),
		metrics:       metrics,
		tracer:        otel.Tracer("github.com/yungbote/cas-backend/internal/llm"),
		endpoint:      baseURL + path,
		apiKey:        strings.TrimSpace(cfg.APIKey),
		primaryModel:  primary,
		fallbackModel: strings.TrimSpace(cfg.FallbackModel),
		temperature:   cfg.Temperature,
		timeout:       cfg.Timeout.Duration,
		httpClient:    &http.Client{Transport: otelhttp.NewTransport(tr)},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewWithHTTPClient(cfg config.LLMConfig, log *logger.Logger, metrics *observability.Metrics, httpClient *http.Client) (*Client, error) {
	c, err := New(cfg, log, metrics)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

func (c *Client) PrimaryModel() string  { return c.primaryModel }
func (c *Client) FallbackModel() string { return c.fallbackModel }

// Complete sends the system and user prompts to the primary model. If that attempt fails
// for any reason it is repeated once, unchanged, against the fallback model. The second
// failure is returned joined with the first.
func (c *Client) Complete(ctx context.Context, userPrompt, systemPrompt string) (*Completion, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	out, err := c.attempt(ctx, c.primaryModel, rolePrimary, messages)
	if err == nil {
		return out, nil
	}
	primaryErr := fmt.Errorf("primary model %s: %w", c.primaryModel, err)

	if c.fallbackModel == "" {
		return nil, primaryErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.Join(primaryErr, ctxErr)
	}
	c.log.Warn("primary completion failed, trying fallback",
		"primary_model", c.primaryModel,
		"fallback_model", c.fallbackModel,
		"error", err,
	)

	out, err = c.attempt(ctx, c.fallbackModel, roleFallback, messages)
	if err != nil {
		c.log.Error("fallback completion failed", "fallback_model", c.fallbackModel, "error", err)
		return nil, errors.Join(primaryErr, fmt.Errorf("fallback model %s: %w", c.fallbackModel, err))
	}
	out.Fallback = true
	return out, nil
}

func (c *Client) attempt(ctx context.Context, model, role string, messages []Message) (*Completion, error) {
	ctx, span := c.tracer.Start(ctx, "llm.chat_completion", trace.WithAttributes(
		attribute.String("llm.model", model),
		attribute.String("llm.attempt", role),
	))
	defer span.End()

	start := time.Now()
	reqBody := chatCompletionRequest{
		Model:       model,
		Temperature: c.temperature,
		Messages:    messages,
	}

	var out Completion
	status, err := c.doJSON(ctx, reqBody, &out)
	dur := time.Since(start)

	statusLabel := "error"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
	}
	var inTok, outTok int
	if err == nil && out.Usage != nil {
		inTok, outTok = out.Usage.PromptTokens, out.Usage.CompletionTokens
	}
	c.metrics.ObserveLLMRequest(model, role, statusLabel, dur, inTok, outTok)
	span.SetAttributes(attribute.Int("http.status_code", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c.log.Debug("completion ok", "model", model, "attempt", role, "duration_ms", dur.Milliseconds())
	out.RequestedModel = model
	return &out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// doJSON posts body and decodes a 2xx response into out. The returned status is 0 when
// no response was received.
func (c *Client) doJSON(ctx context.Context, body chatCompletionRequest, out any) (int, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, err
	}

	ctx2 := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx2, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return 0, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &HTTPError{Model: body.Model, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode completion: %w", err)
	}
	return resp.StatusCode, nil
}
