package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/cas-backend/internal/jsonx"
	"github.com/yungbote/cas-backend/internal/llm"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/apierr"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/prompts"
)

// Completer is the part of llm.Client the services need.
type Completer interface {
	Complete(ctx context.Context, userPrompt, systemPrompt string) (*llm.Completion, error)
}

// Options tune how model output is turned into a response object.
type Options struct {
	// RepairJSON strips code fences and surrounding prose before parsing.
	RepairJSON bool
}

type modelCaller struct {
	log     *logger.Logger
	llm     Completer
	metrics *observability.Metrics
	opts    Options
}

// completeJSON runs one completion for prompt and decodes the answer into a fresh T.
// Output that is empty, not JSON, or the wrong shape yields def().
func completeJSON[T any](ctx context.Context, m modelCaller, endpoint, prompt string, def func() *T) (*T, error) {
	comp, err := m.llm.Complete(ctx, prompt, prompts.System)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, apierr.NotConfigured(err)
		}
		return nil, apierr.Upstream(fmt.Errorf("%s: %w", endpoint, err))
	}

	text := comp.Text()
	if m.opts.RepairJSON {
		text = jsonx.Extract(text)
	}
	fallback := def()
	out := jsonx.Parse(text, fallback)
	if out == nil {
		out = fallback
	}
	if out == fallback {
		m.metrics.IncOutputFallback(endpoint)
		m.log.Debug("model output unusable, returning default",
			"endpoint", endpoint,
			"model", comp.RequestedModel,
			"fallback_model_used", comp.Fallback,
			"output_len", len(text),
		)
	}
	return out, nil
}
