// Package integrations contains the adapters to external collaborators: the
// LLM backend, git, the gh CLI, and the source formatter.
package integrations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianshen/aidocgen/internal/docgen"
	"github.com/julianshen/aidocgen/internal/provider"
)

const defaultRequestTimeout = 60 * time.Second

// LLMCompleter wraps an LLMProvider to collect streamed text into a single
// string. It bounds each backend call with a timeout (the pipeline has no
// internal timeout of its own) and throttles requests through a shared rate
// limiter so batch runs stay inside the backend's request rate.
type LLMCompleter struct {
	provider provider.LLMProvider
	model    string
	limiter  *rate.Limiter
	timeout  time.Duration
}

// CompleterOption configures an LLMCompleter.
type CompleterOption func(*LLMCompleter)

// WithRateLimit throttles requests to n per second.
func WithRateLimit(n float64) CompleterOption {
	return func(c *LLMCompleter) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) CompleterOption {
	return func(c *LLMCompleter) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewLLMCompleter creates a new LLMCompleter.
func NewLLMCompleter(p provider.LLMProvider, model string, opts ...CompleterOption) *LLMCompleter {
	c := &LLMCompleter{
		provider: p,
		model:    model,
		limiter:  rate.NewLimiter(rate.Limit(2), 1),
		timeout:  defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends one completion request and returns the full response text.
func (c *LLMCompleter) Complete(ctx context.Context, spec docgen.CompletionSpec) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := provider.CompletionRequest{
		Model:       c.model,
		Messages:    []provider.Message{provider.NewUserMessage(spec.Prompt)},
		MaxTokens:   spec.MaxTokens,
		Temperature: provider.Temp(spec.Temperature),
		Stop:        spec.Stop,
	}

	ch, err := c.provider.Stream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm complete: %w", err)
	}

	var parts []string
	for evt := range ch {
		switch evt.Type {
		case "text_delta":
			parts = append(parts, evt.Text)
		case "error":
			return "", fmt.Errorf("llm stream error: %w", evt.Error)
		}
	}

	return strings.Join(parts, ""), nil
}
