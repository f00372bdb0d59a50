// Package suggest drafts task descriptions and project ideas through an LLM provider
// and applies the results to a session's plan.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/wbl-planner/internal/llm"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/prompts"
	"github.com/jonathan/wbl-planner/internal/types"
)

// DefaultTimeout bounds one provider call.
const DefaultTimeout = 30 * time.Second

// DefaultMaxConcurrent bounds FillTasks.
const DefaultMaxConcurrent = 4

// Gateway turns suggestion requests into provider calls.
type Gateway struct {
	client        llm.Client
	tier          llm.ModelTier
	timeout       time.Duration
	maxConcurrent int
	logger        *observability.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithMaxConcurrent bounds the calls FillTasks keeps in flight.
func WithMaxConcurrent(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.maxConcurrent = n
		}
	}
}

// WithTier selects the model tier.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Gateway) { g.tier = tier }
}

// WithLogger sets the logger.
func WithLogger(l *observability.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGateway wraps client. A nil client yields a gateway whose calls fail with
// ErrNotConfigured.
func NewGateway(client llm.Client, opts ...Option) *Gateway {
	g := &Gateway{
		client:        client,
		tier:          llm.TierStandard,
		timeout:       DefaultTimeout,
		maxConcurrent: DefaultMaxConcurrent,
		logger:        observability.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether a provider client is available.
func (g *Gateway) Configured() bool {
	return g.client != nil
}

// Close releases the provider client.
func (g *Gateway) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// BuildPrompt renders the system and user prompts for req.
func BuildPrompt(req types.SuggestionRequest) (llm.Prompt, error) {
	kind := string(req.Kind())
	system, err := prompts.Render(prompts.SuggestionsFile, kind+"-system", req)
	if err != nil {
		return llm.Prompt{}, err
	}
	user, err := prompts.Render(prompts.SuggestionsFile, kind+"-user", req)
	if err != nil {
		return llm.Prompt{}, err
	}
	return llm.Prompt{System: system, User: user}, nil
}

// Suggest validates req, calls the provider under the gateway timeout and returns
// the cleaned suggestion text.
func (g *Gateway) Suggest(ctx context.Context, req types.SuggestionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", &InvalidRequestError{Cause: err}
	}
	if g.client == nil {
		return "", ErrNotConfigured
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.client.GenerateContent(ctx, prompt, g.tier)
	if err != nil {
		mapped := mapProviderError(err)
		g.logger.Warn("suggestion failed",
			"kind", req.Kind(),
			"skill", req.SkillName,
			"model", g.client.GetModel(g.tier),
			"duration", time.Since(start),
			"error", err,
		)
		return "", mapped
	}

	text = llm.CleanSuggestion(text)
	if text == "" {
		return "", &UpstreamError{Cause: errors.New("empty suggestion")}
	}
	g.logger.Info("suggestion generated",
		"kind", req.Kind(),
		"skill", req.SkillName,
		"model", g.client.GetModel(g.tier),
		"duration", time.Since(start),
	)
	return text, nil
}

func mapProviderError(err error) error {
	var se *llm.StatusError
	if errors.As(err, &se) {
		switch {
		case se.RateLimited():
			return &RateLimitError{Cause: err}
		case se.QuotaExhausted():
			return &QuotaError{Cause: err}
		default:
			return &UpstreamError{Code: se.Code, Cause: err}
		}
	}
	return &UpstreamError{Cause: err}
}
