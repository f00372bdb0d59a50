package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/wbl-planner/internal/llm"
	"github.com/jonathan/wbl-planner/internal/types"
)

type fakeClient struct {
	mu      sync.Mutex
	prompts []llm.Prompt
	reply   func(ctx context.Context, p llm.Prompt) (string, error)
}

func (f *fakeClient) GenerateContent(ctx context.Context, p llm.Prompt, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	f.mu.Unlock()
	if f.reply == nil {
		return "Draft a weekly status report.", nil
	}
	return f.reply(ctx, p)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func TestGateway_SuggestTask(t *testing.T) {
	client := &fakeClient{reply: func(context.Context, llm.Prompt) (string, error) {
		return "```\n\"Lead the Monday stand-up.\"\n```", nil
	}}
	g := NewGateway(client)

	text, err := g.Suggest(context.Background(), types.SuggestionRequest{
		SkillName:        "Leadership",
		OrganizationName: "Acme Labs",
		SelectedTools:    []string{"Slack", "Zoom"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lead the Monday stand-up.", text)

	require.Len(t, client.prompts, 1)
	assert.NotEmpty(t, client.prompts[0].System)
	assert.Contains(t, client.prompts[0].User, "Leadership")
	assert.Contains(t, client.prompts[0].User, "Slack, Zoom")
	assert.Contains(t, client.prompts[0].User, "Acme Labs")
}

func TestGateway_SuggestProjectIdeaPrompt(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	_, err := g.Suggest(context.Background(), types.SuggestionRequest{
		Type:             types.SuggestProjectIdea,
		OrganizationName: "Acme Labs",
		SelectedSkills:   []string{"Leadership", "Teamwork"},
	})
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0].User, "Leadership, Teamwork")
}

func TestGateway_InvalidRequestSkipsProvider(t *testing.T) {
	client := &fakeClient{}
	g := NewGateway(client)

	_, err := g.Suggest(context.Background(), types.SuggestionRequest{Type: types.SuggestTask})
	var invalid *InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, client.calls())
}

func TestGateway_NotConfigured(t *testing.T) {
	g := NewGateway(nil)
	assert.False(t, g.Configured())
	_, err := g.Suggest(context.Background(), types.SuggestionRequest{SkillName: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, g.Close())
}

func TestGateway_ErrorMapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "rate limit",
			err:  &llm.StatusError{Provider: llm.ProviderOpenAI, Code: 429, Cause: errors.New("slow down")},
			check: func(t *testing.T, err error) {
				var target *RateLimitError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "Rate limit exceeded. Please try again later.", err.Error())
			},
		},
		{
			name: "quota",
			err:  &llm.StatusError{Provider: llm.ProviderOpenAI, Code: 402, Cause: errors.New("pay up")},
			check: func(t *testing.T, err error) {
				var target *QuotaError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "AI usage limit reached. Please add credits to continue.", err.Error())
			},
		},
		{
			name: "other status",
			err:  &llm.StatusError{Provider: llm.ProviderGemini, Code: 503, Cause: errors.New("unavailable")},
			check: func(t *testing.T, err error) {
				var target *UpstreamError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, 503, target.Code)
				assert.Equal(t, "AI gateway error: 503", err.Error())
			},
		},
		{
			name: "unclassified",
			err:  errors.New("connection reset"),
			check: func(t *testing.T, err error) {
				var target *UpstreamError
				require.ErrorAs(t, err, &target)
				assert.Zero(t, target.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(&fakeClient{reply: func(context.Context, llm.Prompt) (string, error) {
				return "", tt.err
			}})
			_, err := g.Suggest(context.Background(), types.SuggestionRequest{SkillName: "x"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGateway_Timeout(t *testing.T) {
	client := &fakeClient{reply: func(ctx context.Context, _ llm.Prompt) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	g := NewGateway(client, WithTimeout(10*time.Millisecond))

	_, err := g.Suggest(context.Background(), types.SuggestionRequest{SkillName: "x"})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGateway_EmptySuggestion(t *testing.T) {
	g := NewGateway(&fakeClient{reply: func(context.Context, llm.Prompt) (string, error) {
		return "   ", nil
	}})
	_, err := g.Suggest(context.Background(), types.SuggestionRequest{SkillName: "x"})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.True(t, strings.Contains(err.Error(), "empty suggestion"))
}
