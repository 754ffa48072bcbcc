package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/session"
)

type stubReplier struct {
	text  string
	err   error
	calls int
}

func (s *stubReplier) Reply(context.Context, string, []session.Message) (string, error) {
	s.calls++
	return s.text, s.err
}

func localDispatcher() *dispatch.Dispatcher {
	return dispatch.New(catalog.Default())
}

func TestChain_FirstSuccessfulProviderWins(t *testing.T) {
	claude := &stubReplier{err: errors.New("401 unauthorized")}
	gemini := &stubReplier{text: "from gemini"}
	openai := &stubReplier{text: "from openai"}

	c := NewChain(localDispatcher(), nil)
	c.Add(ProviderAnthropic, claude)
	c.Add(ProviderGemini, gemini)
	c.Add(ProviderOpenAI, openai)

	text, service := c.Reply(context.Background(), "wheat", nil)
	assert.Equal(t, "from gemini", text)
	assert.Equal(t, "Gemini AI", service)
	assert.Equal(t, 1, claude.calls)
	assert.Equal(t, 0, openai.calls)
}

func TestChain_EmptyAnswerFallsThrough(t *testing.T) {
	c := NewChain(localDispatcher(), nil)
	c.Add(ProviderAnthropic, &stubReplier{text: "  "})
	c.Add(ProviderOpenAI, &stubReplier{text: "real"})

	text, service := c.Reply(context.Background(), "wheat", nil)
	assert.Equal(t, "real", text)
	assert.Equal(t, "OpenAI GPT", service)
}

func TestChain_LocalFallback(t *testing.T) {
	c := NewChain(localDispatcher(), nil)
	c.Add(ProviderAnthropic, &stubReplier{err: errors.New("down")})

	text, service := c.Reply(context.Background(), "wheat", nil)
	assert.Equal(t, dispatch.ServiceName, service)
	assert.Contains(t, text, "Drought: 6/10")
}

func TestChain_LocalAnswersEvenWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChain(localDispatcher(), nil)
	c.Add(ProviderGemini, &stubReplier{err: context.Canceled})

	text, service := c.Reply(ctx, "best for drought", nil)
	assert.Equal(t, dispatch.ServiceName, service)
	assert.Contains(t, text, "Sorghum")
}

func TestChain_Availability(t *testing.T) {
	c := NewChain(localDispatcher(), nil)
	assert.Equal(t, dispatch.ServiceName, c.ActiveService())
	assert.False(t, c.Available(ProviderAnthropic))

	c.Add(ProviderGemini, &stubReplier{})
	c.Add(ProviderOpenAI, &stubReplier{})
	assert.Equal(t, "Gemini AI", c.ActiveService())
	assert.True(t, c.Available(ProviderGemini))
	assert.False(t, c.Available(ProviderAnthropic))
	assert.Equal(t, []Provider{ProviderGemini, ProviderOpenAI}, c.Providers())
}

func TestBuildChain_SkipsProvidersWithoutKeys(t *testing.T) {
	cc := ChainConfig{
		Providers: []Config{
			{Provider: ProviderAnthropic},
			{Provider: ProviderGemini},
			{Provider: ProviderOpenAI},
		},
		EnableTools: true,
	}
	c, err := BuildChain(context.Background(), cc, localDispatcher(), toolTable(), nil)
	require.NoError(t, err)
	assert.Empty(t, c.Providers())

	text, service := c.Reply(context.Background(), "compare wheat barley", nil)
	assert.Equal(t, dispatch.ServiceName, service)
	assert.Contains(t, text, "Barley")
}

func TestBuildChain_BuildsKeyedProviders(t *testing.T) {
	cc := ChainConfig{
		Providers: []Config{
			{Provider: ProviderOpenAI, APIKey: "sk-test"},
			{Provider: ProviderAnthropic},
			{Provider: "bogus", APIKey: "x"},
		},
	}
	c, err := BuildChain(context.Background(), cc, localDispatcher(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []Provider{ProviderOpenAI}, c.Providers())
	assert.Equal(t, "OpenAI GPT", c.ActiveService())
}
