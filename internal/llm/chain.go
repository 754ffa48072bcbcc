package llm

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/tools"
)

// Replier answers a message given prior history. *Assistant implements it.
type Replier interface {
	Reply(ctx context.Context, message string, history []session.Message) (string, error)
}

type link struct {
	provider Provider
	replier  Replier
}

// Chain tries remote providers in order and falls back to the local dispatcher, so it always answers.
type Chain struct {
	links []link
	local *dispatch.Dispatcher
	log   *logger.Logger
}

// NewChain creates a chain that answers locally until providers are added.
func NewChain(local *dispatch.Dispatcher, log *logger.Logger) *Chain {
	if log == nil {
		log = logger.Nop()
	}
	return &Chain{local: local, log: log}
}

// Add appends a provider to the end of the chain.
func (c *Chain) Add(p Provider, r Replier) {
	c.links = append(c.links, link{provider: p, replier: r})
}

// Reply returns the first non-empty remote answer, or the local one, with the name of the service that produced it.
func (c *Chain) Reply(ctx context.Context, message string, history []session.Message) (string, string) {
	for _, l := range c.links {
		text, err := l.replier.Reply(ctx, message, history)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, ServiceName(l.provider)
		}
		if err == nil {
			err = ErrEmptyResponse
		}
		c.log.Warn().Str("provider", string(l.provider)).Err(err).Msg("provider unavailable, trying next")
	}
	return c.local.Answer(message), dispatch.ServiceName
}

// Providers returns the configured providers in call order.
func (c *Chain) Providers() []Provider {
	out := make([]Provider, len(c.links))
	for i, l := range c.links {
		out[i] = l.provider
	}
	return out
}

// Available reports whether p is configured in the chain.
func (c *Chain) Available(p Provider) bool {
	return slices.Contains(c.Providers(), p)
}

// ActiveService names the service that is tried first.
func (c *Chain) ActiveService() string {
	if len(c.links) == 0 {
		return dispatch.ServiceName
	}
	return ServiceName(c.links[0].provider)
}

// Local returns the dispatcher used as the last resort.
func (c *Chain) Local() *dispatch.Dispatcher { return c.local }

// ChainConfig describes which providers to build.
type ChainConfig struct {
	Providers     []Config // in call order
	Timeout       time.Duration
	MaxIterations int
	EnableTools   bool
}

// BuildChain creates an Assistant for every provider that has credentials.
// Providers that fail to initialise are logged and skipped.
func BuildChain(ctx context.Context, cc ChainConfig, local *dispatch.Dispatcher, table *tools.Table, log *logger.Logger) (*Chain, error) {
	chain := NewChain(local, log)

	instruction, err := BuildSystemInstruction(local.Catalog())
	if err != nil {
		return nil, err
	}
	if !cc.EnableTools {
		table = nil
	}

	for _, pc := range cc.Providers {
		if NeedsAPIKey(pc.Provider) && pc.APIKey == "" {
			chain.log.Debug().Str("provider", string(pc.Provider)).Msg("no API key, skipping")
			continue
		}
		chatModel, err := NewChatModel(ctx, pc)
		if err != nil {
			chain.log.Warn().Str("provider", string(pc.Provider)).Err(err).Msg("provider init failed")
			continue
		}
		a, err := NewAssistant(ctx, pc.Provider, chatModel, instruction, table,
			WithTimeout(cc.Timeout),
			WithMaxIterations(cc.MaxIterations),
			WithLogger(chain.log),
		)
		if err != nil {
			return nil, fmt.Errorf("assistant for %s: %w", pc.Provider, err)
		}
		chain.Add(pc.Provider, a)
		chain.log.Info().Str("provider", string(pc.Provider)).Str("model", pc.model()).Msg("provider ready")
	}
	return chain, nil
}
