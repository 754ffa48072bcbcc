// Package app wires the catalog, the answer chain and the session store into one
// set of dependencies shared by the HTTP server, the CLI and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/chat"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/persona"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/telemetry"
	"github.com/zer3az/chatbot/internal/tools"
)

// Options control how the App is built.
type Options struct {
	Config  *config.AppConfig
	Viper   *viper.Viper // used to resolve API keys; defaults to the global instance
	Logger  *logger.Logger
	Version string
	// LocalOnly skips every remote provider so answers come from the local dispatcher.
	LocalOnly bool
	// Store overrides the configured session backend.
	Store session.Store
}

// App holds shared dependencies for all entry points.
type App struct {
	Catalog    *catalog.Catalog
	Dispatcher *dispatch.Dispatcher
	Tools      *tools.Table
	Chain      *llm.Chain
	Store      session.Store
	Chat       *chat.Service
	Persona    *persona.Persona
	Telemetry  telemetry.Client
	Log        *logger.Logger
}

// New builds the App. Provider failures are logged and skipped; a session backend failure is an error.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("app: config is required")
	}
	if opts.Viper == nil {
		opts.Viper = viper.GetViper()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	cfg := opts.Config

	a := &App{
		Catalog: catalog.Default(),
		Persona: persona.Default(),
		Log:     opts.Logger,
	}
	if err := a.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("plant catalog: %w", err)
	}
	a.Dispatcher = dispatch.New(a.Catalog)
	a.Tools = tools.New(a.Catalog, a.Dispatcher)

	cc := cfg.ChainConfig(opts.Viper)
	if opts.LocalOnly {
		cc.Providers = nil
	}
	chain, err := llm.BuildChain(ctx, cc, a.Dispatcher, a.Tools, a.Log)
	if err != nil {
		return nil, fmt.Errorf("build provider chain: %w", err)
	}
	a.Chain = chain

	a.Store = opts.Store
	if a.Store == nil {
		a.Store, err = session.Open(ctx, cfg.SessionOptions())
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
	}

	a.Telemetry = newTelemetry(cfg.Telemetry, opts.Version, a.Log)

	a.Chat = chat.New(a.Chain, a.Store,
		chat.WithHistoryPairs(cfg.Session.HistoryLimit),
		chat.WithLogger(a.Log),
		chat.WithTelemetry(a.Telemetry),
	)

	a.Log.Info().
		Str("active_service", a.Chain.ActiveService()).
		Int("providers", len(a.Chain.Providers())).
		Str("session_backend", cfg.Session.Backend).
		Msg("chatbot ready")
	return a, nil
}

func newTelemetry(tc config.TelemetryConfig, version string, log *logger.Logger) telemetry.Client {
	if tc.APIKey == "" {
		return telemetry.Nop{}
	}
	// telemetry.enabled forces collection on; otherwise the state saved by `zer3az telemetry on` decides.
	state, err := telemetry.Load(tc.Enabled)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry config unreadable, telemetry disabled")
		return telemetry.Nop{}
	}
	if !state.IsEnabled() {
		return telemetry.Nop{}
	}
	client, err := telemetry.New(telemetry.ClientConfig{
		APIKey:   tc.APIKey,
		Version:  version,
		Config:   state,
		Endpoint: tc.Endpoint,
	})
	if err != nil {
		log.Warn().Err(err).Msg("telemetry init failed, telemetry disabled")
		return telemetry.Nop{}
	}
	return client
}

// Ask answers one message in the given session.
func (a *App) Ask(ctx context.Context, message, sessionID string) (chat.Response, error) {
	return a.Chat.Chat(ctx, chat.Request{Message: message, SessionID: sessionID})
}

// Close releases the session store and flushes telemetry.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.Telemetry != nil {
		errs = append(errs, a.Telemetry.Close())
	}
	return errors.Join(errs...)
}
