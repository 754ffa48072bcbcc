// Package telemetry sends anonymous usage events (no message text, no keys) to PostHog.
package telemetry

import (
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/posthog/posthog-go"
)

// Client records usage events.
type Client interface {
	Record(ev Event)
	Close() error
}

// ClientConfig holds configuration for initializing the telemetry client.
type ClientConfig struct {
	// APIKey is the PostHog project API key.
	APIKey string

	// Version is the chatbot version string.
	Version string

	// Config is the saved telemetry state (enabled, anonymous ID).
	Config *Config

	// Endpoint is an optional self-hosted PostHog endpoint.
	Endpoint string
}

// New returns a PostHog client when telemetry is enabled and keyed, otherwise Nop.
func New(cfg ClientConfig) (Client, error) {
	if cfg.APIKey == "" || !cfg.Config.IsEnabled() {
		return Nop{}, nil
	}

	phConfig := posthog.Config{
		BatchSize: 20,
		Interval:  5 * time.Second,
		Logger:    silentLogger{},
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}
	ph, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}
	return newPostHog(ph, cfg.Config.AnonymousID, cfg.Version), nil
}

// sink is the part of the PostHog SDK client that events go through.
type sink interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHog batches events to a PostHog project under one anonymous id.
type PostHog struct {
	sink   sink
	id     string
	common Properties
	closed atomic.Bool
}

func newPostHog(s sink, anonymousID, version string) *PostHog {
	return &PostHog{
		sink: s,
		id:   anonymousID,
		common: Properties{
			"os":          runtime.GOOS,
			"arch":        runtime.GOARCH,
			"app_version": version,
			// no person profiles
			"$process_person_profile": false,
		},
	}
}

// Record enqueues ev. Events after Close are dropped.
func (p *PostHog) Record(ev Event) {
	if ev == nil || p.closed.Load() {
		return
	}
	props := posthog.NewProperties()
	for k, v := range p.common {
		props.Set(k, v)
	}
	for k, v := range ev.Properties() {
		props.Set(k, v)
	}
	_ = p.sink.Enqueue(posthog.Capture{
		DistinctId: p.id,
		Event:      ev.Name(),
		Properties: props,
	})
}

// Close flushes pending events. Later calls do nothing.
func (p *PostHog) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.sink.Close()
}

// Nop drops every event.
type Nop struct{}

func (Nop) Record(Event) {}
func (Nop) Close() error { return nil }

type silentLogger struct{}

func (silentLogger) Debugf(string, ...interface{}) {}
func (silentLogger) Logf(string, ...interface{})   {}
func (silentLogger) Warnf(string, ...interface{})  {}
func (silentLogger) Errorf(string, ...interface{}) {}

var (
	_ Client = (*PostHog)(nil)
	_ Client = Nop{}
)
