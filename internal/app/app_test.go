package app

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/telemetry"
)

func loadConfig(t *testing.T, set map[string]any) (*config.AppConfig, *viper.Viper) {
	t.Helper()
	v := viper.New()
	config.Configure(v)
	for k, val := range set {
		v.Set(k, val)
	}
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg, v
}

func TestNew_LocalOnly(t *testing.T) {
	cfg, v := loadConfig(t, nil)
	a, err := New(context.Background(), Options{Config: cfg, Viper: v, LocalOnly: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Empty(t, a.Chain.Providers())
	assert.Equal(t, dispatch.ServiceName, a.Chain.ActiveService())
	assert.Equal(t, telemetry.Nop{}, a.Telemetry)
	assert.Len(t, a.Tools.Names(), 11)

	resp, err := a.Ask(context.Background(), "compare wheat barley", "s1")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Bread Wheat")
	assert.Contains(t, resp.Text, "Barley")
	assert.Equal(t, dispatch.ServiceName, resp.Service)

	history, err := a.Chat.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestNew_KeylessProvidersSkipped(t *testing.T) {
	for _, env := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "CHATBOT_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(env, "")
	}
	cfg, v := loadConfig(t, nil)
	a, err := New(context.Background(), Options{Config: cfg, Viper: v})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	assert.Empty(t, a.Chain.Providers())
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg, v := loadConfig(t, map[string]any{
		"session.backend":    "sqlite",
		"session.sqlitePath": ":memory:",
	})
	a, err := New(context.Background(), Options{Config: cfg, Viper: v, LocalOnly: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, err = a.Ask(context.Background(), "sorghum", "field-1")
	require.NoError(t, err)
	stored, err := a.Store.Get(context.Background(), "field-1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestNew_StoreOverride(t *testing.T) {
	cfg, v := loadConfig(t, map[string]any{"session.backend": "redis", "session.redisAddr": "127.0.0.1:1"})
	store := session.NewMemoryStore()
	a, err := New(context.Background(), Options{Config: cfg, Viper: v, LocalOnly: true, Store: store})
	require.NoError(t, err)
	assert.Same(t, store, a.Store)
	require.NoError(t, a.Close())
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}
