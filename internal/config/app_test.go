package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/session"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	Configure(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHATBOT_PORT", "")
	cfg, err := Load(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"anthropic", "gemini", "openai"}, cfg.LLM.Providers)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.True(t, cfg.LLM.EnableTools)
	assert.Equal(t, session.BackendMemory, cfg.Session.Backend)
	assert.Equal(t, 10, cfg.Session.HistoryLimit)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_ChatbotPortAlias(t *testing.T) {
	t.Setenv("CHATBOT_PORT", "8080")
	cfg, err := Load(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_PrefixedEnv(t *testing.T) {
	t.Setenv("ZER3AZ_SESSION_BACKEND", "sqlite")
	t.Setenv("ZER3AZ_LOG_LEVEL", "debug")
	cfg, err := Load(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Session.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"port out of range", "server.port", 70000},
		{"unknown backend", "session.backend", "mongo"},
		{"unknown provider", "llm.providers", []string{"cohere"}},
		{"bad log level", "log.level", "loud"},
		{"negative rate", "server.rateLimit", -1.0},
		{"zero history", "session.historyLimit", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper(t)
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestSessionOptions(t *testing.T) {
	v := newTestViper(t)
	v.Set("session.backend", "redis")
	v.Set("session.redisAddr", "cache:6379")
	cfg, err := Load(v)
	require.NoError(t, err)

	opts := cfg.SessionOptions()
	assert.Equal(t, session.BackendRedis, opts.Backend)
	assert.Equal(t, "cache:6379", opts.RedisAddr)
	assert.Equal(t, 24*time.Hour, opts.TTL)
}

func TestChainConfig_Order(t *testing.T) {
	for _, env := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "CHATBOT_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(env, "")
	}
	v := newTestViper(t)
	v.Set("llm.providers", []string{"ollama", "openai", "anthropic"})
	v.Set("llm.models.openai", "gpt-4o")
	v.Set("llm.apiKeys.openai", "sk-config")
	cfg, err := Load(v)
	require.NoError(t, err)

	cc := cfg.ChainConfig(v)
	require.Len(t, cc.Providers, 3)
	assert.Equal(t, llm.ProviderAnthropic, cc.Providers[0].Provider)
	assert.Empty(t, cc.Providers[0].APIKey)
	assert.Equal(t, llm.ProviderOpenAI, cc.Providers[1].Provider)
	assert.Equal(t, "gpt-4o", cc.Providers[1].Model)
	assert.Equal(t, "sk-config", cc.Providers[1].APIKey)
	assert.Equal(t, llm.ProviderOllama, cc.Providers[2].Provider)
	assert.Equal(t, llm.DefaultOllamaURL, cc.Providers[2].BaseURL)
	assert.Equal(t, 30*time.Second, cc.Timeout)
	assert.True(t, cc.EnableTools)
}
