package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zer3az/chatbot/internal/config"
)

func clearProviderKeys(t *testing.T) {
	t.Helper()
	for _, env := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "CHATBOT_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(env, "")
	}
}

func loadTestConfig(t *testing.T, set map[string]any) (*config.AppConfig, *viper.Viper) {
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

func TestCheckProviders(t *testing.T) {
	clearProviderKeys(t)

	t.Run("no keys", func(t *testing.T) {
		cfg, v := loadTestConfig(t, nil)
		checks := checkProviders(cfg, v)
		require.Len(t, checks, 4)
		for _, c := range checks[:3] {
			assert.Equal(t, "warn", c.Status)
			assert.Contains(t, c.Hint, "zer3az setup")
		}
		assert.Equal(t, "Answers", checks[3].Name)
	})

	t.Run("gemini key", func(t *testing.T) {
		cfg, v := loadTestConfig(t, map[string]any{"llm.apiKeys.gemini": "AIzaSyExample-1234567890"})
		checks := checkProviders(cfg, v)
		require.Len(t, checks, 3)
		assert.Equal(t, "ok", checks[1].Status)
		assert.Equal(t, "key AIzaSyExam...7890", checks[1].Message)
	})

	t.Run("ollama", func(t *testing.T) {
		cfg, v := loadTestConfig(t, map[string]any{"llm.providers": []string{"ollama"}})
		checks := checkProviders(cfg, v)
		require.Len(t, checks, 1)
		assert.Equal(t, "ok", checks[0].Status)
		assert.Contains(t, checks[0].Message, "localhost:11434")
	})
}

func TestCheckSessionStore(t *testing.T) {
	cfg, _ := loadTestConfig(t, map[string]any{"session.backend": "memory"})
	assert.Equal(t, "ok", checkSessionStore(context.Background(), cfg).Status)

	cfg, _ = loadTestConfig(t, map[string]any{
		"session.backend":    "sqlite",
		"session.sqlitePath": t.TempDir() + "/sessions.db",
	})
	assert.Equal(t, "ok", checkSessionStore(context.Background(), cfg).Status)
}

func TestPrintCheck(t *testing.T) {
	tests := []struct {
		name     string
		check    DoctorCheck
		want     string
		wantHint bool
	}{
		{name: "ok hides hint", check: DoctorCheck{Name: "Config", Status: "ok", Message: "fine", Hint: "ignored"}, want: "✅ Config: fine"},
		{name: "warn shows hint", check: DoctorCheck{Name: "Gemini AI", Status: "warn", Message: "no API key", Hint: "run setup"}, want: "Gemini AI: no API key", wantHint: true},
		{name: "fail", check: DoctorCheck{Name: "Store", Status: "fail", Message: "down"}, want: "❌ Store: down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			printCheck(&b, tt.check)
			assert.Contains(t, b.String(), tt.want)
			assert.Equal(t, tt.wantHint, bytes.Contains(b.Bytes(), []byte("└─")))
		})
	}
}
