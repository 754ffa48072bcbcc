// Package config loads and validates the chatbot configuration.
// Values come from flags, ZER3AZ_* environment variables and an optional .zer3az.yaml file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/session"
)

// EnvPrefix is prepended to every config key read from the environment.
const EnvPrefix = "ZER3AZ"

// DefaultPort is the HTTP port used when neither server.port nor CHATBOT_PORT is set.
const DefaultPort = 5001

// AppConfig is the fully resolved configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	RateLimit      float64       `mapstructure:"rateLimit" validate:"gte=0"`
	RateBurst      int           `mapstructure:"rateBurst" validate:"gte=0"`
	AuthToken      string        `mapstructure:"authToken"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout" validate:"gt=0"`
}

type LLMConfig struct {
	Providers     []string          `mapstructure:"providers" validate:"dive,oneof=anthropic gemini openai ollama"`
	Timeout       time.Duration     `mapstructure:"timeout" validate:"gt=0"`
	Temperature   float32           `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens     int               `mapstructure:"maxTokens" validate:"gte=0"`
	MaxIterations int               `mapstructure:"maxIterations" validate:"gte=1,lte=10"`
	Models        map[string]string `mapstructure:"models"`
	APIKeys       map[string]string `mapstructure:"apiKeys"`
	OllamaURL     string            `mapstructure:"ollamaURL" validate:"omitempty,url"`
	EnableTools   bool              `mapstructure:"enableTools"`
}

type SessionConfig struct {
	Backend      string        `mapstructure:"backend" validate:"oneof=memory redis sqlite"`
	HistoryLimit int           `mapstructure:"historyLimit" validate:"gte=1"`
	RedisAddr    string        `mapstructure:"redisAddr" validate:"required_if=Backend redis"`
	SQLitePath   string        `mapstructure:"sqlitePath" validate:"required_if=Backend sqlite"`
	TTL          time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// SetDefaults registers every default on v.
// CHATBOT_PORT is bound as an alias of server.port.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("server.rateLimit", 0.0)
	v.SetDefault("server.rateBurst", 5)
	v.SetDefault("server.authToken", "")
	v.SetDefault("server.requestTimeout", "60s")

	v.SetDefault("llm.providers", []string{
		string(llm.ProviderAnthropic),
		string(llm.ProviderGemini),
		string(llm.ProviderOpenAI),
	})
	v.SetDefault("llm.timeout", llm.DefaultTimeout.String())
	v.SetDefault("llm.temperature", llm.DefaultTemperature)
	v.SetDefault("llm.maxTokens", llm.DefaultMaxTokens)
	v.SetDefault("llm.maxIterations", llm.DefaultMaxIterations)
	v.SetDefault("llm.ollamaURL", llm.DefaultOllamaURL)
	v.SetDefault("llm.enableTools", true)

	v.SetDefault("session.backend", session.BackendMemory)
	v.SetDefault("session.historyLimit", 10)
	v.SetDefault("session.redisAddr", "localhost:6379")
	v.SetDefault("session.sqlitePath", DefaultSQLitePath())
	v.SetDefault("session.ttl", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "https://us.i.posthog.com")

	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "CHATBOT_PORT")
}

var envReplacer = strings.NewReplacer(".", "_")

// Configure wires environment lookup and defaults into v.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	SetDefaults(v)
}

var validate = validator.New()

// Load decodes v into an AppConfig and validates it.
func Load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SessionOptions maps the session block onto session.Open options.
func (c *AppConfig) SessionOptions() session.Options {
	return session.Options{
		Backend:    c.Session.Backend,
		RedisAddr:  c.Session.RedisAddr,
		SQLitePath: c.Session.SQLitePath,
		TTL:        c.Session.TTL,
	}
}
