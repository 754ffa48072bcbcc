/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/logger"
)

const configName = ".zer3az"

// GlobalAppConfig holds the resolved configuration for the running command.
var GlobalAppConfig *config.AppConfig

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.GetViper()
	config.Configure(v)

	cfgFileFlag := v.GetString("config")
	if cfgFileFlag != "" {
		v.SetConfigFile(cfgFileFlag)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
	}

	readErr := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case readErr == nil:
		if v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
		}
	case errors.As(readErr, &notFound):
		if v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
		}
	case cfgFileFlag != "" && os.IsNotExist(readErr):
		fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "Error reading config file:", v.ConfigFileUsed(), "-", readErr)
		os.Exit(1)
	}

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	GlobalAppConfig = cfg
	logger.SetBasePath(config.CrashLogBase())

	if readErr == nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			reloaded, err := config.Load(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Ignoring invalid config change in %s: %s\n", e.Name, err)
				return
			}
			logger.SetLevel(effectiveLevel(reloaded))
		})
		v.WatchConfig()
	}
}

// GetConfig returns the configuration loaded by InitConfig.
func GetConfig() *config.AppConfig {
	if GlobalAppConfig == nil {
		cfg, err := config.Load(viper.GetViper())
		cobra.CheckErr(err)
		GlobalAppConfig = cfg
	}
	return GlobalAppConfig
}

func effectiveLevel(cfg *config.AppConfig) string {
	if cfg.Verbose {
		return "debug"
	}
	return cfg.Log.Level
}

// newLogger builds the process logger. Outside the server only warnings are shown
// unless --verbose is set, so command output stays readable.
func newLogger(cfg *config.AppConfig, server bool) *logger.Logger {
	level := effectiveLevel(cfg)
	if !server && !cfg.Verbose {
		level = "warn"
	}
	return logger.NewLogger(logger.LogConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}
