package config

import (
	"os"
	"path/filepath"
)

// LocalDir is the per-project state directory, relative to the working directory.
const LocalDir = ".zer3az"

// GetGlobalConfigDir returns the path to the global configuration directory (~/.zer3az).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LocalDir), nil
}

// DefaultSQLitePath is where the sqlite session backend keeps its database.
func DefaultSQLitePath() string {
	return filepath.Join(LocalDir, "sessions.db")
}

// CrashLogBase returns the directory crash logs are written under.
// XDG_STATE_HOME wins when set.
func CrashLogBase() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "zer3az")
	}
	return LocalDir
}
