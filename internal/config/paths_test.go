package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGlobalConfigDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	dir, err := GetGlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".zer3az"), dir)
}

func TestCrashLogBase(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	assert.Equal(t, ".zer3az", CrashLogBase())

	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, filepath.Join("/var/state", "zer3az"), CrashLogBase())
}

func TestDefaultSQLitePath(t *testing.T) {
	assert.Equal(t, filepath.Join(".zer3az", "sessions.db"), DefaultSQLitePath())
}
