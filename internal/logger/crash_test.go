package logger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMemFs(t *testing.T, basePath string) {
	t.Helper()
	prevFs, prevCtx := crashFs, globalContext
	crashFs = afero.NewMemMapFs()
	globalContext = &CrashContext{basePath: basePath}
	t.Cleanup(func() {
		crashFs = prevFs
		globalContext = prevCtx
	})
}

func TestCrashContext_Setters(t *testing.T) {
	useMemFs(t, "")

	SetBasePath("/tmp/zer3az")
	SetVersion("1.0.0-test")
	SetCommand("serve")
	SetLastInput("  best for drought  ")
	SetService("Gemini AI")

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	assert.Equal(t, "/tmp/zer3az", globalContext.basePath)
	assert.Equal(t, "1.0.0-test", globalContext.version)
	assert.Equal(t, "serve", globalContext.command)
	assert.Equal(t, "best for drought", globalContext.lastInput)
	assert.Equal(t, "Gemini AI", globalContext.service)
}

func TestSetLastInput_Truncation(t *testing.T) {
	useMemFs(t, "")

	SetLastInput(strings.Repeat("a", 3000))

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	assert.LessOrEqual(t, len(globalContext.lastInput), maxInputLen+len("... [truncated]"))
	assert.Contains(t, globalContext.lastInput, "[truncated]")
}

func TestNewCrashLog(t *testing.T) {
	useMemFs(t, "")
	globalContext.version = "1.0.0"
	globalContext.command = "ask"
	globalContext.lastInput = "wheat"

	entry := newCrashLog("test panic")
	assert.Equal(t, "test panic", entry.PanicValue)
	assert.Equal(t, "1.0.0", entry.Version)
	assert.Equal(t, "ask", entry.Command)
	assert.Equal(t, "wheat", entry.LastInput)
	assert.NotEmpty(t, entry.StackTrace)
	assert.NotEmpty(t, entry.GoVersion)
}

func TestFormatCrashLog(t *testing.T) {
	formatted := formatCrashLog(CrashLog{
		Timestamp:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Version:    "1.0.0",
		Command:    "serve",
		Service:    "Claude AI (Sonnet 4)",
		PanicValue: "test panic",
		StackTrace: "goroutine 1 [running]:\nmain.main()",
		LastInput:  "compare wheat barley",
		GoVersion:  "go1.24.6",
		OS:         "linux",
		Arch:       "amd64",
	})

	for _, want := range []string{
		"ZER3AZ CHATBOT CRASH LOG",
		"Timestamp: 2025-01-01T12:00:00Z",
		"Version:   1.0.0",
		"Command:   serve",
		"Service:   Claude AI (Sonnet 4)",
		"OS/Arch:   linux/amd64",
		"PANIC VALUE",
		"goroutine 1 [running]",
		"LAST USER MESSAGE",
		"compare wheat barley",
	} {
		assert.Contains(t, formatted, want)
	}
}

func TestFormatCrashLog_OmitsEmptySections(t *testing.T) {
	formatted := formatCrashLog(CrashLog{PanicValue: "x"})
	assert.NotContains(t, formatted, "LAST USER MESSAGE")
	assert.NotContains(t, formatted, "Service:")
}

func TestWriteCrashLog(t *testing.T) {
	useMemFs(t, "/work/.zer3az")

	path, err := WriteCrashLog(CrashLog{Timestamp: time.Now(), PanicValue: "test panic", StackTrace: "stack"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/work/.zer3az", CrashLogDir), filepath.Dir(path))

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)

	content, err := ReadCrashLog(logs[0])
	require.NoError(t, err)
	assert.Contains(t, content, "test panic")
}

func TestWriteCrashLog_KeepsNewest(t *testing.T) {
	useMemFs(t, "/work/.zer3az")
	dir := filepath.Join("/work/.zer3az", CrashLogDir)
	require.NoError(t, crashFs.MkdirAll(dir, 0o755))

	for i := range MaxCrashLogs + 5 {
		name := fmt.Sprintf("crash_20250101_1200%02d.000.log", i)
		require.NoError(t, afero.WriteFile(crashFs, filepath.Join(dir, name), []byte("old"), 0o644))
	}
	require.NoError(t, afero.WriteFile(crashFs, filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	_, err := WriteCrashLog(CrashLog{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	assert.Len(t, logs, MaxCrashLogs)
	assert.Contains(t, logs[len(logs)-1], "crash_20260101_000000.000.log")
	assert.NotContains(t, logs[0], "crash_20250101_120000")

	exists, err := afero.Exists(crashFs, filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCrashLogDir_Default(t *testing.T) {
	useMemFs(t, "")
	assert.Equal(t, filepath.Join(".zer3az", CrashLogDir), crashLogDir())
}

func TestListCrashLogs_MissingDir(t *testing.T) {
	useMemFs(t, "/nowhere")
	logs, err := ListCrashLogs()
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestPrintCrashNotice(t *testing.T) {
	var buf bytes.Buffer
	printCrashNotice(&buf, "/tmp/crash.log")
	assert.Contains(t, buf.String(), "/tmp/crash.log")
}
