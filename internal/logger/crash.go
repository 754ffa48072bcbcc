// Package logger provides structured logging and crash recovery for the chatbot.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// CrashLogDir is the directory for crash logs relative to the base path
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep
	MaxCrashLogs = 10

	defaultBasePath = ".zer3az"
	maxInputLen     = 500
)

// crashFs is swapped for an in-memory filesystem in tests.
var crashFs afero.Fs = afero.NewOsFs()

// CrashContext stores what the process was doing when it panicked.
type CrashContext struct {
	mu        sync.RWMutex
	command   string
	lastInput string
	service   string
	version   string
	basePath  string
}

var globalContext = &CrashContext{}

// SetBasePath sets the directory crash logs are written under.
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput records the last chat message received.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), maxInputLen)
}

// SetService records the answering service in use.
func SetService(name string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.service = name
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	Service    string    `json:"service,omitempty"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	LastInput  string    `json:"last_input,omitempty"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic recovers a panic at the process boundary, writes a crash log and exits.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	entry := newCrashLog(r)
	path, err := WriteCrashLog(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, entry.StackTrace)
		os.Exit(1)
	}
	printCrashNotice(os.Stderr, path)
	os.Exit(1)
}

func printCrashNotice(w io.Writer, path string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╭──────────────────────────────────────────────╮")
	fmt.Fprintln(w, "│ 🔴 Zer3aZ chatbot stopped unexpectedly       │")
	fmt.Fprintln(w, "╰──────────────────────────────────────────────╯")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "A crash log has been saved to:\n  %s\n\n", path)
}

func newCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		Service:    globalContext.service,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// WriteCrashLog writes entry to the crash log directory, pruning old logs first, and returns its path.
func WriteCrashLog(entry CrashLog) (string, error) {
	dir := crashLogDir()
	if err := crashFs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	if err := pruneCrashLogs(dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := filepath.Join(dir, crashLogName(entry.Timestamp))
	if err := afero.WriteFile(crashFs, path, []byte(formatCrashLog(entry)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = defaultBasePath
	}
	return filepath.Join(basePath, CrashLogDir)
}

func crashLogName(t time.Time) string {
	return fmt.Sprintf("crash_%s.log", t.Format("20060102_150405.000"))
}

func isCrashLog(name string) bool {
	return strings.HasPrefix(name, "crash_") && strings.HasSuffix(name, ".log")
}

func formatCrashLog(entry CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80) + "\n"
	section := func(title, body string) {
		if body == "" {
			return
		}
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(strings.TrimRight(body, "\n") + "\n")
	}

	sb.WriteString(rule)
	sb.WriteString("ZER3AZ CHATBOT CRASH LOG\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", entry.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", entry.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", entry.Command)
	if entry.Service != "" {
		fmt.Fprintf(&sb, "Service:   %s\n", entry.Service)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", entry.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", entry.OS, entry.Arch)

	section("PANIC VALUE", entry.PanicValue)
	section("STACK TRACE", entry.StackTrace)
	section("LAST USER MESSAGE", entry.LastInput)

	sb.WriteString("\n" + rule)
	sb.WriteString("END OF CRASH LOG\n")
	sb.WriteString(rule)
	return sb.String()
}

// pruneCrashLogs removes the oldest crash logs until at most keep remain.
func pruneCrashLogs(dir string, keep int) error {
	names, err := crashLogNames(dir)
	if err != nil || len(names) <= keep {
		return err
	}
	for _, name := range names[:len(names)-keep] {
		if err := crashFs.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", name, err)
		}
	}
	return nil
}

// crashLogNames returns crash log file names, oldest first.
func crashLogNames(dir string) ([]string, error) {
	entries, err := afero.ReadDir(crashFs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && isCrashLog(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// ListCrashLogs returns the paths of all crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	dir := crashLogDir()
	names, err := crashLogNames(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// ReadCrashLog reads a crash log file.
func ReadCrashLog(path string) (string, error) {
	content, err := afero.ReadFile(crashFs, path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
