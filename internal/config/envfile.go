package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// EnvFile reads and updates a dotenv file on an afero filesystem.
// Existing lines keep their position and comments; only the assigned value changes.
type EnvFile struct {
	fs   afero.Fs
	path string
}

// NewEnvFile returns an EnvFile for path on fs.
func NewEnvFile(fs afero.Fs, path string) *EnvFile {
	return &EnvFile{fs: fs, path: path}
}

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Read parses the file. A missing file is empty.
func (e *EnvFile) Read() (map[string]string, error) {
	data, err := afero.ReadFile(e.fs, e.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", e.path, err)
	}
	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", e.path, err)
	}
	return values, nil
}

// Set assigns key=value, replacing the existing assignment in place or appending it.
func (e *EnvFile) Set(key, value string) error {
	if !envKeyPattern.MatchString(key) {
		return fmt.Errorf("invalid env key %q", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("value for %s must be a single line", key)
	}

	quoted, err := quoteEnvValue(value)
	if err != nil {
		return fmt.Errorf("value for %s: %w", key, err)
	}

	data, err := afero.ReadFile(e.fs, e.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", e.path, err)
	}

	line := key + "=" + quoted
	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}
	found := false
	for i, l := range lines {
		if envLineKey(l) == key {
			lines[i] = line
			found = true
		}
	}
	if !found {
		lines = append(lines, line)
	}

	out := strings.Join(lines, "\n") + "\n"
	if err := afero.WriteFile(e.fs, e.path, []byte(out), 0600); err != nil {
		return fmt.Errorf("write %s: %w", e.path, err)
	}
	return nil
}

func envLineKey(line string) string {
	l := strings.TrimSpace(line)
	if l == "" || strings.HasPrefix(l, "#") {
		return ""
	}
	l = strings.TrimPrefix(l, "export ")
	k, _, ok := strings.Cut(l, "=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(k)
}

// quoteEnvValue renders v so godotenv reads it back unchanged. Single quotes are
// literal; double quotes would expand ${VAR} and \n, so those need escaping.
func quoteEnvValue(v string) (string, error) {
	if v != "" && !strings.ContainsAny(v, " #\"'$\\`") {
		return v, nil
	}
	// The parser treats a backslash before the closing quote as an escape.
	if strings.HasSuffix(v, `\`) {
		return "", errors.New("value cannot end with a backslash")
	}
	if !strings.Contains(v, "'") {
		return "'" + v + "'", nil
	}
	// godotenv trims every trailing quote character, so `"` cannot end a double-quoted value.
	if strings.HasSuffix(v, `"`) {
		return "", errors.New("values containing ' cannot end with \"")
	}
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, `$`, `\$`)
	return `"` + escaped + `"`, nil
}

// MaskKey hides the middle of a secret for display: first 10 characters, "...", last 4.
// Short values are fully masked.
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 14 {
		return strings.Repeat("*", len(key))
	}
	return key[:10] + "..." + key[len(key)-4:]
}
