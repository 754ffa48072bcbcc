/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/session"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check Zer3aZ setup and diagnose issues",
	Long: `Validate your Zer3aZ configuration.

Checks:
  • Config file in use
  • API keys for each configured provider
  • Session store connectivity
  • Recent crash logs

Use --crash to print the most recent crash log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showCrash, _ := cmd.Flags().GetBool("crash")
		if showCrash {
			return printLatestCrash(cmd.OutOrStdout())
		}
		return runDoctor(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().Bool("crash", false, "Print the most recent crash log")
}

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string
	Status  string // "ok", "warn", "fail"
	Message string
	Hint    string
}

func runDoctor(ctx context.Context, out io.Writer) error {
	cfg := GetConfig()
	v := viper.GetViper()

	fmt.Fprintln(out, "🩺 Zer3aZ Doctor")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(out)

	checks := []DoctorCheck{checkConfigFile(v)}
	checks = append(checks, checkProviders(cfg, v)...)
	checks = append(checks, checkSessionStore(ctx, cfg))
	checks = append(checks, checkCrashLogs())

	hasErrors := false
	for _, c := range checks {
		printCheck(out, c)
		if c.Status == "fail" {
			hasErrors = true
		}
	}

	fmt.Fprintln(out)
	if hasErrors {
		fmt.Fprintln(out, "❌ Some checks failed")
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(out, "✅ All checks passed")
	return nil
}

func printCheck(out io.Writer, c DoctorCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = "✅"
	case "warn":
		icon = "⚠️ "
	case "fail":
		icon = "❌"
	}

	fmt.Fprintf(out, "%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" && c.Status != "ok" {
		fmt.Fprintf(out, "   └─ %s\n", c.Hint)
	}
}

func checkConfigFile(v *viper.Viper) DoctorCheck {
	if used := v.ConfigFileUsed(); used != "" {
		return DoctorCheck{Name: "Config", Status: "ok", Message: used}
	}
	return DoctorCheck{
		Name:    "Config",
		Status:  "ok",
		Message: "no config file, using defaults and environment",
	}
}

// checkProviders reports one check per configured provider. No remote provider is
// only a warning since the local answerer always works.
func checkProviders(cfg *config.AppConfig, v *viper.Viper) []DoctorCheck {
	var checks []DoctorCheck
	ready := 0
	for _, p := range cfg.ChainConfig(v).Providers {
		name := llm.ServiceName(p.Provider)
		switch {
		case !llm.NeedsAPIKey(p.Provider):
			checks = append(checks, DoctorCheck{Name: name, Status: "ok", Message: "local server at " + p.BaseURL})
			ready++
		case p.APIKey != "":
			checks = append(checks, DoctorCheck{Name: name, Status: "ok", Message: "key " + config.MaskKey(p.APIKey)})
			ready++
		default:
			checks = append(checks, DoctorCheck{
				Name:    name,
				Status:  "warn",
				Message: "no API key",
				Hint:    fmt.Sprintf("Run 'zer3az setup --provider %s' or set %s", p.Provider, config.EnvVarsForProvider(p.Provider)[0]),
			})
		}
	}
	if ready == 0 {
		checks = append(checks, DoctorCheck{
			Name:    "Answers",
			Status:  "warn",
			Message: "only the built-in plant data will answer",
			Hint:    "Configure at least one provider for free-form conversation",
		})
	}
	return checks
}

func checkSessionStore(ctx context.Context, cfg *config.AppConfig) DoctorCheck {
	name := "Session store (" + cfg.Session.Backend + ")"
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := session.Open(ctx, cfg.SessionOptions())
	if err != nil {
		return DoctorCheck{Name: name, Status: "fail", Message: err.Error(), Hint: "Check session.redisAddr or session.sqlitePath"}
	}
	defer func() { _ = store.Close() }()

	switch cfg.Session.Backend {
	case session.BackendRedis:
		return DoctorCheck{Name: name, Status: "ok", Message: "connected to " + cfg.Session.RedisAddr}
	case session.BackendSQLite:
		return DoctorCheck{Name: name, Status: "ok", Message: cfg.Session.SQLitePath}
	default:
		return DoctorCheck{Name: name, Status: "ok", Message: "in memory, sessions are lost on restart"}
	}
}

func checkCrashLogs() DoctorCheck {
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return DoctorCheck{Name: "Crash logs", Status: "warn", Message: err.Error()}
	}
	if len(logs) == 0 {
		return DoctorCheck{Name: "Crash logs", Status: "ok", Message: "none"}
	}
	return DoctorCheck{
		Name:    "Crash logs",
		Status:  "warn",
		Message: fmt.Sprintf("%d found, latest %s", len(logs), filepath.Base(logs[len(logs)-1])),
		Hint:    "Run 'zer3az doctor --crash' to view it",
	}
}

func printLatestCrash(out io.Writer) error {
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(out, "No crash logs found.")
		return nil
	}
	content, err := logger.ReadCrashLog(logs[len(logs)-1])
	if err != nil {
		return err
	}
	fmt.Fprint(out, content)
	return nil
}
