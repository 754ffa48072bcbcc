/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zer3az/chatbot/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage Zer3aZ's anonymous usage statistics.

Only event names, the answering service and history lengths are sent.
Message text is never collected. Events are sent only when telemetry.apiKey is set.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		state, err := telemetry.Load(false)
		if err != nil {
			return fmt.Errorf("failed to read telemetry status: %w", err)
		}
		cfg := GetConfig()
		enabled := state.IsEnabled() || cfg.Telemetry.Enabled

		if enabled {
			fmt.Fprintln(out, "📊 Telemetry: enabled")
			fmt.Fprintf(out, "   Anonymous ID: %s\n", state.AnonymousID)
			if cfg.Telemetry.Enabled {
				fmt.Fprintln(out, "   Forced on by telemetry.enabled in config")
			}
			if cfg.Telemetry.APIKey == "" {
				fmt.Fprintln(out, "   No telemetry.apiKey set, so nothing is sent")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "   To disable: zer3az telemetry off")
		} else {
			fmt.Fprintln(out, "📊 Telemetry: disabled")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "   To enable: zer3az telemetry on")
		}
		return nil
	},
}

var telemetryOnCmd = &cobra.Command{
	Use:     "on",
	Aliases: []string{"enable"},
	Short:   "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(true); err != nil {
			return fmt.Errorf("failed to enable telemetry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry enabled. Thank you for helping improve Zer3aZ!")
		return nil
	},
}

var telemetryOffCmd = &cobra.Command{
	Use:     "off",
	Aliases: []string{"disable"},
	Short:   "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(false); err != nil {
			return fmt.Errorf("failed to disable telemetry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry disabled.")
		return nil
	},
}

func setTelemetry(enabled bool) error {
	state, err := telemetry.Load(false)
	if err != nil {
		return err
	}
	state.Enabled = enabled
	return state.Save()
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryOnCmd)
	telemetryCmd.AddCommand(telemetryOffCmd)
}
