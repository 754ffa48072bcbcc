/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/tools"
	"github.com/zer3az/chatbot/internal/ui"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "List and run plant tools",
	Long: `Run the same plant tools the chat API and the AI providers use.

Examples:
  zer3az tool list
  zer3az tool run get_plant_details --params '{"plant_id": 1}'
  zer3az tool run rank_plants --params '{"metric": "drought"}'`,
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := newToolTable()
		out := cmd.OutOrStdout()
		ui.RenderPageHeader(out, "Plant Tools", fmt.Sprintf("%d tools", len(table.Tools())))
		for _, t := range table.Tools() {
			fmt.Fprintf(out, "  %s\n", ui.StylePrimary.Render(t.Name))
			fmt.Fprintf(out, "    %s\n", ui.StyleSubtle.Render(ui.Truncate(t.Description, 90)))
			if params := paramSummary(t.Params); params != "" {
				fmt.Fprintf(out, "    params: %s\n", params)
			}
		}
		return nil
	},
}

var toolRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a tool with JSON parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("params")
		params := map[string]any{}
		if strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &params); err != nil {
				return fmt.Errorf("parse --params: %w", err)
			}
		}
		logger.SetService("tool")
		logger.SetLastInput(args[0] + " " + raw)

		result, err := newToolTable().Execute(cmd.Context(), args[0], params)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(toolCmd)
	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolRunCmd)
	toolRunCmd.Flags().String("params", "", "Tool parameters as a JSON object")
}

func newToolTable() *tools.Table {
	c := catalog.Default()
	return tools.New(c, dispatch.New(c))
}

func paramSummary(params []tools.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name + ":" + p.Type
		if p.Required {
			s += "*"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
