/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/app"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/telemetry"
	"github.com/zer3az/chatbot/internal/tools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the plant tools over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Every plant tool is exposed under its own name, plus an "ask" tool that
answers a free-form question through the configured provider chain.

Example client entry:
  {"command": "zer3az", "args": ["mcp"]}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("local", false, "Answer ask calls from the built-in plant data only")
}

// AskParams are the arguments of the ask tool.
type AskParams struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

func runMCP(cmd *cobra.Command, args []string) error {
	logger.SetService("mcp")
	cfg := GetConfig()
	localOnly, _ := cmd.Flags().GetBool("local")

	// stdout carries the protocol; logs go to stderr.
	a, err := app.New(cmd.Context(), app.Options{
		Config:    cfg,
		Logger:    newLogger(cfg, false),
		Version:   GetVersion(),
		LocalOnly: localOnly,
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	server := newMCPServer(a)
	fmt.Fprintf(os.Stderr, "🌾 Zer3aZ MCP server ready (%d tools, answers via %s)\n", len(a.Tools.Tools())+1, a.Chain.ActiveService())
	if err := server.Run(cmd.Context(), mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func newMCPServer(a *app.App) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "zer3az-mcp",
		Version: version,
	}
	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintf(os.Stderr, "✓ MCP connection established\n")
			if viper.GetBool("verbose") {
				fmt.Fprintf(os.Stderr, "[DEBUG] Client initialized\n")
			}
		},
	}
	server := mcpsdk.NewServer(impl, serverOpts)

	for _, t := range a.Tools.Tools() {
		tool := &mcpsdk.Tool{
			Name:        t.Name,
			Description: mcpToolDescription(t),
		}
		mcpsdk.AddTool(server, tool, mcpTableHandler(a.Tools, a.Telemetry, t.Name))
	}

	askTool := &mcpsdk.Tool{
		Name:        "ask",
		Description: `Ask the plant breeding assistant a free-form question. Use {"message":"compare wheat and barley"}. Pass session_id to keep a conversation.`,
	}
	mcpsdk.AddTool(server, askTool, mcpAskHandler(a))
	return server
}

func mcpToolDescription(t tools.Tool) string {
	if len(t.Params) == 0 {
		return t.Description
	}
	return t.Description + " Parameters: " + paramSummary(t.Params) + " (* = required)."
}

func mcpTableHandler(table *tools.Table, rec telemetry.Client, name string) func(context.Context, *mcpsdk.ServerSession, *mcpsdk.CallToolParamsFor[map[string]any]) (*mcpsdk.CallToolResultFor[any], error) {
	return func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[map[string]any]) (*mcpsdk.CallToolResultFor[any], error) {
		var arguments map[string]any
		if params != nil {
			arguments = params.Arguments
		}
		result, err := table.Execute(ctx, name, arguments)
		rec.Record(telemetry.ToolExecuted{Tool: name, Transport: "mcp", Failed: err != nil})
		if err != nil {
			return mcpErrorResponse(err)
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcpErrorResponse(err)
		}
		return mcpTextResponse(string(data))
	}
}

func mcpAskHandler(a *app.App) func(context.Context, *mcpsdk.ServerSession, *mcpsdk.CallToolParamsFor[AskParams]) (*mcpsdk.CallToolResultFor[any], error) {
	return func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[AskParams]) (*mcpsdk.CallToolResultFor[any], error) {
		if params == nil || strings.TrimSpace(params.Arguments.Message) == "" {
			return mcpErrorResponse(errors.New(a.Persona.Errors.MessageRequired))
		}
		sessionID := params.Arguments.SessionID
		if sessionID == "" && session != nil {
			sessionID = strings.TrimSpace(session.ID())
		}
		resp, err := a.Ask(ctx, params.Arguments.Message, sessionID)
		if err != nil {
			return mcpErrorResponse(err)
		}
		return mcpTextResponse(resp.Text + "\n\n_via " + resp.Service + "_")
	}
}

// mcpTextResponse wraps text in a successful MCP tool result.
func mcpTextResponse(text string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}, nil
}

// mcpErrorResponse returns the error inside the result with IsError set, so the client model can see it.
func mcpErrorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}, nil
}
