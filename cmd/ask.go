/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zer3az/chatbot/internal/app"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/ui"
	"golang.org/x/term"
)

const defaultAnswerWidth = 80

// askOutput matches the shape of the /api/chat response.
type askOutput struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Service   string `json:"service"`
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question",
	Long: `Ask one question and print the answer.

Pass "-" to read the question from stdin.

Examples:
  zer3az ask "compare wheat and barley"
  zer3az ask --local "which plant resists drought best?"
  echo "hybridization of sorghum and corn" | zer3az ask -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().String("session", "", "Session id to continue")
	askCmd.Flags().Bool("local", false, "Answer from the built-in plant data only")
	askCmd.Flags().Bool("json", false, "Print the response as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	if message == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		message = string(data)
	}
	logger.SetService("ask")
	logger.SetLastInput(message)

	cfg := GetConfig()
	sessionID, _ := cmd.Flags().GetString("session")
	localOnly, _ := cmd.Flags().GetBool("local")
	asJSON, _ := cmd.Flags().GetBool("json")

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

	var thinking *ui.Thinking
	if !asJSON && ui.IsInteractive() {
		thinking = ui.StartThinking(cmd.Context(), cmd.ErrOrStderr(), "Consulting the field notes...")
	}
	resp, err := a.Ask(cmd.Context(), message, sessionID)
	if thinking != nil {
		thinking.Done("")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(askOutput{Response: resp.Text, SessionID: resp.SessionID, Service: resp.Service})
	}

	width := defaultAnswerWidth
	if ui.IsInteractive() {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
			width = min(w-4, 100)
		}
	}
	fmt.Fprintln(out, ui.RenderAnswer(ui.Wrap(resp.Text, width), resp.Service, width))
	if sessionID == "" && verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "session: %s\n", resp.SessionID)
	}
	return nil
}
