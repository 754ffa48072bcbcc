/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zer3az/chatbot/internal/app"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat in the terminal",
	Long: `Open a full-screen chat with the plant breeding assistant.

The conversation is kept in the configured session store, so a later
run with the same --session id picks up where it left off.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("session", "", "Session id to continue (default: new session)")
	chatCmd.Flags().Bool("local", false, "Answer from the built-in plant data only")
}

func runChat(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return fmt.Errorf("chat needs an interactive terminal; use 'zer3az ask' instead")
	}
	logger.SetService("chat")

	cfg := GetConfig()
	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	localOnly, _ := cmd.Flags().GetBool("local")

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

	ask := func(ctx context.Context, message string) (string, string, error) {
		logger.SetLastInput(message)
		resp, err := a.Ask(ctx, message, sessionID)
		if err != nil {
			return "", "", err
		}
		return resp.Text, resp.Service, nil
	}
	if err := ui.RunChat(cmd.Context(), a.Persona.InitialGreeting, ask); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session saved as %s\n", sessionID)
	return nil
}
