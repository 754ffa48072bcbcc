/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/ui"
	"golang.org/x/term"
)

// setupFs is swapped in tests.
var setupFs afero.Fs = afero.NewOsFs()

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store an AI provider API key in .env",
	Long: `Pick a provider and save its API key to the .env file in the current directory.

Without flags the provider is chosen from a list and the key is read without echo.

Examples:
  zer3az setup
  zer3az setup --provider gemini --key "$GEMINI_API_KEY"`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().String("provider", "", "Provider to configure (anthropic, gemini, openai, ollama)")
	setupCmd.Flags().String("key", "", "API key (prompted when omitted)")
	setupCmd.Flags().String("env-file", ".env", "File to write the key to")
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	providerFlag, _ := cmd.Flags().GetString("provider")
	key, _ := cmd.Flags().GetString("key")
	envPath, _ := cmd.Flags().GetString("env-file")

	var provider llm.Provider
	var err error
	if providerFlag != "" {
		provider, err = llm.ValidateProvider(providerFlag)
		if err != nil {
			return err
		}
	} else {
		if !ui.IsInteractive() {
			return fmt.Errorf("--provider is required when not running in a terminal")
		}
		v := viper.GetViper()
		options := ui.BuildProviderOptions(func(p llm.Provider) bool {
			return config.ResolveAPIKey(v, p) != ""
		})
		provider, err = ui.PromptProvider(options)
		if err != nil {
			return err
		}
	}

	if !llm.NeedsAPIKey(provider) {
		fmt.Fprintf(out, "✅ %s needs no API key.\n", llm.ServiceName(provider))
		fmt.Fprintf(out, "   Add it to llm.providers and point llm.ollamaURL at your server (default %s).\n", llm.DefaultOllamaURL)
		return nil
	}

	if key == "" {
		key, err = readSecret(out, fmt.Sprintf("Enter %s API key: ", llm.ServiceName(provider)))
		if err != nil {
			return err
		}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key is empty")
	}

	envVar := config.EnvVarsForProvider(provider)[0]
	if err := config.NewEnvFile(setupFs, envPath).Set(envVar, key); err != nil {
		return fmt.Errorf("save key: %w", err)
	}

	fmt.Fprintf(out, "✅ Saved %s=%s to %s\n", envVar, config.MaskKey(key), envPath)
	return nil
}

func readSecret(out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--key is required when stdin is not a terminal")
	}
	fmt.Fprint(out, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	return string(b), nil
}
