/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zer3az",
	Short: "Zer3aZ answers crop plant breeding questions for Algerian climate zones.",
	Long: `Zer3aZ is a plant breeding assistant for wheat, barley, corn, sorghum and alfalfa.

It serves a JSON chat API, answers one-off questions from the terminal and exposes
its plant tools to MCP clients. Answers come from Claude, Gemini or OpenAI when a
key is configured, and from the built-in plant data otherwise.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logger.SetVersion(version)
	logger.SetCommand(strings.Join(os.Args[1:], " "))
	defer logger.HandlePanic()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetVersion returns the CLI version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.zer3az.yaml or ./.zer3az.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
