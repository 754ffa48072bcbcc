/*
Copyright © 2025 The Zer3aZ Authors
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/app"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/server"
	"github.com/zer3az/chatbot/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the chat API server",
	Long: `Start the Zer3aZ chat API.

Endpoints:
  POST /api/chat               answer a message
  POST /api/reset              clear a session
  GET  /api/history            read a session
  GET  /api/greeting           initial greeting
  GET  /api/config             persona and platform context
  GET  /api/tools              list plant tools
  POST /api/tool/{name}        run a plant tool
  POST /api/generate-report    breeding report for two plants
  GET  /api/health             service status

Examples:
  zer3az serve
  zer3az serve --port 8080
  CHATBOT_PORT=8080 zer3az serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "Port for the API server")
	serveCmd.Flags().String("log-format", "console", "Log format (console, json)")
	serveCmd.Flags().Bool("local", false, "Answer from the built-in plant data only")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("log.format", serveCmd.Flags().Lookup("log-format"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := newLogger(cfg, true)
	logger.SetService("serve")

	localOnly, _ := cmd.Flags().GetBool("local")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := app.New(ctx, app.Options{
		Config:    cfg,
		Logger:    log,
		Version:   GetVersion(),
		LocalOnly: localOnly,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("close app")
		}
	}()

	srv := server.New(serverConfig(cfg), server.Deps{
		Chat:      a.Chat,
		Tools:     a.Tools,
		Catalog:   a.Catalog,
		Persona:   a.Persona,
		Status:    a.Chain,
		Logger:    log,
		Telemetry: a.Telemetry,
	})

	fmt.Println()
	fmt.Println("🌾 Zer3aZ Chatbot")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("   API:      http://localhost:%d/api\n", cfg.Server.Port)
	fmt.Printf("   Answers:  %s\n", a.Chain.ActiveService())
	for _, p := range llm.DefaultProviderOrder {
		mark := "·"
		if a.Chain.Available(p) {
			mark = "✓"
		}
		fmt.Printf("   %s %s\n", mark, llm.ServiceName(p))
	}
	fmt.Printf("   Sessions: %s\n", cfg.Session.Backend)

	var wg sync.WaitGroup
	errChan := make(chan error, 2)
	srv.Start(&wg, errChan)

	a.Telemetry.Record(telemetry.ServerStarted{
		ActiveService:  a.Chain.ActiveService(),
		Providers:      len(a.Chain.Providers()),
		SessionBackend: cfg.Session.Backend,
		AuthEnabled:    cfg.Server.AuthToken != "",
	})

	fmt.Println()
	fmt.Println("✅ Zer3aZ is running! Press Ctrl+C to stop")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case sig := <-sigChan:
		fmt.Printf("\n\n⏹️  Received %v, shutting down...\n", sig)
	case runErr = <-errChan:
		fmt.Printf("\n\n❌ Error: %v\n", runErr)
	case <-ctx.Done():
	}

	fmt.Println("   Stopping API server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("   ⚠️  Server shutdown error: %v\n", err)
	}

	wg.Wait()
	fmt.Println("✅ Zer3aZ stopped")
	return runErr
}

func serverConfig(cfg *config.AppConfig) server.Config {
	return server.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		AuthToken:      cfg.Server.AuthToken,
		RequestTimeout: cfg.Server.RequestTimeout,
	}
}
