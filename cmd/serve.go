package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/preciouskayili/calendar-agent/internal/config"
	"github.com/preciouskayili/calendar-agent/internal/google"
	"github.com/preciouskayili/calendar-agent/internal/instrumentation"
	"github.com/preciouskayili/calendar-agent/internal/logging"
	"github.com/preciouskayili/calendar-agent/internal/memory"
	"github.com/preciouskayili/calendar-agent/internal/server"
	"github.com/preciouskayili/calendar-agent/internal/tools/account_tools"
	"github.com/preciouskayili/calendar-agent/internal/tools/calendar_tools"
	"github.com/preciouskayili/calendar-agent/internal/tools/memory_tools"
)

func newServeCmd() *cobra.Command {
	var (
		configFile     string
		debugMode      bool
		tokenDir       string
		memoryPath     string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server over stdio, exposing
calendar, account, and session-memory tools to AI assistants.

Logs go to stderr; stdout carries the MCP transport. Prometheus metrics are
served on a dedicated port unless disabled.

OAuth client configuration comes from GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET
(a .env file is honored) or from the credentials file named in the config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			// Flags override file values
			if cmd.Flags().Changed("token-dir") {
				cfg.Google.TokenDir = tokenDir
			}
			if cmd.Flags().Changed("memory-path") {
				cfg.Memory.Path = memoryPath
			}
			if cmd.Flags().Changed("metrics-enabled") {
				cfg.Metrics.Enabled = metricsEnabled
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Addr = metricsAddr
			}

			return runServe(cfg, debugMode)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&tokenDir, "token-dir", "token_files", "Directory holding per-account credential files")
	cmd.Flags().StringVar(&memoryPath, "memory-path", "sessions.db", "Path to the session memory database")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address")

	return cmd
}

func runServe(cfg *config.Config, debugMode bool) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(cfg, debugMode)

	store, err := newCredentialStore(cfg, logger)
	if err != nil {
		return err
	}

	memStore, err := memory.Open(cfg.Memory.Path)
	if err != nil {
		return fmt.Errorf("failed to open session memory: %w", err)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if !cfg.Metrics.Enabled {
		instrConfig.Enabled = false
	}

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	store.SetRecorder(provider.Metrics())

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if cfg.Metrics.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.Metrics.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server started", slog.String("addr", metricsServer.Addr()))
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	serverContext := server.NewServerContext(shutdownCtx, server.ServerContextConfig{
		Store:    store,
		Memory:   memStore,
		Provider: provider,
		Audit:    instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging),
		Logger:   logger,
	})
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("calendar-agent", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register all tools
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	logger.Info("starting MCP server", slog.String("transport", "stdio"))
	return runStdioServer(mcpSrv)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools builds the tool registry once at startup.
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Account",
			register: func() error {
				return account_tools.RegisterAccountTools(mcpSrv, ctx)
			},
		},
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(mcpSrv, ctx)
			},
		},
		{
			name: "Memory",
			register: func() error {
				return memory_tools.RegisterMemoryTools(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}

// loadConfig reads the optional YAML configuration file, falling back to
// defaults when no file is given.
func loadConfig(configFile string) (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func newLogger(cfg *config.Config, debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debugMode {
		level = slog.LevelDebug
	}
	return logging.NewLogger(level)
}

func newCredentialStore(cfg *config.Config, logger *slog.Logger) (*google.Store, error) {
	conf, err := google.OAuthConfigFromEnv(cfg.Google.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client configuration: %w", err)
	}
	return google.NewStore(conf, cfg.Google.TokenDir, logger), nil
}
