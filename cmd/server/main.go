package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/costtrack/internal/api"
	"github.com/rpggio/costtrack/internal/config"
	"github.com/rpggio/costtrack/internal/jobs"
	"github.com/rpggio/costtrack/internal/mcp"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var transport string
	root := &cobra.Command{
		Use:          "costtrack",
		Short:        "Construction cost tracking server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(transport)
		},
	}
	root.Flags().StringVar(&transport, "transport", "", `override the transport mode ("http" or "stdio")`)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(transport)
		},
	}
	serveCmd.Flags().StringVar(&transport, "transport", "", `override the transport mode ("http" or "stdio")`)

	root.AddCommand(serveCmd, newAPIKeyCmd(), newMetricsCmd())
	return root
}

func loadConfig(transport string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if transport != "" {
		cfg.Transport.Mode = transport
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("config error: %w", err)
		}
	}
	return cfg, nil
}

func serve(transport string) error {
	cfg, err := loadConfig(transport)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	mcpServer := mcp.NewServer(mcp.Config{
		Services:      a.mcpServices(),
		Resolver:      a.apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Jobs.Enabled {
		watcher := jobs.NewWatcher(a.inventory, a.metrics, a.activity, logger)
		scheduler, err := jobs.NewScheduler(watcher, cfg.Jobs.Schedule, cfg.Jobs.Timeout, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
		logger.Info("watcher scheduled", "schedule", cfg.Jobs.Schedule)
	}

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, mcpServer)
	}
	return runHTTPMode(ctx, a, mcpServer)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, a *app, mcpServer *sdkmcp.Server) error {
	cfg, logger := a.cfg, a.logger
	if parseLogLevel(cfg.Log.Level) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := api.NewRouter(api.Config{
		Services:    a.apiServices(),
		CORSOrigins: cfg.Server.CORSOrigins,
		AuthEnabled: cfg.Auth.Enabled,
		Resolver:    a.apiKeys,
		MCPHandler:  mcpHandler,
		Logger:      logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}
	return waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys",
	}
	var label string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an API key and print its token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			cfg.Store.SeedDemo = false
			a, err := bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			token, err := a.apiKeys.Create(cmd.Context(), label)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	create.Flags().StringVar(&label, "label", "", "label recorded as the actor for requests made with this key")
	_ = create.MarkFlagRequired("label")
	cmd.AddCommand(create)
	return cmd
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics [project-id]",
		Short: "Print project or portfolio metrics as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			cfg.Store.SeedDemo = false
			a, err := bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var out any
			if len(args) == 1 {
				out, err = a.metrics.ProjectMetrics(cmd.Context(), args[0])
			} else {
				out, err = a.metrics.Portfolio(cmd.Context())
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
