package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fittrack/internal/api"
	"fittrack/internal/config"
	"fittrack/internal/insights"
	fitmcp "fittrack/internal/mcp"
	"fittrack/internal/middleware"
	"fittrack/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface and JSON API",
	Long: `Serve the HTML interface, the JSON API, /metrics and, unless
MCP_ENABLED=false, the MCP endpoint at /mcp.

The schema is created on startup if it does not exist yet. Set
GEMINI_API_KEY to enable POST /api/insights.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	var analyzer insights.Analyzer
	if cfg.GeminiAPIKey != "" {
		g, err := insights.NewGeminiAnalyzer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("insights disabled: %v", err)
		} else {
			analyzer = g
		}
	}

	server := newServer(cfg, newHandler(st, analyzer, cfg.MCPEnabled))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("fittrack listening on %s (%s)", cfg.HTTPAddress, cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	return nil
}

// newHandler assembles every route behind the logging and CORS middleware.
func newHandler(st store.Store, analyzer insights.Analyzer, mcpEnabled bool) http.Handler {
	mux := http.NewServeMux()
	api.NewHandlers(st, analyzer).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	if mcpEnabled {
		mux.Handle("/mcp", fitmcp.NewMCPServer(st).Handler())
	}
	return middleware.Logging(middleware.CORS(mux))
}

func newServer(c config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         c.HTTPAddress,
		Handler:      handler,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		IdleTimeout:  c.IdleTimeout,
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
