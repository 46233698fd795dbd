package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/datadeck/datadeck/internal/api"
	"github.com/datadeck/datadeck/internal/config"
	"github.com/datadeck/datadeck/internal/registry"
	"github.com/datadeck/datadeck/internal/watcher"
	"github.com/datadeck/datadeck/internal/ws"
)

// wsPollInterval is how often the WebSocket hub checks the registry
// fingerprint for changes.
const wsPollInterval = 2 * time.Second

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file (env vars override it)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("datadeck starting",
		"data_dir", cfg.DataDir,
		"addr", cfg.Addr(),
		"watch", cfg.Watch,
		"debounce", cfg.WatchDebounce,
		"cors", cfg.CORS,
	)

	if err := cfg.ValidateDataDir(); err != nil {
		slog.Error("data directory validation failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Dataset registry with the initial load done before serving.
	reg := registry.New()
	if err := reg.Reload(cfg.DataDir); err != nil {
		slog.Error("initial data load failed", "err", err)
		os.Exit(1)
	}

	// Optional live reload on directory changes.
	if cfg.Watch {
		w, err := watcher.New(cfg.DataDir, cfg.WatchDebounce, func() error {
			return reg.Reload(cfg.DataDir)
		})
		if err != nil {
			slog.Error("failed to start directory watcher", "err", err)
			os.Exit(1)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("watcher stopped", "err", err)
			}
		}()
	}

	// WebSocket hub — notifies clients after each effective reload.
	hub := ws.New(reg, wsPollInterval)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws/stream", hub)
	mux.Handle("/", api.New(reg, cfg.CORS))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: mux,
	}
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("datadeck shutting down")
	srv.Shutdown(context.Background()) //nolint:errcheck
}
