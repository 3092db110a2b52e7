package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Dillya/melo/browser"
	"github.com/Dillya/melo/endpoint"
	"github.com/Dillya/melo/jsonrpc"
	"github.com/Dillya/melo/middleware"
	"github.com/Dillya/melo/module"
	"github.com/Dillya/melo/player"
	"github.com/Dillya/melo/playlist"
	"github.com/Dillya/melo/settings"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the media server daemon",
		Long: `Start the media server daemon.

The daemon mounts the JSON-RPC 2.0 control surface on /rpc and registers
the method groups of every built-in subsystem:

  config.*     persisted settings
  module.*     loaded media source modules
  browser.*    media navigation
  player.*     playback control
  playlist.*   play queues`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for deployment overrides.
			_ = godotenv.Load()

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, slog.Default())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	return cmd
}

func serve(ctx context.Context, cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := settings.NewStore(cfg.Settings.Path)
	if err := store.Load(); err != nil {
		return err
	}

	registry := jsonrpc.NewRegistry()
	modules := module.NewManager()
	browsers := browser.NewManager()
	players := player.NewManager()
	playlists := playlist.NewManager()

	if n := settings.RegisterMethods(registry, store); n > 0 {
		logger.Warn("skipped config methods", "count", n)
	}
	if n := module.RegisterMethods(registry, modules); n > 0 {
		logger.Warn("skipped module methods", "count", n)
	}
	if n := browser.RegisterMethods(registry, browsers); n > 0 {
		logger.Warn("skipped browser methods", "count", n)
	}
	if n := player.RegisterMethods(registry, players); n > 0 {
		logger.Warn("skipped player methods", "count", n)
	}
	if n := playlist.RegisterMethods(registry, playlists); n > 0 {
		logger.Warn("skipped playlist methods", "count", n)
	}
	defer func() {
		playlist.UnregisterMethods(registry)
		player.UnregisterMethods(registry)
		browser.UnregisterMethods(registry)
		module.UnregisterMethods(registry)
		settings.UnregisterMethods(registry)
	}()

	dispatcher := jsonrpc.NewDispatcher(registry)

	mux := http.NewServeMux()
	mux.Handle("/rpc", endpoint.Handler(dispatcher.Endpoint,
		middleware.NewLoggingProcessor(logger)))

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("control surface listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil {
		logger.Error("daemon stopped", "error", err)
	}
	return err
}
