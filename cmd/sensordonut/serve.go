package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sensordonut/sensordonut/internal/api"
	"github.com/sensordonut/sensordonut/internal/auth"
	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/internal/registry"
	"github.com/sensordonut/sensordonut/internal/source"
	"github.com/sensordonut/sensordonut/internal/store"
	"github.com/sensordonut/sensordonut/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the card over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			slog.SetDefault(newLogger(os.Stdout, cfg.Logging))
			fmt.Fprintln(os.Stderr, registry.Banner(registry.SensorDonutCard))

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("sensordonut starting",
		"card_file", cfg.CardFile,
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"state_ttl", cfg.State.TTL,
		"sources", len(cfg.Sources),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           newApp(ctx, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	slog.Info("sensordonut shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newApp starts the store, poller, hub and card watcher under ctx and
// returns the HTTP handler serving them.
//
// A missing or broken card file is not fatal: the API answers 503 until the
// watcher picks up a valid version.
func newApp(ctx context.Context, cfg *config.Config) http.Handler {
	holder := card.NewHolder(nil)
	if c, err := card.Load(cfg.CardFile); err != nil {
		slog.Error("card: initial load failed", "path", cfg.CardFile, "err", err)
	} else {
		holder.Store(c)
		slog.Info("card: loaded", "path", cfg.CardFile, "donuts", len(c.Donuts))
	}

	st := store.New(cfg.State.TTL)
	go st.Run(ctx)

	poller := source.NewPoller(buildSources(cfg.Sources), st, cfg.State.PollInterval)
	go poller.Run(ctx)

	hub := ws.New(st, holder, cfg.Server.PushInterval)
	go hub.Run(ctx)

	go func() {
		err := card.Watch(ctx, cfg.CardFile, func(c *card.Card) {
			holder.Store(c)
			hub.Trigger()
		})
		if err != nil {
			slog.Error("card: watcher stopped", "err", err)
		}
	}()

	return api.New(api.Options{
		Store:    st,
		Cards:    holder,
		Registry: newRegistry(),
		Auth: auth.APIKey(
			cfg.Server.Auth.Mode,
			cfg.Server.Auth.EffectiveHeader(),
			cfg.Server.Auth.Key(),
		),
		Hub:         hub,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
}

// buildSources constructs every configured source, skipping the ones that
// fail to build.
func buildSources(cfgs []config.Source) []source.Source {
	out := make([]source.Source, 0, len(cfgs))
	for _, sc := range cfgs {
		s, err := source.New(sc)
		if err != nil {
			slog.Error("source: skipping, could not build", "source", sc.ID, "err", err)
			continue
		}
		out = append(out, s)
		slog.Info("source: registered", "id", sc.ID, "type", sc.Type)
	}
	if len(out) == 0 {
		slog.Warn("no sources configured; waiting for pushes to /api/v1/states")
	}
	return out
}
