package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/internal/source"
	"github.com/sensordonut/sensordonut/internal/store"
	"github.com/sensordonut/sensordonut/internal/tui"
)

const statesSourceID = "states-file"

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the card live in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The TUI owns the terminal; logs go to --log-file or nowhere.
			var logOut io.Writer = io.Discard
			if path, _ := cmd.Flags().GetString("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				logOut = f
			}
			slog.SetDefault(newLogger(logOut, cfg.Logging))

			c, err := card.Load(cfg.CardFile)
			if err != nil {
				return err
			}
			holder := card.NewHolder(c)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			st := store.New(cfg.State.TTL)
			go st.Run(ctx)

			statesPath, _ := cmd.Flags().GetString("states")
			sources, err := watchSources(cfg, statesPath)
			if err != nil {
				return err
			}
			poller := source.NewPoller(sources, st, cfg.State.PollInterval)
			go poller.Run(ctx)

			updates, unsubscribe := st.Subscribe()
			defer unsubscribe()

			p := tea.NewProgram(tui.New(holder, st, updates), tea.WithAltScreen(), tea.WithContext(ctx))
			go watchCard(ctx, cfg.CardFile, holder, p)

			_, err = p.Run()
			if err != nil && ctx.Err() != nil {
				// Interrupted by a signal.
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("states", "", "JSON or YAML file of entity state records, re-read every poll interval")
	cmd.Flags().String("log-file", "", "append logs to this file while the TUI runs")
	return cmd
}

// watchSources returns the configured sources plus, when statesPath is set,
// a file source polled like any other so its entities stay within the TTL.
func watchSources(cfg *config.Config, statesPath string) ([]source.Source, error) {
	sources := buildSources(cfg.Sources)
	if statesPath == "" {
		return sources, nil
	}
	if _, err := source.ReadStates(statesPath); err != nil {
		return nil, err
	}
	fs, err := source.New(config.Source{ID: statesSourceID, Type: config.SourceFile, Path: statesPath})
	if err != nil {
		return nil, err
	}
	return append(sources, fs), nil
}

func watchCard(ctx context.Context, path string, holder *card.Holder, p *tea.Program) {
	err := card.Watch(ctx, path, func(c *card.Card) {
		holder.Store(c)
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		slog.Error("card: watcher stopped", "err", err)
	}
}
