package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/internal/render"
	"github.com/sensordonut/sensordonut/internal/source"
	"github.com/sensordonut/sensordonut/internal/store"
	"github.com/sensordonut/sensordonut/internal/view"
)

const defaultTermWidth = 80

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the card once and print it",
		Long: `Render the card once against the current entity states and write it to
stdout. States come from --states when given, otherwise from one poll of
every configured source.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			slog.SetDefault(newLogger(os.Stderr, cfg.Logging))

			format, _ := cmd.Flags().GetString("format")
			statesPath, _ := cmd.Flags().GetString("states")
			width, _ := cmd.Flags().GetInt("width")

			c, err := card.Load(cfg.CardFile)
			if err != nil {
				return err
			}
			st, err := loadStates(cmd.Context(), cfg, statesPath)
			if err != nil {
				return err
			}
			return writeModel(cmd.OutOrStdout(), render.Compute(*c, st.Snapshot()), format, width)
		},
	}
	cmd.Flags().StringP("format", "f", "text", "output format: json, svg, html or text")
	cmd.Flags().String("states", "", "JSON or YAML file of entity state records")
	cmd.Flags().Int("width", defaultTermWidth, "terminal width for the text format")
	return cmd
}

// loadStates fills a store from a states file, or from one poll of the
// configured sources when path is empty.
func loadStates(ctx context.Context, cfg *config.Config, path string) (*store.Store, error) {
	st := store.New(cfg.State.TTL)
	if path != "" {
		values, err := source.ReadStates(path)
		if err != nil {
			return nil, err
		}
		st.PutAll(values)
		return st, nil
	}
	poller := source.NewPoller(buildSources(cfg.Sources), st, cfg.State.PollInterval)
	for _, r := range poller.PollOnce(ctx) {
		if r.Err != nil {
			slog.Warn("render: source failed", "source", r.SourceID, "err", r.Err)
		}
	}
	return st, nil
}

func writeModel(w io.Writer, m render.Model, format string, width int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "svg":
		_, err := fmt.Fprintln(w, view.SVG(m))
		return err
	case "html":
		return view.HTML(w, m)
	case "text":
		_, err := fmt.Fprintln(w, view.Terminal(m, width))
		return err
	default:
		return fmt.Errorf("render: unknown format %q (want json, svg, html or text)", format)
	}
}
