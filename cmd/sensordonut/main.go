// sensordonut renders Home Assistant style sensor donut cards from live
// entity states, as JSON, SVG, HTML or a terminal view.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/config"
	"github.com/sensordonut/sensordonut/internal/registry"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sensordonut",
		Short:         "Render numeric sensors as donut charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file path (default: built-in defaults plus SENSORDONUT_* env)")
	root.PersistentFlags().String("card", "", "card file path, overrides card_file from config")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newWatchCmd(),
		newValidateCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config named by --config and applies --card and
// --log-level on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if c, _ := cmd.Flags().GetString("card"); c != "" {
		cfg.CardFile = c
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Logging.Level = l
	}
	return cfg, nil
}

// newLogger builds the process logger from the logging settings.
func newLogger(w io.Writer, lc config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(lc.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func newRegistry() *registry.Registry {
	reg := registry.New()
	if err := reg.Register(registry.SensorDonutCard); err != nil {
		// Only fails on a duplicate type, which a fresh registry cannot have.
		panic(err)
	}
	return reg
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config and card files without starting anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			c, err := card.Load(cfg.CardFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d donuts, %d sources)\n",
				cfg.CardFile, len(c.Donuts), len(cfg.Sources))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, registry.Banner(registry.SensorDonutCard))
			fmt.Fprintf(out, "  binary:  %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
		},
	}
}
