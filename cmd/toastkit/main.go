// Package main provides the toastkit command.
//
// toastkit presents transient toasts in a Bubble Tea program. The demo
// command shows a flag-bound toast and notices published from background
// goroutines.
//
// Usage:
//
//	toastkit [command] [flags]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/riordanpawley/toastkit/internal/cli"
	"github.com/riordanpawley/toastkit/internal/config"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// session is what every command needs once the config is loaded
type session struct {
	deps    *cli.Dependencies
	closeFn func() error
}

func (s *session) close() {
	if s.closeFn != nil {
		_ = s.closeFn()
	}
}

func main() {
	s := &session{}
	defer s.close()

	rootCmd := &cobra.Command{
		Use:   "toastkit",
		Short: "Transient toast presentation for Bubble Tea programs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger, closeFn, err := openLogger(cfg.Log)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			s.deps = cli.NewDependencies(cfg, logger)
			s.deps.Out = cmd.OutOrStdout()
			s.closeFn = closeFn
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	demo := demoCmd(s)
	rootCmd.RunE = demo.RunE
	rootCmd.Flags().AddFlagSet(demo.Flags())

	rootCmd.AddCommand(
		demo,
		configCmd(s),
		versionCmd(s),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		s.close()
		os.Exit(1)
	}
}

func demoCmd(s *session) *cobra.Command {
	var flags cli.DemoFlags

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive toast demo",
		Long: `Run the interactive toast demo.

Keys: t toggles the flag toast, n publishes a notice from a background
goroutine, d dismisses programmatically, ? shows help, q quits. Toasts
dismiss on tap, on a drag toward their edge, or after the configured delay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f := cmd.Flags().Lookup("hide-after"); f != nil && f.Changed {
				d, err := cmd.Flags().GetDuration("hide-after")
				if err != nil {
					return err
				}
				flags.HideAfter = &d
			}
			return cli.DemoCommand(cmd.Context(), s.deps, flags)
		},
	}

	cmd.Flags().StringVar(&flags.Align, "align", "", "toast alignment (top, bottomTrailing, center, ...)")
	cmd.Flags().Duration("hide-after", 0, "auto-dismiss delay; 0 never hides")
	cmd.Flags().StringVar(&flags.Transition, "transition", "", "transition (fade, slide, scale, skew)")
	cmd.Flags().BoolVar(&flags.Inline, "inline", false, "reserve rows instead of overlaying the view")
	cmd.Flags().BoolVar(&flags.NoBackdrop, "no-backdrop", false, "disable the backdrop")
	cmd.Flags().BoolVar(&flags.Countdown, "countdown", false, "show the remaining time under the toast")
	cmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func configCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ConfigCommand(s.deps, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")

	return cmd
}

func versionCmd(s *session) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
				return err
			}
			return cli.VersionCommand(s.deps, cli.BuildInfo{Version: version, Commit: commit, Date: date})
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}

// openLogger writes to the configured log file; the TUI owns the terminal
func openLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f.Close, nil
}
