package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/riordanpawley/toastkit/internal/app"
	"github.com/riordanpawley/toastkit/internal/config"
	"github.com/riordanpawley/toastkit/internal/services/metrics"
	"github.com/riordanpawley/toastkit/internal/services/notify"
)

// ErrNotTerminal is returned when the demo is started without a terminal
var ErrNotTerminal = errors.New("toastkit demo needs an interactive terminal")

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config   *config.Config
	Hub      *notify.Hub
	Recorder *metrics.Recorder
	Logger   *slog.Logger
	Out      io.Writer
}

// NewDependencies creates a new Dependencies instance with all required services
func NewDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dependencies{
		Config:   cfg,
		Hub:      notify.Default,
		Recorder: metrics.NewRecorder(),
		Logger:   logger,
		Out:      os.Stdout,
	}
}

// DemoFlags override the toast section of the configuration. Zero values
// leave the configured value alone.
type DemoFlags struct {
	Align       string
	HideAfter   *time.Duration
	Transition  string
	Inline      bool
	NoBackdrop  bool
	Countdown   bool
	MetricsAddr string
}

// Apply returns cfg with the flags folded in
func (f DemoFlags) Apply(cfg config.ToastConfig) config.ToastConfig {
	if f.Align != "" {
		cfg.Alignment = f.Align
	}
	if f.HideAfter != nil {
		cfg.HideAfterMs = int(f.HideAfter.Milliseconds())
		if *f.HideAfter <= 0 {
			cfg.HideAfterMs = -1
		}
	}
	if f.Transition != "" {
		cfg.Transition = f.Transition
	}
	if f.Inline {
		cfg.DisplayMode = "inline"
	}
	if f.NoBackdrop {
		off := false
		cfg.Backdrop = &off
	}
	if f.Countdown {
		cfg.ShowCountdown = true
	}
	return cfg
}

// DemoCommand runs the interactive demo until the user quits or ctx ends
func DemoCommand(ctx context.Context, deps *Dependencies, flags DemoFlags) error {
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	toastCfg := flags.Apply(deps.Config.Toast)
	opts, err := toastCfg.Options()
	if err != nil {
		return fmt.Errorf("invalid toast options: %w", err)
	}

	addr := flags.MetricsAddr
	if addr == "" {
		addr = deps.Config.Metrics.Addr
	}
	if addr != "" {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen for metrics: %w", err)
		}
		stop := ServeMetrics(ln, deps.Recorder.Handler(), deps.Logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := stop(shutdownCtx); err != nil {
				deps.Logger.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	deps.Logger.Info("starting demo",
		"alignment", opts.Alignment.String(),
		"transition", opts.Transition.String(),
		"display_mode", opts.DisplayMode.String(),
		"hide_after", opts.HideAfter,
	)

	model := app.New(opts, app.Deps{
		Hub:      deps.Hub,
		Observer: deps.Recorder,
		Logger:   deps.Logger,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
		tea.WithContext(ctx),
	)
	model.Attach(p)
	defer model.Close()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run demo: %w", err)
	}
	return nil
}

// ServeMetrics exposes h under /metrics on ln. The returned function shuts
// the server down.
func ServeMetrics(ln net.Listener, h http.Handler, logger *slog.Logger) (stop func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return srv.Shutdown
}

// ConfigCommand prints the effective configuration
func ConfigCommand(deps *Dependencies, format string) error {
	data, err := config.Encode(deps.Config, format)
	if err != nil {
		return err
	}
	if _, err := deps.Out.Write(data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// BuildInfo is set by the linker
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// VersionCommand prints build information
func VersionCommand(deps *Dependencies, info BuildInfo) error {
	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "version:\t%s\n", info.Version)
	fmt.Fprintf(w, "commit:\t%s\n", info.Commit)
	fmt.Fprintf(w, "built:\t%s\n", info.Date)
	fmt.Fprintf(w, "go:\t%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "config:\tversion %d\n", config.CurrentVersion)
	return w.Flush()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
