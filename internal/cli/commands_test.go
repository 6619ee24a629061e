package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riordanpawley/toastkit/internal/config"
	"github.com/riordanpawley/toastkit/internal/core/presenter"
	"github.com/riordanpawley/toastkit/internal/services/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T) (*Dependencies, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	deps := NewDependencies(config.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	deps.Out = &out
	return deps, &out
}

func durationPtr(d time.Duration) *time.Duration { return &d }

func TestDemoFlagsApply(t *testing.T) {
	off := false
	base := config.DefaultConfig().Toast

	tests := []struct {
		name   string
		flags  DemoFlags
		modify func(c *config.ToastConfig)
	}{
		{"no flags", DemoFlags{}, func(*config.ToastConfig) {}},
		{"alignment", DemoFlags{Align: "bottomTrailing"}, func(c *config.ToastConfig) { c.Alignment = "bottomTrailing" }},
		{"hide after", DemoFlags{HideAfter: durationPtr(1500 * time.Millisecond)}, func(c *config.ToastConfig) { c.HideAfterMs = 1500 }},
		{"hide after zero means never", DemoFlags{HideAfter: durationPtr(0)}, func(c *config.ToastConfig) { c.HideAfterMs = -1 }},
		{"transition", DemoFlags{Transition: "slide"}, func(c *config.ToastConfig) { c.Transition = "slide" }},
		{"inline", DemoFlags{Inline: true}, func(c *config.ToastConfig) { c.DisplayMode = "inline" }},
		{"no backdrop", DemoFlags{NoBackdrop: true}, func(c *config.ToastConfig) { c.Backdrop = &off }},
		{"countdown", DemoFlags{Countdown: true}, func(c *config.ToastConfig) { c.ShowCountdown = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := base
			tt.modify(&want)

			got := tt.flags.Apply(base)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDemoFlagsApply_ProducesValidOptions(t *testing.T) {
	flags := DemoFlags{Align: "center", HideAfter: durationPtr(0), Transition: "scale", Inline: true, NoBackdrop: true}

	opts, err := flags.Apply(config.DefaultConfig().Toast).Options()
	require.NoError(t, err)
	assert.Equal(t, "center", opts.Alignment.String())
	assert.False(t, opts.AutoHides())
	assert.False(t, opts.Backdrop)
	assert.Equal(t, "inline", opts.DisplayMode.String())
}

func TestDemoCommand_RequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdout) {
		t.Skip("stdout is a terminal; the demo would start")
	}
	deps, _ := newTestDeps(t)

	err := DemoCommand(context.Background(), deps, DemoFlags{Align: "sideways"})
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestConfigCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		deps, out := newTestDeps(t)
		require.NoError(t, ConfigCommand(deps, "json"))

		cfg, err := config.ParseVersionedConfig(out.Bytes())
		require.NoError(t, err)
		if diff := cmp.Diff(deps.Config, cfg); diff != "" {
			t.Errorf("printed config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		deps, out := newTestDeps(t)
		require.NoError(t, ConfigCommand(deps, "yaml"))

		assert.Contains(t, out.String(), "toast:")
		cfg, err := config.ParseVersionedYAML(out.Bytes())
		require.NoError(t, err)
		assert.Equal(t, deps.Config.Toast.Alignment, cfg.Toast.Alignment)
	})

	t.Run("unknown format", func(t *testing.T) {
		deps, out := newTestDeps(t)
		assert.Error(t, ConfigCommand(deps, "toml"))
		assert.Empty(t, out.String())
	})
}

func TestVersionCommand(t *testing.T) {
	deps, out := newTestDeps(t)

	err := VersionCommand(deps, BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "1.2.3")
	assert.Contains(t, text, "abc123")
	assert.Contains(t, text, "config:")
	assert.Len(t, strings.Split(strings.TrimSpace(text), "\n"), 5)
}

func TestServeMetrics(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	rec := metrics.NewRecorder()
	rec.Presented(1)
	rec.Dismissed(1, presenter.CauseTap, time.Second)

	stop := ServeMetrics(ln, rec.Handler(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = stop(context.Background()) })

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `dismissals_total{cause="tap"} 1`)
}
