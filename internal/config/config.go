package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/riordanpawley/toastkit/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config represents the full toastkit configuration
type Config struct {
	Toast   ToastConfig   `json:"toast" yaml:"toast"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// ToastConfig holds presentation options. Pointer fields distinguish an
// explicit false from an omitted key.
type ToastConfig struct {
	Alignment     string `json:"alignment" yaml:"alignment"`
	HideAfterMs   int    `json:"hideAfterMs" yaml:"hideAfterMs"`
	Backdrop      *bool  `json:"backdrop,omitempty" yaml:"backdrop,omitempty"`
	BackdropColor string `json:"backdropColor" yaml:"backdropColor"`
	DismissOnTap  *bool  `json:"dismissOnTap,omitempty" yaml:"dismissOnTap,omitempty"`
	DragToDismiss *bool  `json:"dragToDismiss,omitempty" yaml:"dragToDismiss,omitempty"`
	Transition    string `json:"transition" yaml:"transition"`
	DisplayMode   string `json:"displayMode" yaml:"displayMode"`
	ShowCountdown bool   `json:"showCountdown" yaml:"showCountdown"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// MetricsConfig controls the Prometheus exporter
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables it
	Addr string `json:"addr" yaml:"addr"`
}

// Config file names in priority order
var configFiles = []string{".toastkit.json", ".toastkit.yaml", ".toastkit.yml"}

func boolPtr(b bool) *bool { return &b }

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Toast: ToastConfig{
			Alignment:     domain.AlignTop.String(),
			HideAfterMs:   3000,
			Backdrop:      boolPtr(true),
			BackdropColor: domain.DefaultBackdropColor,
			DismissOnTap:  boolPtr(true),
			DragToDismiss: boolPtr(true),
			Transition:    domain.TransitionFade.String(),
			DisplayMode:   domain.DisplayFull.String(),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(homeDir, ".toastkit", "toastkit.log"),
		},
	}
}

// LoadConfig loads configuration from dir with priority:
// 1. .toastkit.json (with version migration support)
// 2. .toastkit.yaml / .toastkit.yml
// 3. Defaults
func LoadConfig(dir string) (*Config, error) {
	for _, name := range configFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var cfg *Config
		if strings.HasSuffix(name, ".json") {
			cfg, err = ParseVersionedConfig(data)
		} else {
			cfg, err = ParseVersionedYAML(data)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return MergeWithDefaults(cfg), nil
	}

	return DefaultConfig(), nil
}

// SaveConfig saves configuration to path with version information. The
// format follows the file extension.
func SaveConfig(cfg *Config, path string) error {
	format := "json"
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		format = "yaml"
	}

	data, err := Encode(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Encode serializes cfg as "json" or "yaml"
func Encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "json", "":
		return MarshalVersionedConfig(cfg)
	case "yaml", "yml":
		data, err := MarshalVersionedConfig(cfg)
		if err != nil {
			return nil, err
		}
		// round-trip through a map so both formats carry the same keys
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return yaml.Marshal(raw)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Toast config
	if cfg.Toast.Alignment == "" {
		cfg.Toast.Alignment = defaults.Toast.Alignment
	}
	if cfg.Toast.HideAfterMs == 0 {
		cfg.Toast.HideAfterMs = defaults.Toast.HideAfterMs
	}
	if cfg.Toast.Backdrop == nil {
		cfg.Toast.Backdrop = defaults.Toast.Backdrop
	}
	if cfg.Toast.BackdropColor == "" {
		cfg.Toast.BackdropColor = defaults.Toast.BackdropColor
	}
	if cfg.Toast.DismissOnTap == nil {
		cfg.Toast.DismissOnTap = defaults.Toast.DismissOnTap
	}
	if cfg.Toast.DragToDismiss == nil {
		cfg.Toast.DragToDismiss = defaults.Toast.DragToDismiss
	}
	if cfg.Toast.Transition == "" {
		cfg.Toast.Transition = defaults.Toast.Transition
	}
	if cfg.Toast.DisplayMode == "" {
		cfg.Toast.DisplayMode = defaults.Toast.DisplayMode
	}

	// Merge Log config
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	return cfg
}

// Options converts the toast section into presentation options. A negative
// hideAfterMs disables auto-dismiss.
func (t ToastConfig) Options() (domain.Options, error) {
	alignment, err := domain.ParseAlignment(t.Alignment)
	if err != nil {
		return domain.Options{}, err
	}
	transition, err := domain.ParseTransition(t.Transition)
	if err != nil {
		return domain.Options{}, err
	}
	mode, err := domain.ParseDisplayMode(t.DisplayMode)
	if err != nil {
		return domain.Options{}, err
	}

	var hideAfter time.Duration
	if t.HideAfterMs > 0 {
		hideAfter = time.Duration(t.HideAfterMs) * time.Millisecond
	}

	opts := []domain.Option{
		domain.WithAlignment(alignment),
		domain.WithHideAfter(hideAfter),
		domain.WithTransition(transition),
		domain.WithDisplayMode(mode),
		domain.WithCountdown(t.ShowCountdown),
	}
	backdrop := true
	if t.Backdrop != nil {
		backdrop = *t.Backdrop
	}
	opts = append(opts, domain.WithBackdrop(backdrop, t.BackdropColor))
	if t.DismissOnTap != nil {
		opts = append(opts, domain.WithDismissOnTap(*t.DismissOnTap))
	}
	if t.DragToDismiss != nil {
		opts = append(opts, domain.WithDragToDismiss(*t.DragToDismiss))
	}

	return domain.NewOptions(opts...), nil
}

// SlogLevel parses the configured level, falling back to info
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
