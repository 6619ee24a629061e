// Package metrics exports toast lifecycle counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riordanpawley/toastkit/internal/core/presenter"
)

// Config configures the recorder
type Config struct {
	// Namespace is the metrics namespace (default: "toastkit")
	Namespace string
	// Buckets are the histogram buckets for visible time in seconds
	Buckets []float64
	// Registry defaults to a fresh registry so tests never collide
	Registry *prometheus.Registry
}

// ConfigOption configures the recorder
type ConfigOption func(*Config)

// WithNamespace sets the metrics namespace
func WithNamespace(namespace string) ConfigOption {
	return func(c *Config) { c.Namespace = namespace }
}

// WithBuckets sets the visible-time histogram buckets
func WithBuckets(buckets []float64) ConfigOption {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the registry
func WithRegistry(registry *prometheus.Registry) ConfigOption {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "toastkit",
		Buckets:   []float64{0.5, 1, 2, 3, 5, 10, 30, 60},
	}
}

// Recorder implements presenter.Observer
type Recorder struct {
	registry      *prometheus.Registry
	presentations prometheus.Counter
	dismissals    *prometheus.CounterVec
	visible       *prometheus.HistogramVec
	shown         prometheus.Gauge
}

var _ presenter.Observer = (*Recorder)(nil)

// NewRecorder registers the toast metrics
func NewRecorder(opts ...ConfigOption) *Recorder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	factory := promauto.With(cfg.Registry)

	return &Recorder{
		registry: cfg.Registry,
		presentations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "presentations_total",
			Help:      "Total number of times a toast became visible",
		}),
		dismissals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "dismissals_total",
			Help:      "Total number of toast dismissals by cause",
		}, []string{"cause"}),
		visible: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "visible_seconds",
			Help:      "How long toasts stayed visible",
			Buckets:   cfg.Buckets,
		}, []string{"cause"}),
		shown: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "visible",
			Help:      "Number of toasts currently visible",
		}),
	}
}

// Presented implements presenter.Observer
func (r *Recorder) Presented(int) {
	r.presentations.Inc()
	r.shown.Inc()
}

// Dismissed implements presenter.Observer
func (r *Recorder) Dismissed(_ int, cause presenter.Cause, shown time.Duration) {
	label := cause.String()
	r.dismissals.WithLabelValues(label).Inc()
	r.visible.WithLabelValues(label).Observe(shown.Seconds())
	r.shown.Dec()
}

// Registry returns the registry the metrics live in
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
