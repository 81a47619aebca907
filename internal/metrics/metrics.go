// Package metrics exposes fetch outcomes as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmcdole/rankbar/internal/rank"
)

const namespace = "rankbar"

// Metrics records fetch outcomes. It implements rank.Observer.
type Metrics struct {
	registry    *prometheus.Registry
	fetches     *prometheus.CounterVec
	rank        *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
	now         func() time.Time
}

var _ rank.Observer = (*Metrics)(nil)

// New creates metrics on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Rank lookups by source and result (hit, fetched, error).",
		}, []string{"source", "result"}),
		rank: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rank",
			Help:      "Most recently known rank per source.",
		}, []string{"source"}),
		lastSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful rank lookup.",
		}, []string{"source"}),
		now: time.Now,
	}
}

// ObserveFetch implements rank.Observer
func (m *Metrics) ObserveFetch(source string, outcome rank.Outcome, value int, err error) {
	if err != nil {
		m.fetches.WithLabelValues(source, "error").Inc()
		return
	}
	m.fetches.WithLabelValues(source, string(outcome)).Inc()
	m.rank.WithLabelValues(source).Set(float64(value))
	m.lastSuccess.WithLabelValues(source).Set(float64(m.now().Unix()))
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
