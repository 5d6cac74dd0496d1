package tfidx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/tfidx/internal/domain"
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// Operation outcomes used as the status label.
const (
	statusOK       = "ok"
	statusEmpty    = "empty"
	statusNotReady = "not_ready"
	statusInvalid  = "invalid"
	statusCanceled = "canceled"
	statusError    = "error"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	searchResults prometheus.Histogram
	loadFailures  *prometheus.CounterVec
	documents     prometheus.Gauge
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tfidx",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type and outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tfidx",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"operation"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tfidx",
			Subsystem: "sdk",
			Name:      "search_results",
			Help:      "Documents returned per successful search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tfidx",
			Subsystem: "sdk",
			Name:      "load_failures_total",
			Help:      "Failed corpus loads by snapshot field.",
		}, []string{"field"}),
		documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tfidx",
			Subsystem: "sdk",
			Name:      "corpus_documents",
			Help:      "Documents in the loaded snapshot.",
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.searchResults); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.loadFailures); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.documents); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("tfidx: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("tfidx: register metric: %w", err)
	}
	return nil
}

// statusOf classifies an operation error for the status label.
func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, domain.ErrNotReady):
		return statusNotReady
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrAllTokensStopwords),
		errors.Is(err, domain.ErrInvalidRequest):
		return statusInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return statusCanceled
	default:
		return statusError
	}
}

// loadField names the snapshot field behind a load failure.
func loadField(err error) string {
	var le *domain.LoadError
	if errors.As(err, &le) {
		return le.Field
	}
	return "unknown"
}

// observer provides logging and metrics for SDK operations.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	o.record(op, statusOf(err), time.Since(start), err)
}

// observeSearch counts a search with no hits as "empty" so it is
// distinguishable from both success and failure.
func (o *observer) observeSearch(start time.Time, hits int, err error) {
	if o == nil {
		return
	}
	status := statusOf(err)
	if err == nil && hits == 0 {
		status = statusEmpty
	}
	if err == nil && o.metrics != nil {
		o.metrics.searchResults.Observe(float64(hits))
	}
	o.record("search", status, time.Since(start), err)
}

func (o *observer) observeLoad(dur time.Duration, err error, stats *corpus.Stats) {
	if o == nil {
		return
	}
	if o.metrics != nil {
		if err != nil {
			o.metrics.loadFailures.WithLabelValues(loadField(err)).Inc()
		} else if stats != nil {
			o.metrics.documents.Set(float64(stats.Documents))
		}
	}
	if err == nil && stats != nil && o.logger != nil {
		o.logger.Info("corpus loaded",
			"documents", stats.Documents,
			"vocabulary", stats.VocabularySize,
			"problems", stats.Problems,
			"duration", dur,
		)
	}
	o.record("load", statusOf(err), dur, err)
}

func (o *observer) record(op, status string, dur time.Duration, err error) {
	if o == nil {
		return
	}

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch status {
	case statusOK, statusEmpty:
		o.logger.Debug("operation completed", "op", op, "status", status, "duration", dur)
	case statusNotReady, statusInvalid, statusCanceled:
		o.logger.Debug("operation rejected", "op", op, "status", status, "error", err)
	default:
		attrs := []any{"op", op, "duration", dur, "error", err}
		if op == "load" {
			attrs = append(attrs, "field", loadField(err))
		}
		o.logger.Warn("operation failed", attrs...)
	}
}
