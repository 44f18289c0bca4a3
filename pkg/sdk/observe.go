package recdex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/recdex/internal/domain"
)

// Operation outcomes used as the status label.
const (
	statusOK        = "ok"
	statusNotFound  = "not_found"
	statusInvalidID = "invalid_id"
	statusError     = "error"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	records    *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recdex",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK record operations by type and outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recdex",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		records: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "recdex",
			Subsystem: "sdk",
			Name:      "operation_records",
			Help:      "Records returned by list or written by import.",
			Buckets:   []float64{0, 1, 10, 50, 100, 500, 1000, 5000},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.records); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or adopts the one already registered,
// so several clients can share a registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("recdex: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("recdex: register metric: %w", err)
	}
	return nil
}

// opEvent describes one finished SDK call.
type opEvent struct {
	op         string
	collection string
	records    int // -1 when the operation has no record count
	start      time.Time
	err        error
}

// observer logs and counts SDK operations. A nil observer is a no-op.
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

func (o *observer) observe(ev opEvent) {
	if o == nil {
		return
	}
	dur := time.Since(ev.start)
	status := outcome(ev.err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(ev.op, status).Inc()
		o.metrics.duration.WithLabelValues(ev.op).Observe(dur.Seconds())
		if ev.records >= 0 {
			o.metrics.records.WithLabelValues(ev.op).Observe(float64(ev.records))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", ev.op, "duration", dur}
	if ev.collection != "" {
		attrs = append(attrs, "collection", ev.collection)
	}
	if ev.records >= 0 {
		attrs = append(attrs, "records", ev.records)
	}
	switch status {
	case statusOK:
		o.logger.Debug("record operation completed", attrs...)
	case statusNotFound, statusInvalidID:
		// caller mistakes, not service faults
		o.logger.Debug("record operation rejected", append(attrs, "status", status)...)
	default:
		o.logger.Warn("record operation failed", append(attrs, "error", ev.err)...)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, domain.ErrRecordNotFound):
		return statusNotFound
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return statusInvalidID
	default:
		return statusError
	}
}
