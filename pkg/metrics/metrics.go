// Package metrics records codec activity for the recpack command line tool.
// Metrics live on a registry owned by the caller, never the global one, and
// are exported by writing a node exporter textfile.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/recpack/pkg/codec"
	"github.com/ssargent/recpack/pkg/fileio"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Operation names
const (
	OpDecode = "decode"
	OpEncode = "encode"
	OpLoad   = "load"
	OpStore  = "store"
)

// Metrics holds the Prometheus collectors for codec operations
type Metrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	recordsTotal      *prometheus.CounterVec
	bytesTotal        *prometheus.CounterVec
	failuresTotal     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recpack_operations_total",
				Help: "Total number of codec and file operations",
			},
			[]string{"operation", "status"},
		),

		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recpack_operation_duration_seconds",
				Help:    "Codec and file operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"operation"},
		),

		recordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recpack_records_total",
				Help: "Total number of records encoded or decoded",
			},
			[]string{"operation"},
		),

		bytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recpack_bytes_total",
				Help: "Total number of bytes copied, loaded or stored",
			},
			[]string{"operation"},
		),

		failuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recpack_failures_total",
				Help: "Total number of failed operations by reason",
			},
			[]string{"operation", "reason"},
		),
	}
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one operation that started at start and handled the given
// number of records and bytes.
func (m *Metrics) Observe(op string, start time.Time, records, bytes int, err error) {
	m.operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		m.operationsTotal.WithLabelValues(op, statusError).Inc()
		m.failuresTotal.WithLabelValues(op, Reason(err)).Inc()
		return
	}

	m.operationsTotal.WithLabelValues(op, statusSuccess).Inc()
	m.recordsTotal.WithLabelValues(op).Add(float64(records))
	m.bytesTotal.WithLabelValues(op).Add(float64(bytes))
}

// Reason classifies an error for the failures metric
func Reason(err error) string {
	switch {
	case errors.Is(err, codec.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, codec.ErrUnalignedBudget):
		return "unaligned_budget"
	case errors.Is(err, codec.ErrFieldLength):
		return "field_length"
	case errors.Is(err, fileio.ErrFileAccess):
		return "file_access"
	default:
		return "other"
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
