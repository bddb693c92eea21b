package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for documents and HTTP traffic
type Metrics struct {
	Registry *prometheus.Registry

	documentsAnalyzed *prometheus.CounterVec
	decodeFailures    *prometheus.CounterVec
	analysisDuration  *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry, together with the
// Go runtime and process collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		documentsAnalyzed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studygram_documents_analyzed_total",
				Help: "Total number of documents run through the analysis pipeline",
			},
			[]string{"type", "result"},
		),
		decodeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studygram_decode_failures_total",
				Help: "Total number of documents whose text could not be extracted",
			},
			[]string{"type"},
		),
		analysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studygram_analysis_duration_seconds",
				Help:    "Time spent decoding and analyzing a document",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"type"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studygram_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studygram_http_request_duration_seconds",
				Help:    "HTTP request duration distribution",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveAnalysis records one pipeline run. A nil receiver is a no-op.
func (m *Metrics) ObserveAnalysis(docType string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.documentsAnalyzed.WithLabelValues(docType, result).Inc()
	m.analysisDuration.WithLabelValues(docType).Observe(elapsed.Seconds())
}

// ObserveDecodeFailure counts a document that could not be decoded
func (m *Metrics) ObserveDecodeFailure(docType string) {
	if m == nil {
		return
	}
	m.decodeFailures.WithLabelValues(docType).Inc()
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
