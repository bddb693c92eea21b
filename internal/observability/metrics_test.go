package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveAnalysis(t *testing.T) {
	m := NewMetrics()

	m.ObserveAnalysis("pdf", 20*time.Millisecond, nil)
	m.ObserveAnalysis("pdf", 5*time.Millisecond, nil)
	m.ObserveAnalysis("docx", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentsAnalyzed.WithLabelValues("pdf", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsAnalyzed.WithLabelValues("docx", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.analysisDuration))
}

func TestMetrics_ObserveDecodeFailureAndRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveDecodeFailure("plain-text")
	m.ObserveRequest("POST", "/documents", 201, 10*time.Millisecond)
	m.ObserveRequest("POST", "/documents", 415, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeFailures.WithLabelValues("plain-text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/documents", "415")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "studygram_http_requests_total")
	assert.Contains(t, names, "go_goroutines")
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("pdf", time.Second, nil)
		m.ObserveDecodeFailure("pdf")
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
	})
}
