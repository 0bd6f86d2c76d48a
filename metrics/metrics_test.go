package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.RecordRequest("POST", "/summarize", 200, 150*time.Millisecond)
	rec.RecordRequest("POST", "/summarize", 404, 20*time.Millisecond)
	rec.RecordFlow(FlowVideo, "ok")
	rec.RecordFlow(FlowVideo, "ok")
	rec.RecordFlow(FlowText, "invalid_input")
	rec.ObserveProvider(ProviderGemini, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.summariesTotal.WithLabelValues(FlowVideo, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.summariesTotal.WithLabelValues(FlowText, "invalid_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requestsTotal.WithLabelValues("POST", "/summarize", "404")))

	expected := `
# HELP ytsummary_http_requests_total Total number of HTTP requests
# TYPE ytsummary_http_requests_total counter
ytsummary_http_requests_total{method="POST",route="/summarize",status="200"} 1
ytsummary_http_requests_total{method="POST",route="/summarize",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ytsummary_http_requests_total"))
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.RecordRequest("GET", "/", 200, time.Millisecond)
		rec.RecordFlow(FlowText, "ok")
		rec.ObserveProvider(ProviderYouTube, time.Millisecond)
	})
}
