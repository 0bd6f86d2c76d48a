// Package metrics provides Prometheus metrics for yt-summary.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ytsummary"

const (
	FlowText       = "text"
	FlowVideo      = "video"
	FlowTranscript = "transcript"

	ProviderGemini  = "gemini"
	ProviderYouTube = "youtube"
)

// Recorder holds the collectors registered on one registry. A nil *Recorder
// records nothing.
type Recorder struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	summariesTotal   *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),
		summariesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "summaries_total",
				Help:      "Total number of summarization flows by outcome",
			},
			[]string{"flow", "outcome"},
		),
		providerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Duration of calls to external providers in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider"},
		),
	}
}

// RecordRequest records a served HTTP request.
func (r *Recorder) RecordRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordFlow records the outcome of one flow; outcome is "ok" or an error kind.
func (r *Recorder) RecordFlow(flow, outcome string) {
	if r == nil {
		return
	}
	r.summariesTotal.WithLabelValues(flow, outcome).Inc()
}

func (r *Recorder) ObserveProvider(provider string, duration time.Duration) {
	if r == nil {
		return
	}
	r.providerDuration.WithLabelValues(provider).Observe(duration.Seconds())
}
