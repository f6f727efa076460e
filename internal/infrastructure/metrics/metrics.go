package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AskMetrics holds the ask-local collectors.
type AskMetrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	listings     prometheus.Histogram
	featured     prometheus.Histogram
	relayedBytes prometheus.Counter
}

// NewAskMetrics registers the collectors on reg.
func NewAskMetrics(reg prometheus.Registerer) *AskMetrics {
	factory := promauto.With(reg)
	return &AskMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ask_local_requests_total",
				Help: "Ask-local requests by terminal outcome",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ask_local_pipeline_seconds",
				Help:    "Time from request to first byte of the answer stream or the error response",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		listings: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ask_local_prompt_listings",
			Help:    "Listings rendered into a prompt",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		featured: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ask_local_prompt_featured",
			Help:    "Featured listings leading a prompt",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
		relayedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "ask_local_relayed_bytes_total",
			Help: "Bytes relayed from the provider stream to clients",
		}),
	}
}

// ObserveOutcome counts a finished request.
func (m *AskMetrics) ObserveOutcome(outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObservePrompt records the shape of a relayed prompt.
func (m *AskMetrics) ObservePrompt(listings, featured int) {
	m.listings.Observe(float64(listings))
	m.featured.Observe(float64(featured))
}

func (m *AskMetrics) AddRelayedBytes(n int64) {
	if n > 0 {
		m.relayedBytes.Add(float64(n))
	}
}

// Handler exposes gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
