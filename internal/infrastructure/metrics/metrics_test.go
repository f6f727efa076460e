package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAskMetrics(reg)

	m.ObserveOutcome("streamed", 120*time.Millisecond)
	m.ObserveOutcome("streamed", 80*time.Millisecond)
	m.ObserveOutcome("rate_limited", time.Millisecond)
	m.ObservePrompt(12, 3)
	m.AddRelayedBytes(2048)
	m.AddRelayedBytes(-1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("streamed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("rate_limited")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.relayedBytes))
	assert.Equal(t, 1, testutil.CollectAndCount(m.listings))
}

func TestHandlerExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewAskMetrics(reg).ObserveOutcome("streamed", time.Second)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ask_local_requests_total{outcome="streamed"} 1`)
}
