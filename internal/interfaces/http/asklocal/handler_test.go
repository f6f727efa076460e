package asklocal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
)

type fakeAsker struct {
	calls  []application.AskCommand
	answer *application.Answer
	err    error
}

func (f *fakeAsker) Ask(_ context.Context, cmd application.AskCommand) (*application.Answer, error) {
	f.calls = append(f.calls, cmd)
	return f.answer, f.err
}

type recordingMetrics struct {
	outcomes []string
	bytes    int64
	prompts  int
}

func (m *recordingMetrics) ObserveOutcome(outcome string, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
}
func (m *recordingMetrics) ObservePrompt(int, int)  { m.prompts++ }
func (m *recordingMetrics) AddRelayedBytes(n int64) { m.bytes += n }

func newRouter(asker Asker, metrics Recorder) http.Handler {
	router := chi.NewRouter()
	NewHandler(Config{Asker: asker, Metrics: metrics, BodyLimit: 1 << 10}).Register(router)
	return router
}

func doAsk(t *testing.T, h http.Handler, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAskStreamsAnswer(t *testing.T) {
	stream := "data: {\"choices\":[{\"delta\":{\"content\":\"Try Bayou Bistro\"}}]}\n\ndata: [DONE]\n\n"
	asker := &fakeAsker{answer: &application.Answer{Body: io.NopCloser(strings.NewReader(stream)), Listings: 3, Featured: 1}}
	metrics := &recordingMetrics{}

	rec := doAsk(t, newRouter(asker, metrics), "/ask-local", "Bearer tok",
		`{"question":"  gumbo?  ","preferred_parish_ids":["12", 7, null],"preferred_region_ids":["acadia"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rec.Header().Get("Connection"))
	assert.Equal(t, stream, rec.Body.String())
	assert.True(t, rec.Flushed)

	require.Len(t, asker.calls, 1)
	assert.Equal(t, "tok", asker.calls[0].Token)
	assert.Equal(t, "  gumbo?  ", asker.calls[0].Question)
	assert.Equal(t, []string{"12", "7", "acadia"}, asker.calls[0].RegionIDs)

	assert.Equal(t, []string{outcomeStreamed}, metrics.outcomes)
	assert.EqualValues(t, len(stream), metrics.bytes)
	assert.Equal(t, 1, metrics.prompts)
}

func TestAskLegacyPath(t *testing.T) {
	asker := &fakeAsker{answer: &application.Answer{Body: application.CannedStream(application.NoListingsMessage), Canned: true}}
	metrics := &recordingMetrics{}

	rec := doAsk(t, newRouter(asker, metrics), "/functions/v1/ask-local", "Bearer tok", `{"question":"hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), application.NoListingsMessage)
	assert.Equal(t, []string{outcomeCanned}, metrics.outcomes)
	assert.Zero(t, metrics.prompts)
}

func TestAskRejectsBeforeCallingPipeline(t *testing.T) {
	cases := map[string]struct {
		auth     string
		body     string
		status   int
		message  string
		code     string
		wantCall bool
	}{
		"missing header":  {auth: "", body: `{"question":"hi"}`, status: http.StatusForbidden, message: "Sign in required.", code: "auth_required"},
		"not bearer":      {auth: "Token abc", body: `{"question":"hi"}`, status: http.StatusForbidden, message: "Sign in required.", code: "auth_required"},
		"empty bearer":    {auth: "Bearer   ", body: `{"question":"hi"}`, status: http.StatusForbidden, message: "Sign in required.", code: "auth_required"},
		"malformed json":  {auth: "Bearer tok", body: `{"question":`, status: http.StatusBadRequest, message: "Invalid JSON body."},
		"oversized body":  {auth: "Bearer tok", body: `{"question":"` + strings.Repeat("a", 2<<10) + `"}`, status: http.StatusBadRequest, message: "Invalid JSON body."},
		"trailing data":   {auth: "Bearer tok", body: `{"question":"gumbo?"} not json`, status: http.StatusBadRequest, message: "Invalid JSON body."},
		"two objects":     {auth: "Bearer tok", body: `{"question":"a"}{"question":"b"}`, status: http.StatusBadRequest, message: "Invalid JSON body."},
		"no auth and bad": {auth: "", body: `not json`, status: http.StatusForbidden, message: "Sign in required.", code: "auth_required"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			asker := &fakeAsker{}
			rec := doAsk(t, newRouter(asker, nil), "/ask-local", tc.auth, tc.body)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.message, body["error"])
			assert.Equal(t, tc.code, body["code"])
			assert.Empty(t, asker.calls)
		})
	}
}

func TestAskMapsPipelineErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
		code    string
	}{
		{application.ErrQuestionRequired, http.StatusBadRequest, "A question is required.", ""},
		{fmt.Errorf("%w: bad signature", application.ErrAuthInvalid), http.StatusForbidden, "Invalid or expired session. Please sign in again.", "auth_invalid"},
		{application.ErrSubscriptionRequired, http.StatusForbidden, "Ask Local is available for Plus and Pro members. Upgrade to use this feature.", "subscription_required"},
		{fmt.Errorf("%w: no key", application.ErrConfiguration), http.StatusServiceUnavailable, "Server configuration error.", ""},
		{fmt.Errorf("%w: load businesses: timeout", application.ErrStore), http.StatusInternalServerError, "Failed to load businesses.", ""},
		{application.ErrRateLimited, http.StatusTooManyRequests, "Too many requests. Please try again in a moment.", ""},
		{application.ErrQuotaExhausted, http.StatusPaymentRequired, "AI service credits exhausted. Please try again later.", ""},
		{fmt.Errorf("%w: status 500", application.ErrProvider), http.StatusBadGateway, "AI request failed. Please try again later.", ""},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "Something went wrong. Please try again.", ""},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := doAsk(t, newRouter(&fakeAsker{err: tc.err}, nil), "/ask-local", "Bearer tok", `{"question":"hi"}`)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeError(t, rec)
			assert.Equal(t, tc.message, body["error"])
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestDecodeAskRequestAllowsTrailingWhitespace(t *testing.T) {
	req, err := decodeAskRequest(strings.NewReader("{\"question\":\"gumbo?\"}\n\t "))
	require.NoError(t, err)
	assert.Equal(t, "gumbo?", req.question())
}

func TestAskRequestDecoding(t *testing.T) {
	var req askRequest
	require.NoError(t, json.Unmarshal([]byte(`{"question":42,"preferred_parish_ids":"12"}`), &req))
	assert.Empty(t, req.question(), "non-string questions count as missing")
	assert.Empty(t, req.regionIDs(), "non-array region ids mean no filter")

	require.NoError(t, json.Unmarshal([]byte(`{"question":"q","preferred_parish_ids":[1.5, true, "x"]}`), &req))
	assert.Equal(t, []string{"1.5", "true", "x"}, req.regionIDs())
}
