package asklocal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
	"github.com/cajun-local/ask-local/api/internal/interfaces/http/common"
)

const (
	defaultBodyLimit = 64 << 10

	outcomeStreamed = "streamed"
	outcomeCanned   = "canned"
)

// Asker runs the ask-local pipeline.
type Asker interface {
	Ask(ctx context.Context, cmd application.AskCommand) (*application.Answer, error)
}

// Recorder receives per-request measurements.
type Recorder interface {
	ObserveOutcome(outcome string, elapsed time.Duration)
	ObservePrompt(listings, featured int)
	AddRelayedBytes(n int64)
}

// Handler serves the ask-local endpoint.
type Handler struct {
	asker     Asker
	logger    *zap.Logger
	metrics   Recorder
	errors    *common.ErrorMapper
	bodyLimit int64
	now       func() time.Time
}

// Config defines dependencies required by Handler.
type Config struct {
	Asker     Asker
	Logger    *zap.Logger
	Metrics   Recorder
	BodyLimit int64
}

// NewHandler constructs the ask-local handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopRecorder{}
	}
	limit := cfg.BodyLimit
	if limit <= 0 {
		limit = defaultBodyLimit
	}
	return &Handler{
		asker:     cfg.Asker,
		logger:    logger,
		metrics:   metrics,
		errors:    NewErrorMapper(),
		bodyLimit: limit,
		now:       time.Now,
	}
}

// NewErrorMapper maps pipeline errors to their terminal responses.
func NewErrorMapper() *common.ErrorMapper {
	return common.NewErrorMapper().
		WithMapping(application.ErrAuthRequired, common.ErrorInfo{
			Status: http.StatusForbidden, Message: "Sign in required.", Code: "auth_required", Kind: "auth_required",
		}).
		WithMapping(application.ErrAuthInvalid, common.ErrorInfo{
			Status: http.StatusForbidden, Message: "Invalid or expired session. Please sign in again.", Code: "auth_invalid", Kind: "auth_invalid",
		}).
		WithMapping(application.ErrSubscriptionRequired, common.ErrorInfo{
			Status:  http.StatusForbidden,
			Message: "Ask Local is available for Plus and Pro members. Upgrade to use this feature.",
			Code:    "subscription_required",
			Kind:    "subscription_required",
		}).
		WithMapping(application.ErrInvalidBody, common.ErrorInfo{
			Status: http.StatusBadRequest, Message: "Invalid JSON body.", Kind: "bad_request",
		}).
		WithMapping(application.ErrQuestionRequired, common.ErrorInfo{
			Status: http.StatusBadRequest, Message: "A question is required.", Kind: "bad_request",
		}).
		WithMapping(application.ErrBadRequest, common.ErrorInfo{
			Status: http.StatusBadRequest, Message: "Invalid request.", Kind: "bad_request",
		}).
		WithMapping(application.ErrConfiguration, common.ErrorInfo{
			Status: http.StatusServiceUnavailable, Message: "Server configuration error.", Kind: "configuration",
		}).
		WithMapping(application.ErrStore, common.ErrorInfo{
			Status: http.StatusInternalServerError, Message: "Failed to load businesses.", Kind: "store",
		}).
		WithMapping(application.ErrRateLimited, common.ErrorInfo{
			Status: http.StatusTooManyRequests, Message: "Too many requests. Please try again in a moment.", Kind: "rate_limited",
		}).
		WithMapping(application.ErrQuotaExhausted, common.ErrorInfo{
			Status: http.StatusPaymentRequired, Message: "AI service credits exhausted. Please try again later.", Kind: "quota_exhausted",
		}).
		WithMapping(application.ErrProvider, common.ErrorInfo{
			Status: http.StatusBadGateway, Message: "AI request failed. Please try again later.", Kind: "provider",
		}).
		WithDefault(common.ErrorInfo{
			Status: http.StatusInternalServerError, Message: "Something went wrong. Please try again.", Kind: "internal",
		})
}

// Register mounts the ask-local routes, including the legacy functions path.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ask-local", h.askHandler())
	r.Post("/functions/v1/ask-local", h.askHandler())
}

func (h *Handler) askHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := h.now()
		requestID := middleware.GetReqID(r.Context())
		logger := h.logger.With(zap.String("request_id", requestID))

		token, err := application.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			h.fail(w, logger, started, err)
			return
		}

		req, err := decodeAskRequest(http.MaxBytesReader(w, r.Body, h.bodyLimit))
		if err != nil {
			logger.Debug("decode ask request failed", zap.Error(err))
			h.fail(w, logger, started, application.ErrInvalidBody)
			return
		}

		answer, err := h.asker.Ask(r.Context(), application.AskCommand{
			Token:     token,
			Question:  req.question(),
			RegionIDs: req.regionIDs(),
			RequestID: requestID,
		})
		if err != nil {
			h.fail(w, logger, started, err)
			return
		}

		h.stream(w, r, logger, started, answer)
	}
}

// decodeAskRequest requires the body to hold exactly one JSON value.
func decodeAskRequest(body io.Reader) (askRequest, error) {
	var req askRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return askRequest{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
		return askRequest{}, err
	}
	return req, nil
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request, logger *zap.Logger, started time.Time, answer *application.Answer) {
	outcome := outcomeStreamed
	if answer.Canned {
		outcome = outcomeCanned
	} else {
		h.metrics.ObservePrompt(answer.Listings, answer.Featured)
	}
	h.metrics.ObserveOutcome(outcome, h.now().Sub(started))

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	flush := func() { _ = rc.Flush() }
	flush()

	written, err := application.Pipe(r.Context(), w, flush, answer.Body)
	h.metrics.AddRelayedBytes(written)
	switch {
	case err == nil:
		logger.Debug("stream complete", zap.Int64("bytes", written))
	case errors.Is(err, context.Canceled):
		logger.Info("client went away mid-stream", zap.Int64("bytes", written))
	default:
		logger.Warn("stream aborted", zap.Int64("bytes", written), zap.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, logger *zap.Logger, started time.Time, err error) {
	info := h.errors.Map(err)
	h.metrics.ObserveOutcome(info.Kind, h.now().Sub(started))

	if info.Status >= http.StatusInternalServerError {
		logger.Error("ask-local request failed", zap.String("kind", info.Kind), zap.Int("status", info.Status), zap.Error(err))
	} else {
		logger.Info("ask-local request rejected", zap.String("kind", info.Kind), zap.Int("status", info.Status), zap.Error(err))
	}
	common.WriteError(h.logger, w, info)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOutcome(string, time.Duration) {}
func (nopRecorder) ObservePrompt(int, int)               {}
func (nopRecorder) AddRelayedBytes(int64)                {}
