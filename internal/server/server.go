package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
	"github.com/cajun-local/ask-local/api/internal/config"
	"github.com/cajun-local/ask-local/api/internal/infrastructure/metrics"
	askhttp "github.com/cajun-local/ask-local/api/internal/interfaces/http/asklocal"
	commonhttp "github.com/cajun-local/ask-local/api/internal/interfaces/http/common"
)

// Backend bundles the store-specific repositories and lifecycle hooks.
type Backend struct {
	Directory    application.DirectoryRepository
	Promotions   application.PromotionRepository
	Entitlements application.EntitlementRepository
	Ping         func(ctx context.Context) error
	Close        func(ctx context.Context) error
}

// Server owns the HTTP lifecycle and wires the ask-local handler into the router.
type Server struct {
	logger         *zap.Logger
	backend        Backend
	asker          askhttp.Asker
	metrics        *metrics.AskMetrics
	gatherer       prometheus.Gatherer
	closers        []func(ctx context.Context) error
	addr           string
	allowedOrigins []string
	bodyLimit      int64
}

// Options carries the collaborators built by the entrypoint.
type Options struct {
	Logger   *zap.Logger
	Backend  Backend
	Asker    askhttp.Asker
	Metrics  *metrics.AskMetrics
	Gatherer prometheus.Gatherer
	// Closers run after the HTTP server stops, before the backend closes.
	Closers []func(ctx context.Context) error
}

// New builds a Server from configuration and prepared collaborators.
func New(cfg config.Config, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		logger:         logger,
		backend:        opts.Backend,
		asker:          opts.Asker,
		metrics:        opts.Metrics,
		gatherer:       gatherer,
		closers:        append([]func(context.Context) error(nil), opts.Closers...),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		bodyLimit:      cfg.BodyLimit,
	}
}

// Router assembles middleware and routes.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteJSON(s.logger, w, http.StatusNotFound, commonhttp.ErrorResponse{Error: "Not found."})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteJSON(s.logger, w, http.StatusMethodNotAllowed, commonhttp.ErrorResponse{Error: "Method not allowed."})
	})

	router.Get("/healthz", s.healthHandler())
	router.Handle("/metrics", metrics.Handler(s.gatherer))

	var recorder askhttp.Recorder
	if s.metrics != nil {
		recorder = s.metrics
	}
	askhttp.NewHandler(askhttp.Config{
		Asker:     s.asker,
		Logger:    s.logger,
		Metrics:   recorder,
		BodyLimit: s.bodyLimit,
	}).Register(router)

	return router
}

// Run starts the HTTP server and blocks until it stops or a signal arrives.
func (s *Server) Run() error {
	// No WriteTimeout: answers are streamed for as long as the provider talks.
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	err := waitForShutdown(httpServer, errChan, s.logger)
	s.shutdown(context.Background())
	return err
}

// withCORS answers preflight requests and decorates responses with CORS headers.
// The origin is echoed when allowed; requests without one get "*".
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := len(origins) == 0
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			_, listed := allowed[origin]
			if origin != "" && !allowAll && !listed {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			allowOrigin := origin
			if allowOrigin == "" {
				allowOrigin = "*"
			}
			header := w.Header()
			header.Set("Access-Control-Allow-Origin", allowOrigin)
			header.Add("Vary", "Origin")
			header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			header.Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			defer func() {
				logger.Info("http request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(started)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// healthHandler reports store reachability only.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.backend.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := s.backend.Ping(ctx); err != nil {
				s.logger.Warn("health check failed", zap.Error(err))
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// shutdown releases publishers and the store connection.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, closeFn := range s.closers {
		if err := closeFn(shutdownCtx); err != nil {
			s.logger.Warn("close collaborator failed", zap.Error(err))
		}
	}
	if s.backend.Close != nil {
		if err := s.backend.Close(shutdownCtx); err != nil {
			s.logger.Warn("close store failed", zap.Error(err))
		}
	}
}

// waitForShutdown blocks on ListenAndServe or an OS signal and drains in-flight requests.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, logger *zap.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped unexpectedly", zap.Error(err))
			return err
		}
	case sig := <-sigChan:
		logger.Info("signal received, shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Warn("http server shutdown failed", zap.Error(err))
		}
	}
	return nil
}
