package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/metrics"
	"github.com/nijaru/yt-summary/middleware"
	"github.com/nijaru/yt-summary/services/orchestrator"
	"github.com/nijaru/yt-summary/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	service   orchestrator.Service
	summary   *SummaryHandler
	pages     *PageHandler
	config    *config.Config
	logger    *logrus.Logger
	registry  *prometheus.Registry
	recorder  *metrics.Recorder
	server    *http.Server
	startTime time.Time
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided services and options
func NewServer(cfg *config.Config, opts ...ServerOption) (*Server, error) {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.recorder == nil {
		s.recorder = metrics.NewRecorder(s.registry)
	}

	pages, err := NewPageHandler(s.logger)
	if err != nil {
		return nil, err
	}
	s.pages = pages
	if s.service != nil {
		validator := validation.NewValidator(cfg.MaxTextLength)
		s.summary = NewSummaryHandler(s.service, validator, pages)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// WithServices sets up the handlers with the provided services
func WithServices(svc orchestrator.Service) ServerOption {
	return func(s *Server) {
		s.service = svc
	}
}

// WithLogger sets a custom logger for the server
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry serves reg on /metrics and records HTTP metrics through rec.
// rec may be nil, in which case a recorder is registered on reg.
func WithRegistry(reg *prometheus.Registry, rec *metrics.Recorder) ServerOption {
	return func(s *Server) {
		s.registry = reg
		s.recorder = rec
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.pages.HandleIndex)
	if s.summary != nil {
		mux.HandleFunc("POST /summarize", s.summary.HandleSummarize)
		mux.HandleFunc("POST /transcript", s.summary.HandleTranscript)
	}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s.middleware(mux)
}

// middleware sets up the middleware chain
func (s *Server) middleware(handler http.Handler) http.Handler {
	return middleware.Chain(handler,
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.CORS(s.config.CORS),
		middleware.RateLimit(s.config.RateLimit),
		middleware.Metrics(s.recorder),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   s.config.Version,
		"uptime":    time.Since(s.startTime).String(),
	}

	if s.config.Debug {
		status["debug"] = true
		status["goroutines"] = runtime.NumGoroutine()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status["memory"] = map[string]interface{}{
			"allocated": m.Alloc,
			"total":     m.TotalAlloc,
			"system":    m.Sys,
			"gc_cycles": m.NumGC,
		}
	}

	respondJSON(w, r, http.StatusOK, status)
}
