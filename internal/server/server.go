// Package server provides the HTTP REST API for studygram.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/studygram/internal/analysis"
	"github.com/jonathan/studygram/internal/config"
	"github.com/jonathan/studygram/internal/observability"
	"github.com/jonathan/studygram/internal/server/middleware"
	"github.com/jonathan/studygram/internal/server/ratelimit"
	"github.com/jonathan/studygram/internal/study"
)

// Server represents the HTTP server
type Server struct {
	responder

	httpServer  *http.Server
	handler     http.Handler
	service     *study.Service
	analyzer    *analysis.Analyzer
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	metrics     *observability.Metrics

	maxUploadBytes int64
	allowedOrigin  string
}

// Options holds the dependencies of a Server
type Options struct {
	Config    config.Config
	Repo      study.Repository
	Analyzer  *analysis.Analyzer
	JWT       *config.JWTConfig
	Passwords *config.PasswordConfig
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
	Metrics   *observability.Metrics
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Repo == nil {
		return nil, errors.New("server requires a repository")
	}
	if opts.JWT == nil {
		return nil, errors.New("server requires a JWT config")
	}
	if opts.Passwords == nil {
		passwords, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		opts.Passwords = passwords
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetrics()
	}
	if opts.RateLimit == nil {
		opts.RateLimit = ratelimit.LoadConfig()
	}

	cfg := opts.Config
	if opts.Analyzer == nil {
		var analyzerOpts []analysis.Option
		if cfg.Seed != nil {
			analyzerOpts = append(analyzerOpts, analysis.WithSeed(*cfg.Seed))
		}
		opts.Analyzer = analysis.NewAnalyzer(cfg.Analysis, analyzerOpts...)
	}

	s := &Server{
		responder:      responder{logger: opts.Logger},
		service:        study.NewService(opts.Repo, opts.Logger),
		analyzer:       opts.Analyzer,
		rateLimiter:    ratelimit.NewLimiter(opts.RateLimit),
		jwtService:     NewJWTService(opts.JWT),
		metrics:        opts.Metrics,
		maxUploadBytes: cfg.MaxUploadBytes,
		allowedOrigin:  cfg.AllowedOrigin,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = config.DefaultMaxUploadBytes
	}
	if s.allowedOrigin == "" {
		s.allowedOrigin = "*"
	}
	s.userService = NewUserService(opts.Repo, opts.Passwords)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, opts.Logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Everything below requires a bearer token
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator(), s.unauthorized)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth(h))
	}

	protected("GET /me", s.handleMe)
	protected("POST /analyze", s.handleAnalyze)

	protected("POST /documents", s.handleUploadDocument)
	protected("GET /documents", s.handleListDocuments)
	protected("GET /documents/{id}", s.handleGetDocument)
	protected("DELETE /documents/{id}", s.handleDeleteDocument)
	protected("GET /documents/{id}/summary.txt", s.handleDownloadSummary)

	protected("GET /subjects", s.handleListSubjects)
	protected("POST /subjects", s.handleCreateSubject)
	protected("DELETE /subjects/{id}", s.handleDeleteSubject)
	protected("POST /subjects/{id}/chapters", s.handleCreateChapter)
	protected("DELETE /subjects/{id}/chapters/{chapter_id}", s.handleDeleteChapter)
	protected("POST /chapters/{id}/topics", s.handleCreateTopic)
	protected("PUT /topics/{id}", s.handleUpdateTopic)
	protected("DELETE /topics/{id}", s.handleDeleteTopic)

	protected("GET /journal", s.handleListJournal)
	protected("POST /journal", s.handleCreateJournalEntry)
	protected("DELETE /journal/{id}", s.handleDeleteJournalEntry)
	protected("GET /dashboard", s.handleDashboard)
	protected("GET /activity", s.handleActivity)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // large PDFs take a while to analyze
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request and records it in the metrics
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// withRateLimit rejects clients over their token budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the remote IP as the client identity
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate limit exceeded",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if secs := int(info.RetryAfter.Seconds()); secs > 0 {
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	s.logger.Warn("rate limit exceeded", zap.Int("limit", info.Limit))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

func (s *Server) unauthorized(w http.ResponseWriter, _ *http.Request, reason string) {
	s.errorResponse(w, http.StatusUnauthorized, "unauthorized: "+reason)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// responder writes JSON bodies and maps errors onto status codes
type responder struct {
	logger *zap.Logger
}

// jsonResponse writes a JSON response
func (rs responder) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (rs responder) errorResponse(w http.ResponseWriter, status int, message string) {
	rs.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it; server errors are logged and masked
func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		rs.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	rs.errorResponse(w, status, publicMessage(err, status))
}
