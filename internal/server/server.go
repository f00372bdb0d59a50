// Package server provides the HTTP API for the WBL program planner.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/rendering"
	"github.com/jonathan/wbl-planner/internal/server/middleware"
	"github.com/jonathan/wbl-planner/internal/server/ratelimit"
	"github.com/jonathan/wbl-planner/internal/session"
	"github.com/jonathan/wbl-planner/internal/suggest"
)

// maxBodyBytes caps request bodies; plan documents are the largest.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	catalog     *catalog.Catalog
	sessions    *session.Manager
	gateway     *suggest.Gateway
	pdf         rendering.PDFPrinter
	rateLimiter *ratelimit.Limiter
	logger      *observability.Logger
	validate    *validator.Validate
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port      int
	Catalog   *catalog.Catalog
	Sessions  *session.Manager
	Gateway   *suggest.Gateway     // nil disables suggestion routes
	PDF       rendering.PDFPrinter // nil disables summary.pdf
	RateLimit *ratelimit.Config    // nil loads RATE_LIMIT_* from the environment
	Logger    *observability.Logger
	Now       func() time.Time
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("server: catalog is required")
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewManager(cfg.Catalog)
	}
	if cfg.Gateway == nil {
		cfg.Gateway = suggest.NewGateway(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.Nop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		catalog:     cfg.Catalog,
		sessions:    cfg.Sessions,
		gateway:     cfg.Gateway,
		pdf:         cfg.PDF,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		now:         cfg.Now,
	}

	mux := http.NewServeMux()
	s.routes(mux)
	s.handler = middleware.RequestID(s.withRateLimit(s.withLogging(s.withCORS(mux))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // fill and PDF requests can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Reference data
	mux.HandleFunc("GET /catalog/skills", s.handleCatalogSkills)
	mux.HandleFunc("GET /catalog/steps", s.handleCatalogSteps)
	mux.HandleFunc("GET /catalog/vocabulary", s.handleCatalogVocabulary)
	mux.HandleFunc("GET /resources", s.handleResources)

	// Stateless suggestion proxy
	mux.HandleFunc("POST /suggestions", s.handleSuggestions)

	// Sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("POST /sessions/import", s.handleImportSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/export", s.handleExportSession)
	mux.HandleFunc("PATCH /sessions/{id}/organization", s.handleUpdateOrganization)
	mux.HandleFunc("GET /sessions/{id}/progress", s.handleProgress)

	// Step flow
	mux.HandleFunc("PUT /sessions/{id}/step", s.handleGoToStep)
	mux.HandleFunc("POST /sessions/{id}/step/next", s.handleNextStep)
	mux.HandleFunc("POST /sessions/{id}/step/prev", s.handlePrevStep)
	mux.HandleFunc("GET /sessions/{id}/steps/{step}", s.handleStepView)

	// Skill plan
	mux.HandleFunc("POST /sessions/{id}/skills/{skill_id}/toggle", s.handleToggleSkill)
	mux.HandleFunc("POST /sessions/{id}/skills/{skill_id}/tools/toggle", s.handleToggleTool)
	mux.HandleFunc("POST /sessions/{id}/skills/{skill_id}/strategies/toggle", s.handleToggleStrategy)
	mux.HandleFunc("POST /sessions/{id}/skills/{skill_id}/monitoring/toggle", s.handleToggleMonitoring)
	mux.HandleFunc("PUT /sessions/{id}/skills/{skill_id}/task-mapping", s.handleSaveTaskMapping)
	mux.HandleFunc("PUT /sessions/{id}/skills/{skill_id}/notes", s.handleSetNotes)
	mux.HandleFunc("POST /sessions/{id}/skills/{skill_id}/tasks", s.handleAddTask)
	mux.HandleFunc("PUT /sessions/{id}/skills/{skill_id}/tasks/{task_id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /sessions/{id}/skills/{skill_id}/tasks/{task_id}", s.handleRemoveTask)
	mux.HandleFunc("GET /sessions/{id}/alignment", s.handleAlignment)

	// Session-bound suggestions
	mux.HandleFunc("POST /sessions/{id}/skills/{skill_id}/tasks/{task_id}/suggest", s.handleSuggestTask)
	mux.HandleFunc("POST /sessions/{id}/project-idea/suggest", s.handleSuggestProjectIdea)
	mux.HandleFunc("POST /sessions/{id}/tasks/fill", s.handleFillTasks)
	mux.HandleFunc("POST /sessions/{id}/tasks/fill/stream", s.handleFillTasksStream)

	// Summary
	mux.HandleFunc("GET /sessions/{id}/summary", s.handleSummary)
	mux.HandleFunc("GET /sessions/{id}/summary.html", s.handleSummaryHTML)
	mux.HandleFunc("GET /sessions/{id}/summary.md", s.handleSummaryMarkdown)
	mux.HandleFunc("GET /sessions/{id}/summary.pdf", s.handleSummaryPDF)
}

// Handler is the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.sessions.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "content-type, x-request-id")
		w.Header().Set("Access-Control-Expose-Headers", "x-request-id, x-ratelimit-limit, x-ratelimit-remaining, x-ratelimit-reset, retry-after, content-disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		reqID := middleware.GetRequestID(r.Context())
		s.logger.Debug("request started", "request_id", reqID, "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"sessions":    s.sessions.Len(),
		"suggestions": s.gateway.Configured(),
		"pdf":         s.pdf != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP address) from the request.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		"method", r.Method,
		"path", r.URL.Path,
		"client", s.extractClientID(r),
		"limit", info.Limit,
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
