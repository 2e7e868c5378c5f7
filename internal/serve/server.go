package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/marcus/splitview/internal/store"
)

// ServeConfig holds the configuration for the HTTP server.
type ServeConfig struct {
	Port         int
	Addr         string
	Token        string
	CORSOrigin   string
	PollInterval time.Duration
}

// Server is the splitview serve HTTP server.
type Server struct {
	store   *store.Store
	baseDir string
	config  ServeConfig
	mux     *http.ServeMux
	sseHub  *SSEHub
	http    *http.Server
}

// NewServer creates a new Server, registers all routes, and sets up the
// middleware chain.
func NewServer(st *store.Store, baseDir string, config ServeConfig) *Server {
	s := &Server{
		store:   st,
		baseDir: baseDir,
		config:  config,
		mux:     http.NewServeMux(),
		sseHub:  NewSSEHub(st, config.PollInterval),
	}

	s.registerRoutes()
	return s
}

// Handler returns the mux wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)

	// Wrap order: outermost first when applied, so we apply innermost first.
	// Final order (outermost to innermost):
	//   recovery -> logging -> CORS -> auth -> handler
	h = s.authMiddleware(h)
	h = s.corsMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.recoveryMiddleware(h)

	return h
}

// StartHub starts the SSE hub's background poller.
func (s *Server) StartHub(ctx context.Context) {
	s.sseHub.Start(ctx)
}

// StopHub stops the SSE hub and disconnects all clients.
func (s *Server) StopHub() {
	s.sseHub.Stop()
}

// ListenAndServe starts the HTTP server on the configured address and port,
// and handles graceful shutdown when the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Addr, s.config.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.http = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server. If the server has not been
// started, this is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// registerRoutes registers the demo page and all API routes.
func (s *Server) registerRoutes() {
	// Health (read)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Demo page hosting the live split pane
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /layouts/{id}", s.handlePage)

	// Layouts CRUD
	s.mux.HandleFunc("GET /v1/layouts", s.handleListLayouts)
	s.mux.HandleFunc("GET /v1/layouts/{id}", s.handleGetLayout)
	s.mux.HandleFunc("PUT /v1/layouts/{id}", s.handlePutLayout)
	s.mux.HandleFunc("DELETE /v1/layouts/{id}", s.handleDeleteLayout)

	// Resize events from the browser drag bridge
	s.mux.HandleFunc("POST /v1/layouts/{id}/resize", s.handleResize)

	// SSE events
	s.mux.HandleFunc("GET /v1/events", s.handleEvents)
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

// Flush lets the SSE handler stream through the recorder.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// recoveryMiddleware catches panics, logs the stack trace, and returns a 500
// error envelope.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := debug.Stack()
				slog.Error("panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)
				WriteError(w, ErrInternal, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request with method, path, status code, and
// duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sr, r)
		slog.Info("req",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.code,
			"dur", time.Since(start).String(),
		)
	})
}

// corsMiddleware handles CORS preflight and sets response headers when
// CORSOrigin is configured. If no CORS origin is configured, the middleware
// is a no-op pass-through.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.CORSOrigin == "" {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if s.config.CORSOrigin != "*" && s.config.CORSOrigin != origin {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates the Bearer token when the server is configured
// with a token. GET /health and the demo page are always exempt.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No token configured - pass through
		if s.config.Token == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Skip auth for health check and the demo page
		if r.Method == http.MethodGet &&
			(r.URL.Path == "/health" || r.URL.Path == "/" || strings.HasPrefix(r.URL.Path, "/layouts/")) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, ErrUnauthorized, "missing authorization header", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			WriteError(w, ErrUnauthorized, "invalid authorization format", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != s.config.Token {
			WriteError(w, ErrUnauthorized, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
