package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/realmkeeper/internal/handler"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/metrics"
	"github.com/osse101/realmkeeper/internal/repository"
)

// Config holds listener and security settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Deps are the services behind the routes
type Deps struct {
	// Ready is pinged by /readyz, keyed by dependency name
	Ready map[string]handler.Pinger
	// Hub upgrades game client connections on /ws
	Hub   http.Handler
	World handler.WorldService
	PVP   repository.PVPStats
}

type Server struct {
	httpServer *http.Server
	detector   *SuspiciousActivityDetector
	started    atomic.Bool
}

// NewServer builds the router. /ws is mounted outside the response
// wrapping middleware since the upgrade hijacks the connection.
func NewServer(config Config, deps Deps) *Server {
	detector := NewSuspiciousActivityDetector(ActivityWindow)

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(config.APIKey, config.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(config.TrustedProxies, detector))

	r.Handle("/ws", deps.Hub)

	r.Group(func(r chi.Router) {
		r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
		r.Use(metrics.Middleware)
		r.Use(loggingMiddleware)

		r.Get("/healthz", handler.HandleHealthz())
		r.Get("/readyz", handler.HandleReadyz(deps.Ready))
		r.Get("/version", handler.HandleVersion())
		r.Handle("/metrics", promhttp.Handler())

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/status", handler.HandleStatus(deps.World))
			r.Get("/guilds", handler.HandleGuilds(deps.World))
			r.Get("/players/{name}", handler.HandlePlayer(deps.World))
			r.Get("/pvp/leaderboard", handler.HandlePVPLeaderboard(deps.PVP))

			r.Route("/admin", func(r chi.Router) {
				r.Post("/experience", handler.HandleGrantExperience(deps.World))
				r.Post("/kill", handler.HandleReportKill(deps.World))
				r.Post("/pvp", handler.HandleReportPVPKill(deps.World))
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		detector: detector,
	}
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// isQuietPath reports probe and scrape paths that are not access-logged
func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// redactHeaders copies h with credential values replaced
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if slices.ContainsFunc(SensitiveHeaders, func(s string) bool { return strings.EqualFold(k, s) }) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start starts the server
func (s *Server) Start() error {
	if s.started.CompareAndSwap(false, true) {
		s.detector.Start()
	}
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully. Hijacked websocket connections are not
// tracked by Shutdown and must be closed by the hub.
func (s *Server) Stop(ctx context.Context) error {
	if s.started.CompareAndSwap(true, false) {
		defer s.detector.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
