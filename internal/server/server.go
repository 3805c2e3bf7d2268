package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/GridClash_Go/internal/encounter"
	"github.com/osse101/GridClash_Go/internal/handler"
	"github.com/osse101/GridClash_Go/internal/item"
	"github.com/osse101/GridClash_Go/internal/logger"
	"github.com/osse101/GridClash_Go/internal/metrics"
	"github.com/osse101/GridClash_Go/internal/naming"
	"github.com/osse101/GridClash_Go/internal/stats"
)

type Server struct {
	httpServer       *http.Server
	encounterService encounter.Service
	statsService     stats.Service
	itemRegistry     *item.Registry
	namingResolver   naming.Resolver
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, encounterService encounter.Service, statsService stats.Service, itemRegistry *item.Registry, namingResolver naming.Resolver) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(itemRegistry))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", handler.HandleListItems(itemRegistry, namingResolver))

		encounterHandler := handler.NewEncounterHandler(encounterService)
		r.Route("/encounters", func(r chi.Router) {
			r.Post("/", encounterHandler.HandleCreate)

			r.Route("/{encounterID}", func(r chi.Router) {
				r.Get("/", encounterHandler.HandleGet)
				r.Delete("/", encounterHandler.HandleAbandon)

				r.Post("/attack", encounterHandler.HandleAttack)
				r.Post("/pickup", encounterHandler.HandlePickup)
				r.Post("/move", encounterHandler.HandleMove)
				r.Post("/interact", encounterHandler.HandleInteract)
				r.Post("/next-turn", encounterHandler.HandleNextTurn)
				r.Post("/sort-initiative", encounterHandler.HandleSortInitiative)
				r.Get("/turn-order", encounterHandler.HandleTurnOrder)
				r.Get("/stats", handler.HandleGetEncounterStats(statsService))
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		encounterService: encounterService,
		statsService:     statsService,
		itemRegistry:     itemRegistry,
		namingResolver:   namingResolver,
	}
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
		statusCode:     http.StatusOK, // default status
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

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
