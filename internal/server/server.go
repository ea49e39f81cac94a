package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/ChatterBot_Go/internal/activity"
	_ "github.com/osse101/ChatterBot_Go/internal/apidocs" // registers the OpenAPI document
	"github.com/osse101/ChatterBot_Go/internal/group"
	"github.com/osse101/ChatterBot_Go/internal/handler"
	"github.com/osse101/ChatterBot_Go/internal/logger"
	"github.com/osse101/ChatterBot_Go/internal/metrics"
	"github.com/osse101/ChatterBot_Go/internal/repository"
	"github.com/osse101/ChatterBot_Go/internal/stats"
	"github.com/osse101/ChatterBot_Go/internal/tracking"
)

// Deps are the services exposed over HTTP. Jobs is optional.
type Deps struct {
	Store        repository.Store
	Stats        stats.Service
	Activity     activity.Service
	Groups       group.Service
	Tracking     tracking.Service
	Jobs         handler.JobTrigger
	StoreTimeout time.Duration
}

// Server is the HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server listening on port
func NewServer(port int, apiKey, version string, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, version, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs outermost to innermost in the order added.
func NewRouter(apiKey, version string, deps Deps) http.Handler {
	detector := NewRateDetector(MaxRequestsPerWindow)

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware)
	r.Use(RateLimitMiddleware(detector))
	r.Use(AuthMiddleware(apiKey, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion(version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	groups := handler.NewGroupHandler(deps.Groups)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stats", func(r chi.Router) {
			r.Get("/user", handler.HandleGetUserStats(deps.Stats))
			r.Get("/leaderboard", handler.HandleGetLeaderboard(deps.Stats))
			r.Get("/activity", handler.HandleGetActivity(deps.Activity))
		})

		r.Post("/events", handler.HandleIngestEvent(deps.Tracking))

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groups.HandleList)
			r.Get("/user/{user_id}", groups.HandleGroupsOfUser)
			r.Get("/{name}", groups.HandleMembers)
			r.Delete("/{name}", groups.HandleDelete)
			r.Post("/{name}/join", groups.HandleJoin)
			r.Post("/{name}/leave", groups.HandleLeave)
		})

		r.Get("/messages/recent", handler.HandleRecentMessages(deps.Store, deps.StoreTimeout))

		if deps.Jobs != nil {
			r.Route("/admin/jobs", func(r chi.Router) {
				r.Get("/", handler.HandleListJobs(deps.Jobs))
				r.Post("/{name}/run", handler.HandleRunJob(deps.Jobs))
			})
		}
	})

	return r
}

// Start serves until Stop is called. It returns nil on a clean shutdown.
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
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
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		headers := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				headers[k] = []string{RedactedValue}
			} else {
				headers[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", headers)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
