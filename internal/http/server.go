// README: API gateway; wires middleware and registers HTTP routes on gin.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderplan/internal/http/middleware"
	"wanderplan/internal/infra"
	"wanderplan/internal/modules/aiusage"
	"wanderplan/internal/modules/trip"
	"wanderplan/internal/service"
)

type ServerDeps struct {
	Planner  *service.TripPlanner
	Trips    *trip.Service
	Usage    *aiusage.Service
	Verifier infra.TokenVerifier
	Logger   *zap.Logger
	// AllowedOrigins enables CORS for browser clients when non-empty.
	AllowedOrigins []string
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{deps: deps}
}

// Routes builds the gin engine with middleware and every route registered.
func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(s.deps.Logger), middleware.Recovery(s.deps.Logger))
	if len(s.deps.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	registerRoutes(r, s.deps)
	return r
}

// NewHTTPServer wraps handler with the timeouts used in production. Plan
// generation can take over a minute, so the write timeout is generous.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
