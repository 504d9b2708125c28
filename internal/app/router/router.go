// Package router wires handlers and middleware into the gin engine.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "job_backend/internal/feature/auth/transport/handler"
	jobshandler "job_backend/internal/feature/jobs/transport/handler"
	"job_backend/internal/platform/http/handler"
	jwtmw "job_backend/internal/platform/jwt"
	"job_backend/internal/platform/logging"
)

// Options configures cross-cutting middleware.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Handlers groups the endpoint handlers.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Jobs      *jobshandler.JobsHandler
	Readiness gin.HandlerFunc
}

// NewRouter builds the engine. auth guards the protected routes.
func NewRouter(opts Options, h Handlers, auth jwtmw.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(opts.Logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(RequestTimeout(opts.RequestTimeout))

	// no auth
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.Readiness != nil {
		r.GET("/health", h.Readiness)
	}
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)

	// bearer token required
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(auth))
	{
		protected.GET("/me", h.Auth.Me)
		protected.POST("/logout", h.Auth.Logout)
		protected.GET("/jobs", h.Jobs.ListJobs)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logging.HeaderRequestID},
		ExposeHeaders: []string{logging.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
