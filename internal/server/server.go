package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/all-in-admin/internal/auth"
	"github.com/hongminglow/all-in-admin/internal/config"
	"github.com/hongminglow/all-in-admin/internal/http/handlers"
	"github.com/hongminglow/all-in-admin/internal/logging"
	"github.com/hongminglow/all-in-admin/internal/middleware"
	"github.com/hongminglow/all-in-admin/internal/router"
	"github.com/hongminglow/all-in-admin/internal/services"
)

// Deps are the collaborators the console server is assembled from.
type Deps struct {
	Tokens   *auth.TokenManager
	Guard    *router.Guard
	Registry *services.Registry
	Gatherer prometheus.Gatherer
	Logger   logrus.FieldLogger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.APITimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler builds the full middleware chain and route table.
func Handler(cfg config.Config, deps Deps) http.Handler {
	mux := http.NewServeMux()

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewNavigationHandler(deps.Guard).Register(mux)
	handlers.NewResourceHandler(deps.Registry).Register(mux)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	pages := handlers.NewPageHandler(cfg.StaticDir)
	if assets := pages.Assets(); assets != nil {
		mux.Handle("GET /assets/", assets)
	}
	mux.Handle("GET /", middleware.Gate(deps.Guard, pages))

	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}

	var h http.Handler = mux
	h = middleware.Sessions(deps.Tokens, h)
	h = middleware.CORS(cfg.CORSOrigins, h)
	h = middleware.Logging(log, h)
	return middleware.RequestID(h)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
