// Package httpapi is the gin transport of the registry: route wiring,
// session and CORS middleware, and the error mapping existing clients
// depend on.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalregistry/api/internal/logging"
	"github.com/signalregistry/api/internal/server/auth"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/registry"
	"github.com/signalregistry/api/internal/server/repositories/repomanager"
)

const shutdownTimeout = 5 * time.Second

// Server owns the gin engine and the HTTP listener.
type Server struct {
	cfg    *config.Config
	log    logging.Logger
	engine *gin.Engine
}

// NewServer assembles the middleware chain and routes. The order matters:
// logging first so every outcome is recorded, then CORS, the store gate,
// and session resolution before any handler runs.
func NewServer(cfg *config.Config, log logging.Logger, repos repomanager.RepositoryManager,
	authSvc *auth.Service, regSvc *registry.Service) *Server {

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))
	engine.Use(MetricsMiddleware())
	engine.Use(CORS(cfg))
	engine.Use(StoreGate(repos))
	engine.Use(SessionMiddleware(authSvc, cfg))

	h := NewHandlers(cfg, authSvc, regSvc, repos)

	engine.GET("/", h.status)
	engine.GET("/health", h.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/login", h.login)
	engine.GET("/logout", h.logout)
	engine.GET("/user", h.user)
	engine.GET("/collections", h.collections)

	engine.GET("/registry", h.registryItems)
	engine.POST("/registry", h.createItem)
	engine.GET("/registry/:item", h.registryItem)
	engine.PUT("/registry/:item/data", h.appendTrigger)

	// Static segments win over these wildcards, so the named routes above
	// keep their behavior.
	engine.GET("/:coll", h.summaries)
	engine.GET("/:coll/:name", h.getItem)
	engine.PUT("/:coll/:name", h.upsertList)
	engine.DELETE("/:coll/:name", h.deleteItem)

	return &Server{cfg: cfg, log: log, engine: engine}
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.EndpointAddr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info(ctx, "http server stopped")
	return nil
}
