// Package server initializes and runs the registry server: it connects the
// document store, wires the services, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/signalregistry/api/internal/logging"
	"github.com/signalregistry/api/internal/server/auth"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/httpapi"
	"github.com/signalregistry/api/internal/server/registry"
	"github.com/signalregistry/api/internal/server/repositories/repomanager"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	repos           repomanager.RepositoryManager
	authService     *auth.Service
	registryService *registry.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := repomanager.NewMongoRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	as := auth.NewService(repos.Users(), repos.Sessions(), cfg)
	rs := registry.NewService(repos.Signals())

	return &App{
		config:          cfg,
		logger:          logger,
		repos:           repos,
		authService:     as,
		registryService: rs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	gin.SetMode(gin.ReleaseMode)
	s := httpapi.NewServer(app.config, app.logger, app.repos, app.authService, app.registryService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(context.Background()); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
