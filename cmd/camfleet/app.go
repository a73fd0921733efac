package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/handler"
	"github.com/deppfellow/camfleet/internal/logger"
	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/deppfellow/camfleet/internal/router"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/deppfellow/camfleet/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// app is the fully wired application shared by the commands.
type app struct {
	server   *server.Server
	services *service.Services
	router   *echo.Echo
}

// loadConfig reads the configuration and builds the logger and the New
// Relic service.
func loadConfig() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

// newApp connects the dependencies and builds the router. Migrations run
// first outside the local environment.
func newApp(ctx context.Context) (*app, error) {
	cfg, log, loggerService, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Primary.Env != "local" {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return nil, err
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return nil, err
	}

	repos := repository.NewRepositories(log)
	services, err := service.NewService(srv, repos)
	if err != nil {
		return nil, fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv, services.Sessions)

	return &app{
		server:   srv,
		services: services,
		router:   router.NewRouter(handlers, middlewares),
	}, nil
}

// close releases the server resources and flushes New Relic.
func (a *app) close(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.server.LoggerService.Shutdown()
	return err
}
