package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "plant_monitor/docs"
	"plant_monitor/internal/config"
	"plant_monitor/internal/handlers"
	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/repository"
	"plant_monitor/internal/repository/db"
	"plant_monitor/internal/server"
	"plant_monitor/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Plant Monitor API
// @version      1.0
// @description  Read-only API over industrial sites, departments and machines: rollups, filtered machine lists, telemetry charts and alerts.
// @BasePath     /
func main() {
	// load config.yml + PLANT_* env
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	// load and validate the fixture
	src, closeSrc, err := openSource(cfg, log)
	if err != nil {
		log.Fatalw("failed to open fixture source", "source", cfg.Fixture.Source, "err", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fixture.Timeout)
	repos, err := repository.NewRepository(ctx, src)
	cancel()
	closeSrc()
	if err != nil {
		log.Fatalw("failed to load fixture", "source", cfg.Fixture.Source, "err", err)
	}
	stats := repos.Fixtures.Stats()
	log.Infow("fixture loaded",
		"source", cfg.Fixture.Source,
		"sites", stats.Sites,
		"departments", stats.Departments,
		"machines", stats.Machines,
		"alerts", stats.Alerts,
	)

	// wire dependencies
	m := metrics.New()
	m.SetFixture(stats)
	services := service.NewService(repos, service.Options{Locale: cfg.Locale()})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		Metrics:         m,
		MaxMessageBytes: cfg.WS.MaxMessageBytes,
	})

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openSource builds the configured fixture source. The returned func releases
// whatever the source holds once loading is done.
func openSource(cfg *config.Config, log *logger.Logger) (repository.FixtureSource, func(), error) {
	noop := func() {}
	switch cfg.Fixture.Source {
	case config.SourceHTTP:
		return repository.NewHTTPSource(cfg.Fixture.URL, cfg.Fixture.Timeout), noop, nil
	case config.SourceSQLite:
		conn, err := openDB(cfg, log)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}
		return repository.NewSQLiteSource(conn), closeDB, nil
	default:
		return repository.NewFileSource(cfg.Fixture.Path), noop, nil
	}
}

// openDB initializes the SQLite database and seeds it from db.seed_from when empty.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if cfg.DB.SeedFrom == "" {
		return conn, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fixture.Timeout)
	defer cancel()
	sites, err := repository.NewFileSource(cfg.DB.SeedFrom).Load(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	seeded, err := repository.SeedIfEmpty(ctx, conn, sites)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if seeded {
		log.Infow("sqlite seeded", "path", cfg.DB.Path, "from", cfg.DB.SeedFrom, "sites", len(sites))
	}
	return conn, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests and websocket sessions to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
