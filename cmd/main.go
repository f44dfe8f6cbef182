package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "mindful_companion/docs"
	"mindful_companion/internal/breathing"
	"mindful_companion/internal/config"
	"mindful_companion/internal/handlers"
	"mindful_companion/internal/logger"
	"mindful_companion/internal/repository"
	"mindful_companion/internal/repository/db"
	"mindful_companion/internal/server"
	"mindful_companion/internal/service"

	"github.com/jessevdk/go-flags"
)

const shutdownTimeout = 10 * time.Second

// options are the command line flags; set values override the config file.
type options struct {
	Config   string `short:"c" long:"config" description:"path to config YAML (default configs/config.yml)"`
	Port     string `short:"p" long:"port" description:"HTTP port"`
	LogLevel string `long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

// @title                       Mindful Companion API
// @version                     1.0
// @description                 Guided breathing, mood check-ins, journaling and activity history.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		logger.Get(logger.ErrorLevel).Fatalw("error reading config", "err", err)
	}
	applyOverrides(cfg, opts)

	// init logger
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := service.ValidateSigningKey(cfg.Auth.SigningKey); err != nil {
		log.Fatalw("invalid auth.signing_key", "err", err)
	}

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := breathing.NewManager(cfg.Breathing.IdleTTL, breathing.WithTick(cfg.Breathing.Tick))
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sessions.Run(ctx, cfg.Breathing.SweepInterval)
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services, err := service.NewService(repos, service.Deps{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Breathing:  sessions,
	})
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server started", "port", cfg.Port, "db", cfg.DB.Path)

	// graceful shutdown
	waitForShutdown(cancel, sweeperDone, srv, log)
}

func parseOptions(args []string) (*options, error) {
	opts := &options{}
	parser := flags.NewParser(opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyOverrides(cfg *config.Config, opts *options) {
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, sweeperDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop accepting requests and let in-flight ones complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	// stop the sweeper; it closes every breathing session, which ends open streams
	cancel()
	<-sweeperDone
}
