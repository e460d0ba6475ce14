package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/hearthsocial/hearth/internal/security/audit"
	"github.com/hearthsocial/hearth/internal/security/guard"
	httpapi "github.com/hearthsocial/hearth/internal/security/http"
	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/internal/security/store/drivers/sqlite"
	"github.com/hearthsocial/hearth/pkg/cryptox"
	"github.com/hearthsocial/hearth/pkg/jwtx"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// BuildVersion is stamped by the release pipeline via -ldflags -X; the
// default identifies local builds.
var BuildVersion = "v0.1.0"

// Application owns every long-lived dependency of the security service and
// the order they start and stop in.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	keys      *jwtx.KeySet
	verifier  jwtx.Verifier
	refresher *keyRefresher // Optional: only in remote JWKS mode

	// Services
	auditRecorder       *audit.Recorder
	blockService        *service.BlockService
	visibilityService   *service.VisibilityService
	followService       *service.FollowService
	twoFactorService    *service.TwoFactorService
	housekeepingService *service.HousekeepingService
	guards              *guard.Chains

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New builds the full dependency graph from cfg. Nothing listens or runs
// until Run is called.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "security-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// cryptox loads key material lazily; paths must be in place before the
	// first hash or encrypt call, which happens on the first request
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if app.cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(app.cfg.MasterKeyPath)
		app.logger.Info("master key path configured", "path", app.cfg.MasterKeyPath)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Initialize verification keys (remote JWKS mirror or local dev keys)
	ctx := context.Background()
	keys, verifier, refresher, err := InitVerificationKeys(ctx, app.cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize verification keys: %w", err)
	}
	app.keys = keys
	app.verifier = verifier
	app.refresher = refresher

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves until the process receives SIGINT or SIGTERM, or the listener
// fails, then drains and returns.
func (app *Application) Run() error {
	app.housekeepingService.Start()
	if app.refresher != nil {
		app.refresher.Start()
	}

	app.logger.Info("security service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// SIGTERM is what the orchestrator sends; Interrupt covers local runs
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, waits out the grace period, then stops
// the background workers. The store closes last; handlers and workers both
// use it.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down security service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.refresher != nil {
		app.refresher.Stop()
	}
	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("security service stopped")
	return nil
}

// initDatabase opens the SQLite store and brings the schema current.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices wires the domain services onto the shared store and audit
// recorder.
func (app *Application) initServices() {
	app.auditRecorder = audit.NewRecorder(app.db)

	app.blockService = &service.BlockService{
		Store: app.db,
		Audit: app.auditRecorder,
	}
	app.visibilityService = &service.VisibilityService{
		Store: app.db,
		Audit: app.auditRecorder,
	}
	app.followService = &service.FollowService{
		Store: app.db,
		Audit: app.auditRecorder,
	}
	app.twoFactorService = &service.TwoFactorService{
		Store:  app.db,
		Audit:  app.auditRecorder,
		Issuer: app.cfg.TOTPIssuer,
	}

	// Guard chains compose the services into named access pipelines
	app.guards = &guard.Chains{
		Blocks:     app.blockService,
		Visibility: app.visibilityService,
		TwoFactor:  app.twoFactorService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
}

// initHTTP assembles the router and the HTTP server around it.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.BlockService = app.blockService
	router.VisibilityService = app.visibilityService
	router.FollowService = app.followService
	router.TwoFactorService = app.twoFactorService
	router.Guards = app.guards
	router.ApplyRoutes()

	app.router = router

	// Browser clients hit this service directly, so CORS is handled here
	// rather than at a gateway
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: app.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 3 * time.Second,
	}
}
