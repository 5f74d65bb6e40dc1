package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/gemterm/internal/terminal/analysis"
	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	httpapi "github.com/aussiebroadwan/gemterm/internal/terminal/http"
	"github.com/aussiebroadwan/gemterm/internal/terminal/market"
	"github.com/aussiebroadwan/gemterm/internal/terminal/refresh"
	"github.com/aussiebroadwan/gemterm/internal/terminal/service"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/internal/terminal/store/drivers/sqlite"
	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
	"github.com/aussiebroadwan/gemterm/pkg/cryptox"
	"github.com/aussiebroadwan/gemterm/pkg/jwtx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the terminal service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	registry   *prometheus.Registry
	metrics    *telemetry.Metrics

	// Services
	entitlementService  *service.EntitlementService
	sessionService      *service.SessionService
	watchlistService    *service.WatchlistService
	housekeepingService *service.HousekeepingService

	// Providers
	feed               *market.Feed
	analyzer           analysis.Provider
	analysisConfigured bool
	terminals          *refresh.Registry

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gemterm",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}
	slog.SetDefault(app.logger)

	app.initMetrics()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	keyManager, err := InitSessionKeys(ctx, app.cfg, app.db, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initProviders(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initTerminals()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("terminal service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down terminal service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop pollers before the store goes away; in-flight provider calls are
	// abandoned.
	app.terminals.Close()
	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("terminal service stopped")
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = telemetry.New(app.registry)
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
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

// initServices initializes the entitlement, session and watchlist services
func (app *Application) initServices(ctx context.Context) error {
	var masterHash string
	if app.cfg.AdminMasterCode != "" {
		h, err := cryptox.HashSecret(app.cfg.AdminMasterCode)
		if err != nil {
			return fmt.Errorf("failed to hash admin master code: %w", err)
		}
		masterHash = h
	} else {
		app.logger.Warn("TERMINAL_ADMIN_MASTER_CODE not set, master code login disabled")
	}

	policy := domain.SessionExpiryPolicy(app.cfg.SessionExpiryPolicy)
	switch policy {
	case domain.ExpiryFixed, domain.ExpiryCapToCode:
	default:
		return fmt.Errorf("unknown session expiry policy %q", app.cfg.SessionExpiryPolicy)
	}

	app.entitlementService = &service.EntitlementService{
		Store:          app.db,
		AdminIdentity:  app.cfg.AdminIdentity,
		MasterCodeHash: masterHash,
		SessionTTL:     app.cfg.SessionTTL,
		ExpiryPolicy:   policy,
		Metrics:        app.metrics,
	}
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Keys:   app.keyManager,
		Issuer: app.cfg.Issuer,
	}
	app.watchlistService = &service.WatchlistService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	if len(app.cfg.SeedCodes) > 0 {
		n, err := app.entitlementService.SeedLedger(slogx.WithContext(ctx, app.logger), app.cfg.SeedCodes)
		if err != nil {
			return fmt.Errorf("failed to seed invite codes: %w", err)
		}
		if n > 0 {
			app.logger.Info("seeded invite ledger", "codes", n)
		}
	}
	return nil
}

// initProviders wires the market feeds and the analysis provider
func (app *Application) initProviders(ctx context.Context) error {
	dex := market.NewDexScreener(app.cfg.DexScreenerBaseURL, app.cfg.DexScreenerRPS, app.metrics)

	whales := market.ChainWhales{Default: market.NewSimulatedWhaleSource(nil)}
	if app.cfg.SolanaRPCEndpoint != "" && app.cfg.WhaleWalletsFile != "" {
		cat, err := market.LoadWalletCatalogue(app.cfg.WhaleWalletsFile)
		if err != nil {
			return fmt.Errorf("failed to load whale wallet catalogue: %w", err)
		}
		src := market.NewSolanaWhaleSource(market.NewRPCLedger(app.cfg.SolanaRPCEndpoint), cat, app.metrics)
		src.SOLPrice = func(ctx context.Context) (float64, error) {
			return dex.SymbolPrice(ctx, "SOL")
		}
		whales.ByChain = map[domain.Chain]market.WhaleSource{domain.ChainSolana: src}
		app.logger.Info("on-chain solana whale feed enabled",
			"wallets", len(cat.ForChain(domain.ChainSolana)),
		)
	} else {
		app.logger.Info("whale feed is simulated")
	}

	app.feed = &market.Feed{
		Tokens: dex,
		Whales: whales,
		News:   market.StaticNews{},
	}

	var inner analysis.Provider = analysis.Unavailable{}
	if app.cfg.GeminiAPIKey != "" {
		g, err := analysis.NewGemini(ctx, analysis.GeminiConfig{
			APIKey: app.cfg.GeminiAPIKey,
			Model:  app.cfg.GeminiModel,
		}, app.metrics)
		if err != nil {
			return fmt.Errorf("failed to initialize analysis provider: %w", err)
		}
		inner = g
		app.analysisConfigured = true
		app.logger.Info("analysis provider enabled", "model", g.Model)
	} else {
		app.logger.Warn("GEMINI_API_KEY not set, token analysis will use the fallback result")
	}
	app.analyzer = &analysis.Guarded{Provider: inner, Timeout: app.cfg.ProviderTimeout}
	return nil
}

// initTerminals creates the per-session coordinator registry and ties its
// lifetime to sessions.
func (app *Application) initTerminals() {
	app.terminals = refresh.NewRegistry(refresh.Config{
		InitialChain:   domain.ChainSolana,
		PollInterval:   app.cfg.PollInterval,
		SearchDebounce: app.cfg.SearchDebounce,
		RequestTimeout: app.cfg.ProviderTimeout,
	}, refresh.Deps{
		Tokens:   app.feed.Tokens,
		Analyzer: app.analyzer,
		Logger:   app.logger,
		Metrics:  app.metrics,
	})

	app.sessionService.OnEnd = app.terminals.End
	app.housekeepingService.OnSweep = func(ctx context.Context) {
		now := time.Now()
		app.terminals.Reap(func(sessionID string) bool {
			sess, err := app.db.Sessions().GetSession(ctx, sessionID)
			if errors.Is(err, store.ErrNotFound) {
				return false
			}
			// Keep on lookup failure; the next sweep retries.
			return err != nil || sess.ValidAt(now)
		})
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.EntitlementService = app.entitlementService
	router.SessionService = app.sessionService
	router.WatchlistService = app.watchlistService
	router.Feed = app.feed
	router.Analyzer = app.analyzer
	router.AnalysisConfigured = app.analysisConfigured
	router.Terminals = app.terminals
	router.Metrics = promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry})
	router.AllowedOrigins = app.cfg.AllowedOrigins
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
