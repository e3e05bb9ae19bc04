// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quotedeck/internal/adapters/clients"
	"github.com/jsamuelsen/quotedeck/internal/adapters/http"
	"github.com/jsamuelsen/quotedeck/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedeck/internal/adapters/prefetch"
	"github.com/jsamuelsen/quotedeck/internal/adapters/store"
	"github.com/jsamuelsen/quotedeck/internal/app"
	"github.com/jsamuelsen/quotedeck/internal/domain"
	"github.com/jsamuelsen/quotedeck/internal/platform/config"
	"github.com/jsamuelsen/quotedeck/internal/platform/logging"
	"github.com/jsamuelsen/quotedeck/internal/platform/telemetry"
	"github.com/jsamuelsen/quotedeck/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Load the quote catalog
	catalog, err := store.LoadCatalog(cfg.Deck.DatasetPath)
	if err != nil {
		return fmt.Errorf("loading quote catalog: %w", err)
	}

	logger.Info("quote catalog loaded",
		slog.Int("quotes", catalog.Collection().Len()),
		slog.String("policy", cfg.Deck.Policy),
	)

	// 6. Create visitor state storage
	storage, err := newStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("creating storage: %w", err)
	}

	// 7. Create health registry and register storage
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(storage); err != nil {
		return fmt.Errorf("registering storage health check: %w", err)
	}

	// 8. Create image warmer over the instrumented HTTP client
	var warmer *prefetch.ImageWarmer

	if cfg.Prefetch.Enabled {
		imageClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Images.BaseURL,
			ServiceName: cfg.Images.Name,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Logger:      logger,
		})
		if err != nil {
			return fmt.Errorf("creating image client: %w", err)
		}

		warmer = prefetch.New(prefetch.Config{
			Client:       imageClient,
			FetchTimeout: cfg.Prefetch.FetchTimeout,
			MaxInFlight:  cfg.Prefetch.MaxInFlight,
			Logger:       logger,
		})
	}

	// 9. Create application services
	deckService := app.NewDeckService(app.DeckServiceConfig{
		Source:     catalog,
		Sessions:   storage,
		Prefetcher: prefetcherOrNil(warmer),
		Policy:     domain.Policy(cfg.Deck.Policy),
		Logger:     logger,
	})

	themeService := app.NewThemeService(app.ThemeServiceConfig{
		Store:  storage,
		Logger: logger,
	})

	shareService := app.NewShareService(catalog, app.ShareLinks{
		Title:            cfg.Share.Title,
		SiteURL:          cfg.Share.SiteURL,
		TwitterIntentURL: cfg.Share.TwitterIntentURL,
		LinkedInShareURL: cfg.Share.LinkedInShareURL,
	})

	// 10. Optionally warm every author photo at startup
	if warmer != nil && cfg.Prefetch.WarmOnStart {
		warmCatalogImages(ctx, logger, warmer, catalog.Collection(), cfg.Prefetch.MaxInFlight)
	}

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	deckHandler := handlers.NewDeckHandler(deckService, themeService)
	themeHandler := handlers.NewThemeHandler(themeService)
	quotesHandler := handlers.NewQuotesHandler(catalog, shareService)

	// 12. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 13. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: healthHandler,
		DeckHandler:   deckHandler,
		QuotesHandler: quotesHandler,
		ThemeHandler:  themeHandler,
		Timeout:       http.DefaultRequestTimeout,
		CookieSecure:  cfg.Server.CookieSecure,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 14. Start server (non-blocking)
	serverErr := server.Start()

	// 15. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// visitorStore is the composed persistence interface every storage
// driver satisfies.
type visitorStore interface {
	ports.SessionStore
	ports.PreferenceStore
	ports.HealthChecker
}

// newStorage builds the visitor state store selected by configuration.
func newStorage(cfg config.StorageConfig) (visitorStore, error) {
	switch cfg.Driver {
	case "disk":
		return store.NewDiskStore(cfg.Path), nil
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// prefetcherOrNil avoids handing a typed-nil interface to the deck service.
func prefetcherOrNil(warmer *prefetch.ImageWarmer) ports.Prefetcher {
	if warmer == nil {
		return nil
	}

	return warmer
}

// warmCatalogImages fetches every author photo with bounded concurrency
// so first navigation hits a warm cache. Failures are logged and ignored;
// the service starts regardless.
func warmCatalogImages(
	ctx context.Context,
	logger *slog.Logger,
	warmer *prefetch.ImageWarmer,
	collection domain.Collection,
	limit int,
) {
	if limit <= 0 {
		limit = config.DefaultPrefetchMaxInFlight
	}

	seen := make(map[string]struct{}, collection.Len())
	fns := make([]func(context.Context) (struct{}, error), 0, collection.Len())

	for _, quote := range collection {
		photo := quote.AuthorPhoto()
		if photo == "" {
			continue
		}

		if _, dup := seen[photo]; dup {
			continue
		}

		seen[photo] = struct{}{}

		fns = append(fns, func(ctx context.Context) (struct{}, error) {
			if err := warmer.Fetch(ctx, photo); err != nil {
				logger.Warn("startup image warm failed",
					slog.String("path", photo),
					slog.Any("error", err),
				)
			}

			return struct{}{}, nil
		})
	}

	if len(fns) == 0 {
		return
	}

	start := time.Now()

	_, _ = app.ParallelLimit(ctx, limit, fns...)

	logger.Info("startup image warm complete",
		slog.Int("images", len(fns)),
		slog.Duration("elapsed", time.Since(start)),
	)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
