package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asifrahman/travelscout/internal/assistant"
	"github.com/asifrahman/travelscout/internal/config"
	"github.com/asifrahman/travelscout/internal/httpserver"
	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/places"
	"github.com/asifrahman/travelscout/internal/search"
	"github.com/asifrahman/travelscout/internal/search/cache"
	"github.com/asifrahman/travelscout/internal/sources"
	"github.com/asifrahman/travelscout/internal/sources/agoda"
	"github.com/asifrahman/travelscout/internal/sources/booking"
	"github.com/asifrahman/travelscout/internal/sources/bus"
	"github.com/asifrahman/travelscout/internal/sources/flights"
	"github.com/asifrahman/travelscout/internal/sources/makemytrip"
	"github.com/asifrahman/travelscout/internal/sources/rail"
	"github.com/asifrahman/travelscout/internal/transit"
	"github.com/asifrahman/travelscout/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	server *httpserver.Server
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Load transit tables early - fail fast on a broken override file
	tables, err := transit.Load(cfg.TransitFile)
	if err != nil {
		loggerClient.Errorf("Failed to load transit tables: %v", err)
		os.Exit(1)
	}
	if cfg.TransitFile != "" {
		loggerClient.Info("transit tables loaded from override file",
			logger.String("file", cfg.TransitFile))
	}

	scrapeClient := sources.NewClient(cfg.ScrapeTimeout, cfg.ScrapeRetries, cfg.ScrapeBackoff)

	// Registration order is priority order: when two sources emit an offer
	// with the same name, the earliest registered one owns it.
	registry := sources.NewRegistry()
	registry.Add(sources.CategoryHotels, booking.New(cfg.BrowserTimeout, cfg.ScrapeRetries, cfg.ScrapeBackoff, loggerClient))
	registry.Add(sources.CategoryHotels, agoda.New(scrapeClient))
	registry.Add(sources.CategoryHotels, makemytrip.New(cfg.ScrapeTimeout))
	registry.Add(sources.CategoryTransportation, flights.New(tables, cfg.FlightSeed))
	registry.Add(sources.CategoryTransportation, bus.New(scrapeClient, tables, loggerClient))
	registry.Add(sources.CategoryTransportation, rail.New(tables))
	registry.Add(sources.CategoryTransportation, sources.NewRome2Rio())

	for _, category := range []sources.Category{sources.CategoryHotels, sources.CategoryTransportation} {
		loggerClient.Info("sources registered",
			logger.String("category", string(category)),
			logger.Int("count", len(registry.Sources(category))))
	}

	resultCache := cache.New(cfg.CacheTTL)
	aggregator := search.NewAggregator(registry, cfg.CategoryTimeout, loggerClient)
	placesClient := places.New(cfg.ScrapeTimeout, loggerClient)
	orchestrator := search.NewOrchestrator(aggregator, aggregator, placesClient, resultCache, cfg.SearchTimeout, loggerClient)

	assistantClient := assistant.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, loggerClient)
	if assistantClient.Enabled() {
		loggerClient.Info("assistant enabled", logger.String("model", cfg.AIModel))
	} else {
		loggerClient.Info("no AI API key configured, assistant endpoints disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		DevMode:        cfg.DevMode,
		AllowedOrigins: cfg.AllowedOrigins,
		Orchestrator:   orchestrator,
		Sources:        registry,
		Cache:          resultCache,
		Assistant:      assistantClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		server: server,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting TravelScout v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("TravelScout %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ TravelScout stopped cleanly")
	return nil
}
