package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/openedu/learnhub/internal/api"
	"github.com/openedu/learnhub/internal/bin"
	"github.com/openedu/learnhub/internal/cache"
	"github.com/openedu/learnhub/internal/config"
	"github.com/openedu/learnhub/internal/content"
	"github.com/openedu/learnhub/internal/logger"
	"github.com/openedu/learnhub/internal/middleware"
	"github.com/openedu/learnhub/internal/quiz"
	"github.com/openedu/learnhub/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Document cache: Redis when configured and reachable, otherwise an
	// in-process fallback.
	var docCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
			docCache = cache.NewMemoryCache()
		} else {
			docCache = redisCache
		}
	} else {
		docCache = cache.NewMemoryCache()
	}
	defer func() {
		if err := docCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing document cache")
		}
	}()

	// Remote document client. Credentials come from the environment or, when
	// absent, from the bootstrap endpoint.
	binClient := bin.NewClient(cfg)
	if !binClient.IsConfigured() && cfg.ConfigEndpoint != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
			defer cancel()
			if err := binClient.Bootstrap(ctx, cfg.ConfigEndpoint); err != nil {
				log.Error().Err(err).Msg("Bin bootstrap failed, running without remote store")
			}
		}()
	}

	// Content managers
	articles := content.NewArticleManager(binClient, docCache, utils.Hash(cfg.BinID), cfg.CacheTTL)
	community := content.NewCommunityManager()

	// Initial article load runs in the background; the page shows a loading
	// state until it clears.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		binClient.WaitConfigured(ctx)
		articles.Load(ctx)
	}()

	// Quiz engine. A broken quiz document disables the quiz but never the
	// rest of the site.
	bank, err := quiz.LoadBank(cfg.QuizDataPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.QuizDataPath).Msg("Failed to load quiz data, quiz disabled")
		bank = quiz.EmptyBank()
	}
	engine := quiz.NewEngine(bank)

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Static pages
	app.Static("/", cfg.StaticPath)

	// Setup API routes
	api.SetupRoutes(app, api.NewHandlers(cfg, articles, community, engine))

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
