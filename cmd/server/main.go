package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/propline/prop-engine/internal/api/handlers"
	"github.com/propline/prop-engine/internal/config"
	"github.com/propline/prop-engine/internal/engine"
	"github.com/propline/prop-engine/internal/providers"
	"github.com/propline/prop-engine/internal/services"
	"github.com/propline/prop-engine/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("prop-engine").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
		"data_source": cfg.DataSource,
	}).Info("Starting prop engine")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		dataSource   engine.DataSource
		cacheService *services.CacheService
		refresher    *services.CacheRefresher
	)

	switch cfg.DataSource {
	case "sportsdataio":
		if cfg.SportsDataIOAPIKey == "" {
			logger.WithService("prop-engine").Fatal("SportsDataIO selected but SPORTSDATAIO_API_KEY is not set")
		}

		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithService("prop-engine").Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithService("prop-engine").Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		cacheService = services.NewCacheService(redisClient, structuredLogger)
		breakerService := services.NewCircuitBreakerService(
			cfg.CircuitBreakerThreshold,
			cfg.ExternalAPITimeout,
			structuredLogger,
		)

		live := providers.NewSportsDataIOProvider(
			cfg.SportsDataIOAPIKey,
			cfg.ExternalAPITimeout,
			cacheService,
			breakerService,
			structuredLogger,
		)
		dataSource = live

		if cfg.EnableCacheRefresher && cfg.RefreshTeams != "" && cfg.RefreshWeek > 0 {
			teams := strings.Split(cfg.RefreshTeams, ",")
			refresher, err = services.NewCacheRefresher(
				cfg.RefreshSchedule,
				teams,
				cfg.RefreshWeek,
				warmTeam(live),
				structuredLogger,
			)
			if err != nil {
				logger.WithService("prop-engine").Fatalf("Failed to create cache refresher: %v", err)
			}
			if err := refresher.Start(); err != nil {
				logger.WithService("prop-engine").Fatalf("Failed to start cache refresher: %v", err)
			}
			defer refresher.Stop()
		}

	case "stub":
		logger.WithService("prop-engine").Info("Using offline stub data source (demo matchup)")
		dataSource = providers.NewStubProvider()

	default:
		logger.WithService("prop-engine").Fatalf("Unknown data source: %s", cfg.DataSource)
	}

	eng := engine.New(dataSource, engine.Options{
		StarterPolicy:       engine.StarterPolicy(cfg.StarterPolicy),
		RenormalizeRZShares: cfg.RenormalizeRZShares,
		TeamPassAttempts:    cfg.TeamPassAttempts,
		LeagueCatchRate:     cfg.LeagueCatchRate,
	}, structuredLogger)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	projectionHandler := handlers.NewProjectionHandler(eng, structuredLogger)
	healthHandler := handlers.NewHealthHandler(cacheService, refresher, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/projections/team", projectionHandler.ProjectTeam)
		apiV1.POST("/projections/team/export", projectionHandler.ExportTeamCSV)
		apiV1.POST("/projections/game", projectionHandler.ProjectGame)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.HEAD("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("prop-engine").WithField("port", cfg.Port).Info("Prop engine started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("prop-engine").Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("prop-engine").Info("Shutting down prop engine...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("prop-engine").Fatalf("Prop engine forced to shutdown: %v", err)
	}

	logger.WithService("prop-engine").Info("Prop engine exited")
}

// warmTeam hits every upstream endpoint for a team so responses land in
// the provider cache ahead of traffic.
func warmTeam(p *providers.SportsDataIOProvider) func(ctx context.Context, team string, week int) error {
	return func(ctx context.Context, team string, week int) error {
		if _, err := p.DepthChart(ctx, team, week); err != nil {
			return err
		}
		if _, err := p.RecentUsage(ctx, team, week); err != nil {
			return err
		}
		if _, err := p.NewsFlags(ctx, team, week); err != nil {
			return err
		}
		if _, err := p.MatchupMetrics(ctx, team, week); err != nil {
			return err
		}
		_, err := p.Weather(ctx, team, week)
		return err
	}
}
