package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sirimeals/mealops-backend/api/routes"
	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/internal/bags"
	"github.com/sirimeals/mealops-backend/internal/holidays"
	"github.com/sirimeals/mealops-backend/internal/packing"
	"github.com/sirimeals/mealops-backend/internal/subscriptions"
	"github.com/sirimeals/mealops-backend/pkg/config"
	"github.com/sirimeals/mealops-backend/pkg/db"
	"github.com/sirimeals/mealops-backend/pkg/logger"
	"github.com/sirimeals/mealops-backend/pkg/metrics"
	"github.com/sirimeals/mealops-backend/pkg/migrate"
	"github.com/sirimeals/mealops-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	schedulingMetrics := metrics.NewSchedulingMetrics(prometheus.DefaultRegisterer)

	auditLogService, err := auditlog.NewService(auditlog.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit log service", err)
		os.Exit(1)
	}

	holidayRepo := holidays.NewRepository(dbClient.DB())
	holidayService, err := holidays.NewService(holidayRepo, auditLogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create holiday service", err)
		os.Exit(1)
	}

	subscriptionService, err := subscriptions.NewService(
		dbClient,
		subscriptions.NewRepository(dbClient.DB()),
		holidayRepo,
		auditLogService,
		logg,
		schedulingMetrics,
		cfg.Scheduling,
		nil,
		nil,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription service", err)
		os.Exit(1)
	}

	bagService, err := bags.NewService(dbClient, bags.NewRepository(dbClient.DB()), auditLogService, logg, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create bag service", err)
		os.Exit(1)
	}

	packingService, err := packing.NewService(packing.NewRepository(dbClient.DB()), auditLogService, logg, schedulingMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create packing service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			subscriptionService,
			bagService,
			packingService,
			holidayService,
			auditLogService,
			prometheus.DefaultGatherer,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
