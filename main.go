package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festapass/pricing-service/internal/consumer"
	"github.com/festapass/pricing-service/internal/di"
	"github.com/festapass/pricing-service/pkg/config"
	"github.com/festapass/pricing-service/pkg/database"
	"github.com/festapass/pricing-service/pkg/logger"
	"github.com/festapass/pricing-service/pkg/middleware"
	"github.com/festapass/pricing-service/pkg/redis"
	"github.com/festapass/pricing-service/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Pricing Service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (optional - caching is disabled on failure)
	var redisClient *redis.Client
	redisCfg := &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	redisClient, err = redis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed (caching disabled): %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:     db,
		Redis:  redisClient,
		Config: cfg,
	})

	// Start inventory consumer (optional - quotes fall back to stored signals)
	var inventoryConsumer *consumer.InventoryConsumer
	consumerCtx, consumerCancel := context.WithCancel(ctx)
	defer consumerCancel()
	inventoryConsumer, err = consumer.NewInventoryConsumer(ctx, &consumer.InventoryConsumerConfig{
		Brokers:       cfg.Kafka.Brokers,
		GroupID:       cfg.Kafka.ConsumerGroup,
		Topic:         cfg.Kafka.InventoryTopic,
		ClientID:      cfg.Kafka.ClientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
		WorkerCount:   4,
	}, container.AvailabilityService, appLog)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Kafka consumer unavailable (inventory updates disabled): %v", err))
		inventoryConsumer = nil
	} else {
		if err := inventoryConsumer.Start(consumerCtx); err != nil {
			appLog.Fatal(fmt.Sprintf("Failed to start inventory consumer: %v", err))
		}
		appLog.Info(fmt.Sprintf("Inventory consumer started (topic: %s)", cfg.Kafka.InventoryTopic))
	}

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
		router.Use(telemetry.TraceHeaderMiddleware())
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	jwtConfig := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/quote", container.QuoteHandler.QuoteDirect)

		events := v1.Group("/events")
		{
			// Public read endpoints
			events.GET("", container.EventHandler.List)
			events.GET("/id/:id", container.EventHandler.GetByID)
			events.GET("/:slug/pricing", container.QuoteHandler.PricingTable)
			events.GET("/:slug/availability", container.AvailabilityHandler.Get)
			events.POST("/:slug/quote", container.QuoteHandler.Quote)

			// Protected authoring endpoints (organizer/admin only). The
			// param name must stay :slug across the whole group; gin
			// rejects differing wildcard names at the same segment.
			protected := events.Group("")
			protected.Use(middleware.JWTMiddleware(jwtConfig))
			protected.Use(middleware.RequireRole("admin", "organizer"))
			{
				protected.POST("", container.EventHandler.Create)
				protected.PUT("/:slug", container.EventHandler.Update)
				protected.DELETE("/:slug", container.EventHandler.Delete)
				protected.POST("/:slug/publish", container.EventHandler.Publish)
			}

			// Last so it does not shadow /id/:id
			events.GET("/:slug", container.EventHandler.GetBySlug)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Pricing Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	if inventoryConsumer != nil {
		consumerCancel()
		if err := inventoryConsumer.Stop(); err != nil {
			appLog.Error(fmt.Sprintf("Failed to stop inventory consumer: %v", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
