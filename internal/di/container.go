package di

import (
	"github.com/festapass/pricing-service/internal/handler"
	"github.com/festapass/pricing-service/internal/pricing"
	"github.com/festapass/pricing-service/internal/repository"
	"github.com/festapass/pricing-service/internal/service"
	"github.com/festapass/pricing-service/pkg/config"
	"github.com/festapass/pricing-service/pkg/database"
	"github.com/festapass/pricing-service/pkg/redis"
)

// Container holds all dependencies for the pricing service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	EventRepo repository.EventRepository
	AvailRepo repository.AvailabilityRepository

	// Services
	EventService        service.EventService
	QuoteService        service.QuoteService
	AvailabilityService service.AvailabilityService

	// Handlers
	HealthHandler       *handler.HealthHandler
	EventHandler        *handler.EventHandler
	QuoteHandler        *handler.QuoteHandler
	AvailabilityHandler *handler.AvailabilityHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB     *database.PostgresDB
	Redis  *redis.Client
	Config *config.Config
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Repositories, cache-wrapped when Redis is available
	pgEventRepo := repository.NewPostgresEventRepository(c.DB.Pool())
	var invalidator service.CacheInvalidator
	if c.Redis != nil {
		cached := repository.NewCachedEventRepository(pgEventRepo, c.Redis)
		c.EventRepo = cached
		invalidator = cached
	} else {
		c.EventRepo = pgEventRepo
	}
	c.AvailRepo = repository.NewPostgresAvailabilityRepository(c.DB.Pool())

	// Services
	fees := pricing.NewFeeCalculator(cfg.Config.Pricing.ServiceFeeBps, cfg.Config.Pricing.MinFeeCents)
	c.EventService = service.NewEventService(c.EventRepo)
	c.QuoteService = service.NewQuoteService(c.EventRepo, c.AvailRepo, fees, cfg.Config.Pricing.DefaultMaxPerBuy)
	c.AvailabilityService = service.NewAvailabilityService(c.EventRepo, c.AvailRepo, invalidator)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, cfg.Config.App.Version)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.QuoteHandler = handler.NewQuoteHandler(c.QuoteService)
	c.AvailabilityHandler = handler.NewAvailabilityHandler(c.AvailabilityService)

	return c
}
