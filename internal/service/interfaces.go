package service

import (
	"context"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
)

// EventService defines the interface for event authoring operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)
	GetEventByID(ctx context.Context, id string) (*domain.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error)
	ListEvents(ctx context.Context, filter *dto.EventListFilter) ([]*domain.Event, int, error)
	UpdateEvent(ctx context.Context, slug string, req *dto.UpdateEventRequest) (*domain.Event, error)
	DeleteEvent(ctx context.Context, slug string) error
	PublishEvent(ctx context.Context, slug string) (*domain.Event, error)
}

// QuoteService defines the interface for buyer-facing price resolution
type QuoteService interface {
	Quote(ctx context.Context, slug string, req *dto.QuoteRequest) (*dto.QuoteResponse, error)
	PricingTable(ctx context.Context, slug, batchID string) (*dto.PricingTableResponse, error)
}

// AvailabilityService defines the interface for availability signals
type AvailabilityService interface {
	GetAvailability(ctx context.Context, slug string) (*dto.AvailabilityResponse, error)
	ApplyInventoryEvent(ctx context.Context, evt *dto.InventoryEvent) error
}
