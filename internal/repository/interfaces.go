package repository

import (
	"context"

	"github.com/festapass/pricing-service/internal/domain"
)

// EventFilter represents filters for listing events
type EventFilter struct {
	Status      string
	OrganizerID string
	Search      string
}

// EventRepository defines the interface for event persistence. Reads return
// the full pricing graph (dates, batches, ticket types, overrides).
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	List(ctx context.Context, filter *EventFilter, limit, offset int) ([]*domain.Event, int, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// AvailabilityRepository defines the interface for availability signals
type AvailabilityRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]*domain.AvailabilitySignal, error)
	Upsert(ctx context.Context, signal *domain.AvailabilitySignal) error
}
