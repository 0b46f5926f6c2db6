package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/internal/repository"
)

// CacheInvalidator drops cached copies of an event after its availability
// changes. Nil is allowed when no cache layer is configured.
type CacheInvalidator interface {
	InvalidateEvent(ctx context.Context, id, slug string)
}

// availabilityService implements AvailabilityService
type availabilityService struct {
	eventRepo   repository.EventRepository
	availRepo   repository.AvailabilityRepository
	invalidator CacheInvalidator
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(eventRepo repository.EventRepository, availRepo repository.AvailabilityRepository, invalidator CacheInvalidator) AvailabilityService {
	return &availabilityService{
		eventRepo:   eventRepo,
		availRepo:   availRepo,
		invalidator: invalidator,
	}
}

// GetAvailability returns the current availability signals for an event
func (s *availabilityService) GetAvailability(ctx context.Context, slug string) (*dto.AvailabilityResponse, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	signals, err := s.availRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		EventID: event.ID,
		Signals: make([]dto.AvailabilitySignal, 0, len(signals)),
	}
	for _, sig := range signals {
		resp.Signals = append(resp.Signals, dto.AvailabilitySignal{
			EventDateID:   sig.EventDateID,
			TicketTypeID:  sig.TicketTypeID,
			TicketsAmount: sig.TicketsAmount,
			IsLastTickets: sig.IsLastTickets,
		})
	}
	return resp, nil
}

// ApplyInventoryEvent upserts the availability signal carried by an inventory
// message and drops the event's cached graph so the next quote sees it.
func (s *availabilityService) ApplyInventoryEvent(ctx context.Context, evt *dto.InventoryEvent) error {
	if valid, msg := evt.Validate(); !valid {
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	now := time.Now()
	signal := &domain.AvailabilitySignal{
		ID:            uuid.New().String(),
		EventID:       evt.EventID,
		EventDateID:   evt.EventDateID,
		TicketTypeID:  evt.TicketTypeID,
		TicketsAmount: evt.TicketsAmount,
		IsLastTickets: evt.IsLastTickets,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// A sold-out message with no explicit amount still zeroes the stock
	if evt.Type == dto.InventoryEventSoldOut && signal.TicketsAmount == nil {
		zero := 0
		signal.TicketsAmount = &zero
	}
	if evt.Type == dto.InventoryEventLastTickets {
		signal.IsLastTickets = true
	}

	if err := s.availRepo.Upsert(ctx, signal); err != nil {
		return err
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateEvent(ctx, evt.EventID, evt.EventSlug)
	}

	return nil
}
