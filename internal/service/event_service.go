package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/internal/repository"
)

// ErrValidation wraps a request validation message
var ErrValidation = errors.New("validation failed")

const dateLayout = "2006-01-02"

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

// CreateEvent creates a new event with its full pricing configuration. The
// request declares ticket types by name; IDs are minted here and every batch
// and date reference is rewritten to them.
func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	slug := generateSlug(req.Name)
	slug, err := s.ensureUniqueSlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event := &domain.Event{
		ID:               uuid.New().String(),
		OrganizerID:      req.OrganizerID,
		Name:             req.Name,
		Slug:             slug,
		Description:      req.Description,
		Status:           domain.EventStatusDraft,
		IsFree:           req.IsFree,
		IsClientTaxed:    req.IsClientTaxed,
		PriceCents:       req.PriceCents,
		MaxTicketsPerBuy: req.MaxTicketsPerBuy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Mint ticket type IDs and index them by declared name
	typeIDByName := make(map[string]string, len(req.TicketTypes))
	for _, tt := range req.TicketTypes {
		id := uuid.New().String()
		typeIDByName[tt.Name] = id
		event.TicketTypes = append(event.TicketTypes, &domain.TicketType{
			ID:          id,
			EventID:     event.ID,
			Name:        tt.Name,
			Description: tt.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	for _, b := range req.Batches {
		batch := &domain.EventBatch{
			ID:         uuid.New().String(),
			EventID:    event.ID,
			Name:       b.Name,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
			IsActive:   true,
			PriceCents: b.PriceCents,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, bt := range b.TicketTypes {
			batch.TicketTypes = append(batch.TicketTypes, &domain.BatchTicketTypePrice{
				ID:           uuid.New().String(),
				BatchID:      batch.ID,
				TicketTypeID: typeIDByName[bt.TicketTypeName],
				PriceCents:   bt.PriceCents,
				Amount:       bt.Amount,
			})
		}
		event.Batches = append(event.Batches, batch)
	}

	for _, d := range req.Dates {
		day, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, d.Date)
		}
		date := &domain.EventDate{
			ID:               uuid.New().String(),
			EventID:          event.ID,
			Date:             day,
			HourStart:        d.HourStart,
			HourEnd:          d.HourEnd,
			HasSpecificPrice: d.HasSpecificPrice,
			PriceCents:       d.PriceCents,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, tp := range d.TicketTypePrices {
			date.TicketTypePrices = append(date.TicketTypePrices, &domain.DateTicketTypePrice{
				ID:           uuid.New().String(),
				EventDateID:  date.ID,
				TicketTypeID: typeIDByName[tp.TicketTypeName],
				PriceCents:   tp.PriceCents,
			})
		}
		event.Dates = append(event.Dates, date)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// GetEventByID retrieves an event by ID
func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// GetEventBySlug retrieves an event by slug
func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// ListEvents lists events with filters and pagination
func (s *eventService) ListEvents(ctx context.Context, filter *dto.EventListFilter) ([]*domain.Event, int, error) {
	filter.SetDefaults()

	repoFilter := &repository.EventFilter{
		Status:      filter.Status,
		OrganizerID: filter.OrganizerID,
		Search:      filter.Search,
	}

	return s.eventRepo.List(ctx, repoFilter, filter.Limit, filter.Offset)
}

// UpdateEvent updates the mutable event header fields, addressed by slug
func (s *eventService) UpdateEvent(ctx context.Context, slug string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	if req.Name != "" {
		event.Name = req.Name
		newSlug := generateSlug(req.Name)
		newSlug, err = s.ensureUniqueSlugExcluding(ctx, newSlug, event.ID)
		if err != nil {
			return nil, err
		}
		event.Slug = newSlug
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.IsClientTaxed != nil {
		event.IsClientTaxed = *req.IsClientTaxed
	}
	if req.MaxTicketsPerBuy != nil {
		event.MaxTicketsPerBuy = *req.MaxTicketsPerBuy
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent soft deletes an event, addressed by slug
func (s *eventService) DeleteEvent(ctx context.Context, slug string) error {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrEventNotFound
	}

	return s.eventRepo.Delete(ctx, event.ID)
}

// PublishEvent transitions a draft event to published, addressed by slug
func (s *eventService) PublishEvent(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	if event.Status != domain.EventStatusDraft {
		return nil, domain.ErrInvalidEventStatus
	}

	now := time.Now()
	event.Status = domain.EventStatusPublished
	event.PublishedAt = &now
	event.UpdatedAt = now
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

var slugHyphens = regexp.MustCompile(`-+`)

// generateSlug generates a URL-friendly slug from a string
func generateSlug(s string) string {
	s = strings.ToLower(s)

	var builder strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			builder.WriteRune('-')
		}
	}

	slug := slugHyphens.ReplaceAllString(builder.String(), "-")
	return strings.Trim(slug, "-")
}

// ensureUniqueSlug ensures the slug is unique by appending a suffix if needed
func (s *eventService) ensureUniqueSlug(ctx context.Context, slug string) (string, error) {
	baseSlug := slug
	counter := 1

	for {
		exists, err := s.eventRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		if counter > 10 {
			// High collision, fall back to a UUID suffix
			return baseSlug + "-" + uuid.New().String()[:8], nil
		}
	}
}

// ensureUniqueSlugExcluding ensures the slug is unique excluding the current event
func (s *eventService) ensureUniqueSlugExcluding(ctx context.Context, slug string, excludeID string) (string, error) {
	baseSlug := slug
	counter := 1

	for {
		event, err := s.eventRepo.GetBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if event == nil || event.ID == excludeID {
			return slug, nil
		}
		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		if counter > 10 {
			return baseSlug + "-" + uuid.New().String()[:8], nil
		}
	}
}
