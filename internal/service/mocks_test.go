package service

import (
	"context"
	"time"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/repository"
)

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	events    map[string]*domain.Event
	slugToID  map[string]string
	createErr error
	updateErr error
	deleteErr error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		events:   make(map[string]*domain.Event),
		slugToID: make(map[string]string),
	}
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events[event.ID] = event
	m.slugToID[event.Slug] = event.ID
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok || event.DeletedAt != nil {
		return nil, nil
	}
	return event, nil
}

func (m *MockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	id, ok := m.slugToID[slug]
	if !ok {
		return nil, nil
	}
	event := m.events[id]
	if event.DeletedAt != nil {
		return nil, nil
	}
	return event, nil
}

func (m *MockEventRepository) List(ctx context.Context, filter *repository.EventFilter, limit, offset int) ([]*domain.Event, int, error) {
	var events []*domain.Event
	for _, e := range m.events {
		if e.DeletedAt != nil {
			continue
		}
		if filter != nil && filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter != nil && filter.OrganizerID != "" && e.OrganizerID != filter.OrganizerID {
			continue
		}
		events = append(events, e)
	}
	return events, len(events), nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.events[event.ID] = event
	m.slugToID[event.Slug] = event.ID
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if event, ok := m.events[id]; ok {
		now := time.Now()
		event.DeletedAt = &now
	}
	return nil
}

func (m *MockEventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, ok := m.slugToID[slug]
	return ok, nil
}

// MockAvailabilityRepository is a mock implementation of AvailabilityRepository
type MockAvailabilityRepository struct {
	signals   map[string][]*domain.AvailabilitySignal
	upsertErr error
}

func NewMockAvailabilityRepository() *MockAvailabilityRepository {
	return &MockAvailabilityRepository{
		signals: make(map[string][]*domain.AvailabilitySignal),
	}
}

func (m *MockAvailabilityRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.AvailabilitySignal, error) {
	return m.signals[eventID], nil
}

func (m *MockAvailabilityRepository) Upsert(ctx context.Context, signal *domain.AvailabilitySignal) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	existing := m.signals[signal.EventID]
	for i, s := range existing {
		if s.Matches(signal.EventDateID, signal.TicketTypeID) {
			existing[i] = signal
			return nil
		}
	}
	m.signals[signal.EventID] = append(existing, signal)
	return nil
}

// MockInvalidator records cache invalidation calls
type MockInvalidator struct {
	calls []string
}

func (m *MockInvalidator) InvalidateEvent(ctx context.Context, id, slug string) {
	m.calls = append(m.calls, id)
}
