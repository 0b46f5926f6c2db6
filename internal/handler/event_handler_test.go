package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/pkg/middleware"
)

// MockEventService is a mock implementation of service.EventService
type MockEventService struct {
	events map[string]*domain.Event
}

func NewMockEventService() *MockEventService {
	return &MockEventService{
		events: make(map[string]*domain.Event),
	}
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	now := time.Now()
	event := &domain.Event{
		ID:          "event-123",
		OrganizerID: req.OrganizerID,
		Name:        req.Name,
		Slug:        "test-slug",
		Description: req.Description,
		Status:      domain.EventStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *MockEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (m *MockEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range m.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventService) ListEvents(ctx context.Context, filter *dto.EventListFilter) ([]*domain.Event, int, error) {
	var events []*domain.Event
	for _, e := range m.events {
		events = append(events, e)
	}
	return events, len(events), nil
}

func (m *MockEventService) UpdateEvent(ctx context.Context, slug string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	event, err := m.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		event.Name = req.Name
	}
	return event, nil
}

func (m *MockEventService) DeleteEvent(ctx context.Context, slug string) error {
	event, err := m.GetEventBySlug(ctx, slug)
	if err != nil {
		return err
	}
	delete(m.events, event.ID)
	return nil
}

func (m *MockEventService) PublishEvent(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := m.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventStatusDraft {
		return nil, domain.ErrInvalidEventStatus
	}
	event.Status = domain.EventStatusPublished
	return event, nil
}

// AddEvent seeds an event into the mock service
func (m *MockEventService) AddEvent(event *domain.Event) {
	m.events[event.ID] = event
}

func setupEventRouter(h *EventHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the JWT middleware
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, "org-1")
		c.Set(middleware.ContextKeyUserRole, "organizer")
	})

	events := router.Group("/events")
	{
		events.GET("", h.List)
		events.GET("/:slug", h.GetBySlug)
		events.GET("/id/:id", h.GetByID)
		events.POST("", h.Create)
		events.PUT("/:slug", h.Update)
		events.DELETE("/:slug", h.Delete)
		events.POST("/:slug/publish", h.Publish)
	}

	return router
}

func createEventBody() []byte {
	body, _ := json.Marshal(dto.CreateEventRequest{
		Name: "Festival de Verao",
		TicketTypes: []dto.CreateTicketTypeRequest{
			{Name: "VIP"},
		},
		Batches: []dto.CreateBatchRequest{
			{
				Name:      "1st batch",
				StartDate: time.Now(),
				TicketTypes: []dto.BatchTypePriceRequest{
					{TicketTypeName: "VIP", PriceCents: 15000, Amount: 100},
				},
			},
		},
		Dates: []dto.CreateDateRequest{
			{Date: "2026-05-01", HourStart: "20:00"},
		},
	})
	return body
}

func TestEventHandler_Create(t *testing.T) {
	svc := NewMockEventService()
	router := setupEventRouter(NewEventHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(createEventBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    dto.EventResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success || resp.Data.ID != "event-123" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Data.OrganizerID != "org-1" {
		t.Errorf("OrganizerID = %q, want org-1 from token", resp.Data.OrganizerID)
	}
}

func TestEventHandler_Create_InvalidBody(t *testing.T) {
	router := setupEventRouter(NewEventHandler(NewMockEventService()))

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{"name":""}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestEventHandler_GetBySlug(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(&domain.Event{
		ID:     "event-1",
		Slug:   "festival",
		Name:   "Festival",
		Status: domain.EventStatusPublished,
	})
	router := setupEventRouter(NewEventHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/events/festival", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status for missing slug = %d, want 404", w.Code)
	}
}

func TestEventHandler_Publish(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(&domain.Event{ID: "event-1", Slug: "festival", Status: domain.EventStatusDraft})
	router := setupEventRouter(NewEventHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/events/festival/publish", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	// Second publish hits the status guard
	req = httptest.NewRequest(http.MethodPost, "/events/festival/publish", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for republish", w.Code)
	}
}

func TestEventHandler_Delete(t *testing.T) {
	svc := NewMockEventService()
	svc.AddEvent(&domain.Event{ID: "event-1", Slug: "festival", Status: domain.EventStatusDraft})
	router := setupEventRouter(NewEventHandler(svc))

	req := httptest.NewRequest(http.MethodDelete, "/events/festival", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/events/festival", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 after delete", w.Code)
	}
}
