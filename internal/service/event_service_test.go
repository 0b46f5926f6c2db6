package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
)

func createRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Name:        "Festival de Verao 2026",
		Description: "Three days on the beach",
		OrganizerID: "org-1",
		TicketTypes: []dto.CreateTicketTypeRequest{
			{Name: "VIP"},
			{Name: "Pista"},
		},
		Batches: []dto.CreateBatchRequest{
			{
				Name:      "1st batch",
				StartDate: time.Now().Add(-time.Hour),
				TicketTypes: []dto.BatchTypePriceRequest{
					{TicketTypeName: "VIP", PriceCents: 15000, Amount: 100},
					{TicketTypeName: "Pista", PriceCents: 8000, Amount: 400},
				},
			},
		},
		Dates: []dto.CreateDateRequest{
			{Date: "2026-05-01", HourStart: "20:00"},
			{
				Date:             "2026-05-02",
				HourStart:        "20:00",
				HasSpecificPrice: true,
				TicketTypePrices: []dto.DateTypePriceRequest{
					{TicketTypeName: "VIP", PriceCents: 12000},
				},
			},
		},
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	repo := NewMockEventRepository()
	svc := NewEventService(repo)

	event, err := svc.CreateEvent(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	if event.Slug != "festival-de-verao-2026" {
		t.Errorf("Slug = %q, want %q", event.Slug, "festival-de-verao-2026")
	}
	if event.Status != domain.EventStatusDraft {
		t.Errorf("Status = %q, want draft", event.Status)
	}
	if len(event.TicketTypes) != 2 || len(event.Batches) != 1 || len(event.Dates) != 2 {
		t.Fatalf("graph sizes = %d types, %d batches, %d dates",
			len(event.TicketTypes), len(event.Batches), len(event.Dates))
	}

	// Name references must be rewritten to minted type IDs
	vipID := ""
	for _, tt := range event.TicketTypes {
		if tt.Name == "VIP" {
			vipID = tt.ID
		}
	}
	if vipID == "" {
		t.Fatal("VIP ticket type not created")
	}
	if tp := event.Batches[0].TypePrice(vipID); tp == nil || tp.PriceCents != 15000 {
		t.Errorf("batch VIP price = %+v, want 15000", tp)
	}
	override := event.Dates[1].TypePrice(vipID)
	if override == nil || override.PriceCents != 12000 {
		t.Errorf("date VIP override = %+v, want 12000", override)
	}

	if _, err := repo.GetByID(context.Background(), event.ID); err != nil {
		t.Errorf("event not persisted: %v", err)
	}
}

func TestEventService_CreateEvent_SlugCollision(t *testing.T) {
	repo := NewMockEventRepository()
	svc := NewEventService(repo)

	first, err := svc.CreateEvent(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("first CreateEvent() error = %v", err)
	}
	second, err := svc.CreateEvent(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("second CreateEvent() error = %v", err)
	}

	if first.Slug == second.Slug {
		t.Errorf("slugs collide: %q", first.Slug)
	}
}

func TestEventService_CreateEvent_InvalidRequest(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	req := createRequest()
	req.Name = ""
	_, err := svc.CreateEvent(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestEventService_CreateEvent_InvalidDate(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	req := createRequest()
	req.Dates[0].Date = "01/05/2026"
	_, err := svc.CreateEvent(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestEventService_GetEventBySlug_NotFound(t *testing.T) {
	svc := NewEventService(NewMockEventRepository())

	_, err := svc.GetEventBySlug(context.Background(), "missing")
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
}

func TestEventService_PublishEvent(t *testing.T) {
	repo := NewMockEventRepository()
	svc := NewEventService(repo)

	event, err := svc.CreateEvent(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	published, err := svc.PublishEvent(context.Background(), event.Slug)
	if err != nil {
		t.Fatalf("PublishEvent() error = %v", err)
	}
	if published.Status != domain.EventStatusPublished {
		t.Errorf("Status = %q, want published", published.Status)
	}
	if published.PublishedAt == nil {
		t.Error("PublishedAt not set")
	}

	// Publishing twice is an invalid transition
	_, err = svc.PublishEvent(context.Background(), event.Slug)
	if !errors.Is(err, domain.ErrInvalidEventStatus) {
		t.Errorf("error = %v, want ErrInvalidEventStatus", err)
	}
}

func TestEventService_UpdateEvent(t *testing.T) {
	repo := NewMockEventRepository()
	svc := NewEventService(repo)

	event, err := svc.CreateEvent(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	taxed := true
	maxBuy := 4
	updated, err := svc.UpdateEvent(context.Background(), event.Slug, &dto.UpdateEventRequest{
		Name:             "Festival de Inverno",
		IsClientTaxed:    &taxed,
		MaxTicketsPerBuy: &maxBuy,
	})
	if err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}
	if updated.Slug != "festival-de-inverno" {
		t.Errorf("Slug = %q, want regenerated slug", updated.Slug)
	}
	if !updated.IsClientTaxed || updated.MaxTicketsPerBuy != 4 {
		t.Errorf("fields not applied: %+v", updated)
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	repo := NewMockEventRepository()
	svc := NewEventService(repo)

	event, err := svc.CreateEvent(context.Background(), createRequest())
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	if err := svc.DeleteEvent(context.Background(), event.Slug); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	_, err = svc.GetEventByID(context.Background(), event.ID)
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("error after delete = %v, want ErrEventNotFound", err)
	}

	if err := svc.DeleteEvent(context.Background(), "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("delete missing error = %v, want ErrEventNotFound", err)
	}
}
