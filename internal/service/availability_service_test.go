package service

import (
	"context"
	"errors"
	"testing"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
)

func TestAvailabilityService_GetAvailability(t *testing.T) {
	eventRepo := NewMockEventRepository()
	event := typedEvent()
	if err := eventRepo.Create(context.Background(), event); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	availRepo := NewMockAvailabilityRepository()
	availRepo.signals["evt-1"] = []*domain.AvailabilitySignal{
		{ID: "s1", EventID: "evt-1", EventDateID: strPtr("d1"), TicketTypeID: strPtr("vip"),
			TicketsAmount: intPtr(3), IsLastTickets: true},
		{ID: "s2", EventID: "evt-1"},
	}
	svc := NewAvailabilityService(eventRepo, availRepo, nil)

	resp, err := svc.GetAvailability(context.Background(), "festival")
	if err != nil {
		t.Fatalf("GetAvailability() error = %v", err)
	}
	if resp.EventID != "evt-1" || len(resp.Signals) != 2 {
		t.Errorf("resp = %+v, want 2 signals for evt-1", resp)
	}
	if resp.Signals[0].TicketsAmount == nil || *resp.Signals[0].TicketsAmount != 3 {
		t.Errorf("signal amount = %v, want 3", resp.Signals[0].TicketsAmount)
	}
	// The whole-event signal keeps its nil sentinels
	if resp.Signals[1].EventDateID != nil || resp.Signals[1].TicketTypeID != nil {
		t.Errorf("aggregate signal = %+v, want nil scopes", resp.Signals[1])
	}
}

func TestAvailabilityService_GetAvailability_NotFound(t *testing.T) {
	svc := NewAvailabilityService(NewMockEventRepository(), NewMockAvailabilityRepository(), nil)

	_, err := svc.GetAvailability(context.Background(), "missing")
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
}

func TestAvailabilityService_ApplyInventoryEvent(t *testing.T) {
	eventRepo := NewMockEventRepository()
	availRepo := NewMockAvailabilityRepository()
	invalidator := &MockInvalidator{}
	svc := NewAvailabilityService(eventRepo, availRepo, invalidator)

	evt := &dto.InventoryEvent{
		Type:          dto.InventoryEventStockChanged,
		EventID:       "evt-1",
		EventSlug:     "festival",
		EventDateID:   strPtr("d1"),
		TicketTypeID:  strPtr("vip"),
		TicketsAmount: intPtr(7),
	}
	if err := svc.ApplyInventoryEvent(context.Background(), evt); err != nil {
		t.Fatalf("ApplyInventoryEvent() error = %v", err)
	}

	signals := availRepo.signals["evt-1"]
	if len(signals) != 1 {
		t.Fatalf("len(signals) = %d, want 1", len(signals))
	}
	if signals[0].TicketsAmount == nil || *signals[0].TicketsAmount != 7 {
		t.Errorf("TicketsAmount = %v, want 7", signals[0].TicketsAmount)
	}
	if len(invalidator.calls) != 1 || invalidator.calls[0] != "evt-1" {
		t.Errorf("invalidator calls = %v, want [evt-1]", invalidator.calls)
	}

	// A second message for the same scope replaces, not duplicates
	evt.TicketsAmount = intPtr(2)
	if err := svc.ApplyInventoryEvent(context.Background(), evt); err != nil {
		t.Fatalf("ApplyInventoryEvent() error = %v", err)
	}
	signals = availRepo.signals["evt-1"]
	if len(signals) != 1 || *signals[0].TicketsAmount != 2 {
		t.Errorf("signals after update = %+v, want single signal with amount 2", signals)
	}
}

func TestAvailabilityService_ApplyInventoryEvent_SoldOutDefaultsToZero(t *testing.T) {
	availRepo := NewMockAvailabilityRepository()
	svc := NewAvailabilityService(NewMockEventRepository(), availRepo, nil)

	evt := &dto.InventoryEvent{
		Type:         dto.InventoryEventSoldOut,
		EventID:      "evt-1",
		EventDateID:  strPtr("d1"),
		TicketTypeID: strPtr("vip"),
	}
	if err := svc.ApplyInventoryEvent(context.Background(), evt); err != nil {
		t.Fatalf("ApplyInventoryEvent() error = %v", err)
	}

	signals := availRepo.signals["evt-1"]
	if signals[0].TicketsAmount == nil || *signals[0].TicketsAmount != 0 {
		t.Errorf("TicketsAmount = %v, want 0 for sold out", signals[0].TicketsAmount)
	}
}

func TestAvailabilityService_ApplyInventoryEvent_Invalid(t *testing.T) {
	svc := NewAvailabilityService(NewMockEventRepository(), NewMockAvailabilityRepository(), nil)

	err := svc.ApplyInventoryEvent(context.Background(), &dto.InventoryEvent{Type: dto.InventoryEventSoldOut})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
