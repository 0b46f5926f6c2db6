package pricing

import (
	"testing"

	"github.com/festapass/pricing-service/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestClamp(t *testing.T) {
	signals := []*domain.AvailabilitySignal{
		{EventID: "event-1", EventDateID: strPtr("d1"), TicketsAmount: intPtr(3), IsLastTickets: true},
		{EventID: "event-1", EventDateID: strPtr("d2"), TicketTypeID: strPtr("vip"), TicketsAmount: intPtr(0)},
		{EventID: "event-1", EventDateID: strPtr("d3"), TicketTypeID: strPtr("ga")},
		{EventID: "event-1", TicketsAmount: intPtr(50)},
	}

	tests := []struct {
		name          string
		requested     int
		eventDateID   *string
		ticketTypeID  *string
		fallbackLimit int
		want          ClampResult
	}{
		{
			name:          "clamps to signal amount",
			requested:     5,
			eventDateID:   strPtr("d1"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 3, WasClamped: true, IsLastTickets: true},
		},
		{
			name:          "under the signal amount passes through",
			requested:     2,
			eventDateID:   strPtr("d1"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 2, IsLastTickets: true},
		},
		{
			name:          "no matching signal falls back to limit",
			requested:     7,
			eventDateID:   strPtr("d9"),
			ticketTypeID:  strPtr("t9"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 7},
		},
		{
			name:          "fallback limit clamps",
			requested:     12,
			eventDateID:   strPtr("d9"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 10, WasClamped: true},
		},
		{
			name:          "zero tickets means sold out not capped",
			requested:     2,
			eventDateID:   strPtr("d2"),
			ticketTypeID:  strPtr("vip"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 0, WasClamped: true, SoldOut: true},
		},
		{
			name:          "signal without amount defers to fallback",
			requested:     8,
			eventDateID:   strPtr("d3"),
			ticketTypeID:  strPtr("ga"),
			fallbackLimit: 6,
			want:          ClampResult{Applied: 6, WasClamped: true},
		},
		{
			name:          "nil sentinel matches only the aggregate record",
			requested:     60,
			fallbackLimit: 100,
			want:          ClampResult{Applied: 50, WasClamped: true},
		},
		{
			name:          "partial nil does not wildcard match",
			requested:     5,
			eventDateID:   strPtr("d1"),
			ticketTypeID:  strPtr("vip"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 5},
		},
		{
			name:          "negative request never goes below zero",
			requested:     -4,
			eventDateID:   strPtr("d1"),
			fallbackLimit: 10,
			want:          ClampResult{Applied: 0, IsLastTickets: true},
		},
		{
			name:      "no signal and no fallback is uncapped",
			requested: 999,
			want:      ClampResult{Applied: 999},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(signals, tt.requested, tt.eventDateID, tt.ticketTypeID, tt.fallbackLimit)
			if got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
