package dto

import "time"

// Inventory event types published by the ticketing backend
const (
	InventoryEventStockChanged = "inventory.stock_changed"
	InventoryEventSoldOut      = "inventory.sold_out"
	InventoryEventLastTickets  = "inventory.last_tickets"
)

// InventoryEvent is one message from the inventory topic. A nil EventDateID
// or TicketTypeID scopes the signal to the aggregate level for that dimension.
type InventoryEvent struct {
	Type          string    `json:"type"`
	EventID       string    `json:"event_id"`
	EventSlug     string    `json:"event_slug"`
	EventDateID   *string   `json:"event_date_id,omitempty"`
	TicketTypeID  *string   `json:"ticket_type_id,omitempty"`
	TicketsAmount *int      `json:"tickets_amount,omitempty"`
	IsLastTickets bool      `json:"is_last_tickets"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Validate validates the InventoryEvent
func (e *InventoryEvent) Validate() (bool, string) {
	if e.EventID == "" {
		return false, "Event ID is required"
	}
	if e.Type == "" {
		return false, "Event type is required"
	}
	if e.TicketsAmount != nil && *e.TicketsAmount < 0 {
		return false, "Tickets amount cannot be negative"
	}
	return true, ""
}
