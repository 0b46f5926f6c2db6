package domain

import (
	"time"
)

// Event status constants
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// Event represents an event with its full pricing configuration
type Event struct {
	ID               string        `json:"id"`
	OrganizerID      string        `json:"organizer_id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Description      string        `json:"description"`
	Status           string        `json:"status"`
	IsFree           bool          `json:"is_free"`
	IsClientTaxed    bool          `json:"is_client_taxed"`
	PriceCents       *int64        `json:"price_cents,omitempty"` // flat event price, only when no batches carry prices
	MaxTicketsPerBuy int           `json:"max_tickets_per_buy"`
	Dates            []*EventDate  `json:"dates"`
	Batches          []*EventBatch `json:"batches"`
	TicketTypes      []*TicketType `json:"ticket_types"`
	PublishedAt      *time.Time    `json:"published_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	DeletedAt        *time.Time    `json:"deleted_at,omitempty"`
}

// EventDate represents one occurrence of an event. A date may override the
// batch price, either flat or per ticket type, never both.
type EventDate struct {
	ID               string                 `json:"id"`
	EventID          string                 `json:"event_id"`
	Date             time.Time              `json:"date"`
	HourStart        string                 `json:"hour_start"`
	HourEnd          string                 `json:"hour_end"`
	HasSpecificPrice bool                   `json:"has_specific_price"`
	PriceCents       *int64                 `json:"price_cents,omitempty"`
	TicketTypePrices []*DateTicketTypePrice `json:"ticket_type_prices,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// DateTicketTypePrice is a per-date price override for one ticket type
type DateTicketTypePrice struct {
	ID           string `json:"id"`
	EventDateID  string `json:"event_date_id"`
	TicketTypeID string `json:"ticket_type_id"`
	PriceCents   int64  `json:"price_cents"`
}

// Batch status constants
const (
	BatchStatusActive   = "active"
	BatchStatusEnded    = "ended"
	BatchStatusInactive = "inactive"
)

// EventBatch is a time-bounded tranche of tickets. A batch carries either a
// flat price or per-ticket-type prices, never both.
type EventBatch struct {
	ID          string                  `json:"id"`
	EventID     string                  `json:"event_id"`
	Name        string                  `json:"name"`
	StartDate   time.Time               `json:"start_date"`
	EndDate     *time.Time              `json:"end_date,omitempty"`
	IsActive    bool                    `json:"is_active"`
	PriceCents  *int64                  `json:"price_cents,omitempty"`
	TicketTypes []*BatchTicketTypePrice `json:"ticket_types,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// BatchTicketTypePrice is the price and stock of one ticket type inside a batch
type BatchTicketTypePrice struct {
	ID           string `json:"id"`
	BatchID      string `json:"batch_id"`
	TicketTypeID string `json:"ticket_type_id"`
	PriceCents   int64  `json:"price_cents"`
	Amount       int    `json:"amount"`
}

// TicketType is a named category of ticket (e.g. VIP, regular)
type TicketType struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Status derives the batch lifecycle state at the given instant. A batch past
// its end date reports ended even while the backend flag is still active.
func (b *EventBatch) Status(now time.Time) string {
	if b.EndDate != nil && now.After(*b.EndDate) {
		return BatchStatusEnded
	}
	if !b.IsActive || now.Before(b.StartDate) {
		return BatchStatusInactive
	}
	return BatchStatusActive
}

// BatchByID returns the batch with the given ID, or nil
func (e *Event) BatchByID(id string) *EventBatch {
	for _, b := range e.Batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// DateByID returns the event date with the given ID, or nil
func (e *Event) DateByID(id string) *EventDate {
	for _, d := range e.Dates {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// TicketTypeByID returns the ticket type with the given ID, or nil
func (e *Event) TicketTypeByID(id string) *TicketType {
	for _, t := range e.TicketTypes {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// HasTicketTypes reports whether the event sells named ticket types
func (e *Event) HasTicketTypes() bool {
	return len(e.TicketTypes) > 0
}

// ActiveBatch returns the batch currently on sale, or nil if none
func (e *Event) ActiveBatch(now time.Time) *EventBatch {
	for _, b := range e.Batches {
		if b.Status(now) == BatchStatusActive {
			return b
		}
	}
	return nil
}

// TypePrice returns the per-type price entry for the given ticket type, or nil
func (b *EventBatch) TypePrice(ticketTypeID string) *BatchTicketTypePrice {
	for _, tt := range b.TicketTypes {
		if tt.TicketTypeID == ticketTypeID {
			return tt
		}
	}
	return nil
}

// TypePrice returns the per-date override for the given ticket type, or nil
func (d *EventDate) TypePrice(ticketTypeID string) *DateTicketTypePrice {
	for _, tp := range d.TicketTypePrices {
		if tp.TicketTypeID == ticketTypeID {
			return tp
		}
	}
	return nil
}

// PricingMode identifies which of the mutually exclusive pricing shapes an
// event configuration uses. Deriving it once up front replaces the chain of
// null-checks that would otherwise repeat at every resolution site.
type PricingMode int

const (
	// PricingModeFlat prices every ticket from the batch (or event) flat price
	PricingModeFlat PricingMode = iota
	// PricingModePerTicketType prices tickets per named type, with optional
	// per-date overrides expressed per type
	PricingModePerTicketType
	// PricingModePerDate prices tickets per date with no ticket types
	PricingModePerDate
)

func (m PricingMode) String() string {
	switch m {
	case PricingModePerTicketType:
		return "per_ticket_type"
	case PricingModePerDate:
		return "per_date"
	default:
		return "flat"
	}
}

// Mode derives the event's pricing mode from its configuration
func (e *Event) Mode() PricingMode {
	if e.HasTicketTypes() {
		return PricingModePerTicketType
	}
	for _, d := range e.Dates {
		if d.HasSpecificPrice {
			return PricingModePerDate
		}
	}
	return PricingModeFlat
}
