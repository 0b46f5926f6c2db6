package dto

import "time"

// CreateEventRequest represents the request to create a new event with its
// full pricing configuration
type CreateEventRequest struct {
	Name             string                    `json:"name" binding:"required,min=1,max=255"`
	Description      string                    `json:"description"`
	IsFree           bool                      `json:"is_free"`
	IsClientTaxed    bool                      `json:"is_client_taxed"`
	PriceCents       *int64                    `json:"price_cents"`
	MaxTicketsPerBuy int                       `json:"max_tickets_per_buy"`
	TicketTypes      []CreateTicketTypeRequest `json:"ticket_types"`
	Batches          []CreateBatchRequest      `json:"batches" binding:"required,min=1"`
	Dates            []CreateDateRequest       `json:"dates" binding:"required,min=1"`
	OrganizerID      string                    `json:"-"` // Set from context
}

// CreateTicketTypeRequest declares a named ticket type
type CreateTicketTypeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreateBatchRequest declares a sales batch. A batch carries either a flat
// price or per-ticket-type prices, referenced by declared type name.
type CreateBatchRequest struct {
	Name        string                  `json:"name" binding:"required,min=1,max=100"`
	StartDate   time.Time               `json:"start_date" binding:"required"`
	EndDate     *time.Time              `json:"end_date"`
	PriceCents  *int64                  `json:"price_cents"`
	TicketTypes []BatchTypePriceRequest `json:"ticket_types"`
}

// BatchTypePriceRequest prices one ticket type inside a batch
type BatchTypePriceRequest struct {
	TicketTypeName string `json:"ticket_type_name" binding:"required"`
	PriceCents     int64  `json:"price_cents" binding:"gte=0"`
	Amount         int    `json:"amount" binding:"required,gt=0"`
}

// CreateDateRequest declares one occurrence of the event
type CreateDateRequest struct {
	Date             string                 `json:"date" binding:"required"` // YYYY-MM-DD
	HourStart        string                 `json:"hour_start" binding:"required"`
	HourEnd          string                 `json:"hour_end"`
	HasSpecificPrice bool                   `json:"has_specific_price"`
	PriceCents       *int64                 `json:"price_cents"`
	TicketTypePrices []DateTypePriceRequest `json:"ticket_type_prices"`
}

// DateTypePriceRequest overrides the price of one ticket type on one date
type DateTypePriceRequest struct {
	TicketTypeName string `json:"ticket_type_name" binding:"required"`
	PriceCents     int64  `json:"price_cents" binding:"gte=0"`
}

// Validate checks the pricing configuration invariants: flat and per-type
// pricing are mutually exclusive at every level, per-date overrides must be
// per-type when the event sells ticket types, and every referenced type must
// be declared.
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Event name is required"
	}
	if r.MaxTicketsPerBuy < 0 {
		return false, "Max tickets per buy cannot be negative"
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return false, "Event price cannot be negative"
	}
	if len(r.Batches) == 0 {
		return false, "At least one batch is required"
	}
	if len(r.Dates) == 0 {
		return false, "At least one date is required"
	}

	typeNames := make(map[string]bool, len(r.TicketTypes))
	for _, tt := range r.TicketTypes {
		if tt.Name == "" {
			return false, "Ticket type name is required"
		}
		if typeNames[tt.Name] {
			return false, "Duplicate ticket type name: " + tt.Name
		}
		typeNames[tt.Name] = true
	}
	hasTypes := len(r.TicketTypes) > 0

	for _, b := range r.Batches {
		if b.Name == "" {
			return false, "Batch name is required"
		}
		if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
			return false, "Batch end date must be after start date"
		}
		if b.PriceCents != nil && len(b.TicketTypes) > 0 {
			return false, "Batch cannot carry both a flat price and per-ticket-type prices"
		}
		if b.PriceCents != nil && *b.PriceCents < 0 {
			return false, "Batch price cannot be negative"
		}
		if hasTypes && !r.IsFree && len(b.TicketTypes) == 0 {
			return false, "Batch must price every ticket type when the event has ticket types"
		}
		seen := make(map[string]bool, len(b.TicketTypes))
		for _, bt := range b.TicketTypes {
			if !typeNames[bt.TicketTypeName] {
				return false, "Batch references undeclared ticket type: " + bt.TicketTypeName
			}
			if seen[bt.TicketTypeName] {
				return false, "Batch prices ticket type twice: " + bt.TicketTypeName
			}
			seen[bt.TicketTypeName] = true
			if bt.PriceCents < 0 {
				return false, "Ticket type price cannot be negative"
			}
			if bt.Amount <= 0 {
				return false, "Ticket type amount must be greater than 0"
			}
		}
	}

	for _, d := range r.Dates {
		if d.Date == "" {
			return false, "Date is required"
		}
		if !d.HasSpecificPrice {
			if d.PriceCents != nil || len(d.TicketTypePrices) > 0 {
				return false, "Date without specific price cannot carry price overrides"
			}
			continue
		}
		hasFlat := d.PriceCents != nil
		hasPerType := len(d.TicketTypePrices) > 0
		if hasFlat == hasPerType {
			return false, "Date with specific price must define exactly one of flat price or per-type prices"
		}
		if hasTypes && hasFlat {
			return false, "Date override must be per ticket type when the event has ticket types"
		}
		if !hasTypes && hasPerType {
			return false, "Date cannot price ticket types the event does not declare"
		}
		for _, tp := range d.TicketTypePrices {
			if !typeNames[tp.TicketTypeName] {
				return false, "Date references undeclared ticket type: " + tp.TicketTypeName
			}
			if tp.PriceCents < 0 {
				return false, "Date override price cannot be negative"
			}
		}
	}

	return true, ""
}

// UpdateEventRequest represents the request to update an event
type UpdateEventRequest struct {
	Name             string `json:"name" binding:"omitempty,min=1,max=255"`
	Description      string `json:"description"`
	IsClientTaxed    *bool  `json:"is_client_taxed"`
	MaxTicketsPerBuy *int   `json:"max_tickets_per_buy"`
}

// Validate validates the UpdateEventRequest
func (r *UpdateEventRequest) Validate() (bool, string) {
	if r.MaxTicketsPerBuy != nil && *r.MaxTicketsPerBuy < 0 {
		return false, "Max tickets per buy cannot be negative"
	}
	return true, ""
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID               string               `json:"id"`
	OrganizerID      string               `json:"organizer_id"`
	Name             string               `json:"name"`
	Slug             string               `json:"slug"`
	Description      string               `json:"description"`
	Status           string               `json:"status"`
	IsFree           bool                 `json:"is_free"`
	IsClientTaxed    bool                 `json:"is_client_taxed"`
	PriceCents       *int64               `json:"price_cents,omitempty"`
	PricingMode      string               `json:"pricing_mode"`
	MaxTicketsPerBuy int                  `json:"max_tickets_per_buy"`
	TicketTypes      []TicketTypeResponse `json:"ticket_types,omitempty"`
	Batches          []BatchResponse      `json:"batches"`
	Dates            []DateResponse       `json:"dates"`
	PublishedAt      *string              `json:"published_at,omitempty"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
}

// TicketTypeResponse represents one ticket type
type TicketTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BatchResponse represents one batch with its lifecycle status
type BatchResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	StartDate   string                   `json:"start_date"`
	EndDate     *string                  `json:"end_date,omitempty"`
	Status      string                   `json:"status"`
	PriceCents  *int64                   `json:"price_cents,omitempty"`
	TicketTypes []BatchTypePriceResponse `json:"ticket_types,omitempty"`
}

// BatchTypePriceResponse represents one priced ticket type inside a batch
type BatchTypePriceResponse struct {
	TicketTypeID   string `json:"ticket_type_id"`
	TicketTypeName string `json:"ticket_type_name"`
	PriceCents     int64  `json:"price_cents"`
	Amount         int    `json:"amount"`
}

// DateResponse represents one event date
type DateResponse struct {
	ID               string                  `json:"id"`
	Date             string                  `json:"date"`
	HourStart        string                  `json:"hour_start"`
	HourEnd          string                  `json:"hour_end,omitempty"`
	HasSpecificPrice bool                    `json:"has_specific_price"`
	PriceCents       *int64                  `json:"price_cents,omitempty"`
	TicketTypePrices []DateTypePriceResponse `json:"ticket_type_prices,omitempty"`
}

// DateTypePriceResponse represents one per-date type override
type DateTypePriceResponse struct {
	TicketTypeID   string `json:"ticket_type_id"`
	TicketTypeName string `json:"ticket_type_name"`
	PriceCents     int64  `json:"price_cents"`
}

// EventListFilter represents filters for listing events
type EventListFilter struct {
	Status      string `form:"status"`
	OrganizerID string `form:"-"`
	Search      string `form:"search"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

// SetDefaults sets default values for pagination
func (f *EventListFilter) SetDefaults() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// EventListResponse represents a list of events
type EventListResponse struct {
	Events []*EventResponse `json:"events"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
