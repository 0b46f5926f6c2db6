package dto

// QuoteLineRequest is one cell of the buyer's selection. Empty date or type
// means the dimension is not used by the event's pricing mode.
type QuoteLineRequest struct {
	EventDateID  string `json:"event_date_id"`
	TicketTypeID string `json:"ticket_type_id"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
}

// QuoteRequest asks for an order total over a set of selections. EventSlug is
// only required on the top-level quote route; the nested route takes the slug
// from the path.
type QuoteRequest struct {
	EventSlug string             `json:"event_slug"`
	BatchID   string             `json:"batch_id" binding:"required"`
	Lines     []QuoteLineRequest `json:"lines" binding:"required,min=1"`
}

// Validate validates the QuoteRequest
func (r *QuoteRequest) Validate() (bool, string) {
	if r.BatchID == "" {
		return false, "Batch ID is required"
	}
	if len(r.Lines) == 0 {
		return false, "At least one selection line is required"
	}
	seen := make(map[QuoteLineRequest]bool, len(r.Lines))
	for _, l := range r.Lines {
		if l.Quantity <= 0 {
			return false, "Quantity must be greater than 0"
		}
		key := QuoteLineRequest{EventDateID: l.EventDateID, TicketTypeID: l.TicketTypeID}
		if seen[key] {
			return false, "Duplicate selection line"
		}
		seen[key] = true
	}
	return true, ""
}

// QuoteLineResponse is one priced selection cell with its clamp outcome
type QuoteLineResponse struct {
	EventDateID    string `json:"event_date_id,omitempty"`
	TicketTypeID   string `json:"ticket_type_id,omitempty"`
	TicketTypeName string `json:"ticket_type_name,omitempty"`
	Requested      int    `json:"requested"`
	Applied        int    `json:"applied"`
	WasClamped     bool   `json:"was_clamped"`
	SoldOut        bool   `json:"sold_out"`
	IsLastTickets  bool   `json:"is_last_tickets"`
	UnitCents      int64  `json:"unit_cents"`
	UnitDisplay    string `json:"unit_display"`
	FeeCents       int64  `json:"fee_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// QuoteResponse is a priced order over the requested selections
type QuoteResponse struct {
	EventID       string              `json:"event_id"`
	BatchID       string              `json:"batch_id"`
	IsFree        bool                `json:"is_free"`
	IsClientTaxed bool                `json:"is_client_taxed"`
	Lines         []QuoteLineResponse `json:"lines"`
	SubtotalCents int64               `json:"subtotal_cents"`
	FeeCents      int64               `json:"fee_cents"`
	TotalCents    int64               `json:"total_cents"`
	TotalDisplay  string              `json:"total_display"`
	Checkout      *CheckoutPayload    `json:"checkout"`
}

// CheckoutPayload is the structure handed to the checkout service
type CheckoutPayload struct {
	BatchID       string               `json:"batch_id"`
	TicketTypes   []CheckoutTicketType `json:"ticket_types"`
	PriceCents    int64                `json:"price"`
	IsClientTaxed bool                 `json:"is_client_taxed"`
	IsFree        bool                 `json:"is_free"`
}

// CheckoutTicketType aggregates one ticket type across the selected days
type CheckoutTicketType struct {
	TicketTypeID   string   `json:"ticket_type_id,omitempty"`
	TicketTypeName string   `json:"ticket_type_name,omitempty"`
	PriceCents     int64    `json:"price"`
	Quantity       int      `json:"quantity"`
	Days           []string `json:"days,omitempty"`
}

// PricingTableResponse is the resolved price per (date, ticket type) for
// display on the event page
type PricingTableResponse struct {
	EventID     string              `json:"event_id"`
	BatchID     string              `json:"batch_id"`
	BatchName   string              `json:"batch_name"`
	PricingMode string              `json:"pricing_mode"`
	Entries     []PricingTableEntry `json:"entries"`
}

// PricingTableEntry is one resolved cell of the pricing table. Kind is
// "scalar", "range" or "unresolved"; unresolved cells render as "price not
// defined" rather than zero.
type PricingTableEntry struct {
	EventDateID    string `json:"event_date_id,omitempty"`
	TicketTypeID   string `json:"ticket_type_id,omitempty"`
	TicketTypeName string `json:"ticket_type_name,omitempty"`
	Kind           string `json:"kind"`
	PriceCents     int64  `json:"price_cents,omitempty"`
	MinCents       int64  `json:"min_cents,omitempty"`
	MaxCents       int64  `json:"max_cents,omitempty"`
	Display        string `json:"display"`
}

// AvailabilityResponse is the current availability signal list for an event
type AvailabilityResponse struct {
	EventID string               `json:"event_id"`
	Signals []AvailabilitySignal `json:"signals"`
}

// AvailabilitySignal mirrors one availability record
type AvailabilitySignal struct {
	EventDateID   *string `json:"event_date_id,omitempty"`
	TicketTypeID  *string `json:"ticket_type_id,omitempty"`
	TicketsAmount *int    `json:"tickets_amount,omitempty"`
	IsLastTickets bool    `json:"is_last_tickets"`
}
