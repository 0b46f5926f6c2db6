package domain

import "time"

// AvailabilitySignal is a backend-computed remaining-stock record for one
// (event date, ticket type) combination. A nil EventDateID or TicketTypeID
// means the signal applies at the aggregate level for that dimension; both
// nil is a whole-event signal.
type AvailabilitySignal struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	EventDateID   *string    `json:"event_date_id,omitempty"`
	TicketTypeID  *string    `json:"ticket_type_id,omitempty"`
	TicketsAmount *int       `json:"tickets_amount,omitempty"`
	IsLastTickets bool       `json:"is_last_tickets"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// Matches reports whether the signal is the exact record for the given
// (date, type) pair. Matching is literal on the nil sentinel: a nil field
// only matches a nil lookup, there is no wildcard fallback here.
func (s *AvailabilitySignal) Matches(eventDateID, ticketTypeID *string) bool {
	return strPtrEqual(s.EventDateID, eventDateID) && strPtrEqual(s.TicketTypeID, ticketTypeID)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
