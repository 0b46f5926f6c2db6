package pricing

import (
	"github.com/festapass/pricing-service/internal/domain"
)

// ClampResult reports the outcome of bounding a requested quantity
type ClampResult struct {
	Applied       int  `json:"applied"`
	WasClamped    bool `json:"was_clamped"`
	IsLastTickets bool `json:"is_last_tickets"`
	// SoldOut is set when the matched signal says zero tickets remain; the
	// option must be presented as unavailable, not merely capped.
	SoldOut bool `json:"sold_out"`
}

// Clamp bounds a requested quantity against the availability signal for the
// exact (eventDateID, ticketTypeID) pair. Nil fields match only nil — the nil
// sentinel means "aggregate level", not a wildcard. When the matched signal
// carries no tickets amount, or no signal matches, fallbackLimit applies
// (fallbackLimit <= 0 means uncapped). The result never goes below zero.
func Clamp(signals []*domain.AvailabilitySignal, requested int, eventDateID, ticketTypeID *string, fallbackLimit int) ClampResult {
	if requested < 0 {
		requested = 0
	}

	max := fallbackLimit
	capped := fallbackLimit > 0
	res := ClampResult{}

	for _, s := range signals {
		if s == nil || !s.Matches(eventDateID, ticketTypeID) {
			continue
		}
		res.IsLastTickets = s.IsLastTickets
		if s.TicketsAmount != nil {
			max = *s.TicketsAmount
			capped = true
		}
		break
	}

	if !capped {
		res.Applied = requested
		return res
	}
	if max <= 0 {
		res.SoldOut = true
		res.WasClamped = requested > 0
		return res
	}
	if requested > max {
		res.Applied = max
		res.WasClamped = true
		return res
	}
	res.Applied = requested
	return res
}
