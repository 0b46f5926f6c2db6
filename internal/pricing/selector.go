package pricing

import (
	"github.com/festapass/pricing-service/internal/domain"
)

// PriceKind discriminates the result shapes of price resolution
type PriceKind int

const (
	// PriceScalar is a single resolved unit price
	PriceScalar PriceKind = iota
	// PriceRange is a min/max span across dates with differing overrides
	PriceRange
	// PriceUnresolved signals a configuration hole: the combination is
	// sellable but no precedence level defines a price for it
	PriceUnresolved
)

// Price is the result of resolving a (batch, ticket type, date) combination
type Price struct {
	Kind     PriceKind `json:"kind"`
	Cents    int64     `json:"cents"`
	MinCents int64     `json:"min_cents,omitempty"`
	MaxCents int64     `json:"max_cents,omitempty"`
}

func scalar(cents int64) Price {
	return Price{Kind: PriceScalar, Cents: cents}
}

func unresolved() Price {
	return Price{Kind: PriceUnresolved}
}

// Resolved reports whether the price carries a usable value
func (p Price) Resolved() bool {
	return p.Kind != PriceUnresolved
}

// Query identifies the combination to price. Empty EventDateID means no date
// pinned; empty TicketTypeID means no ticket type requested.
type Query struct {
	BatchID      string
	EventDateID  string
	TicketTypeID string
}

// Resolve returns the unit price for one (batch, ticket type, date)
// combination, walking the precedence order top-down:
//
//  1. free event → 0
//  2. pinned date with a specific price: per-type override first, flat
//     date price when the event has no ticket types
//  3. batch per-ticket-type price
//  4. batch flat price, then the event flat price
//
// A combination that falls through every level resolves to PriceUnresolved;
// it is never defaulted to 0 so that configuration holes surface upstream
// instead of charging the wrong amount.
func Resolve(event *domain.Event, q Query) Price {
	if event.IsFree {
		return scalar(0)
	}

	batch := event.BatchByID(q.BatchID)
	if batch == nil {
		return unresolved()
	}

	if q.EventDateID != "" {
		if date := event.DateByID(q.EventDateID); date != nil && date.HasSpecificPrice {
			if p, ok := resolveDateOverride(event, date, q.TicketTypeID); ok {
				return p
			}
			// No override for this type on this date: fall through to
			// batch-level pricing.
		}
	}

	if q.TicketTypeID != "" && len(batch.TicketTypes) > 0 {
		if tp := batch.TypePrice(q.TicketTypeID); tp != nil {
			return scalar(tp.PriceCents)
		}
		return unresolved()
	}

	if batch.PriceCents != nil {
		return scalar(*batch.PriceCents)
	}
	if event.PriceCents != nil {
		return scalar(*event.PriceCents)
	}
	return unresolved()
}

// resolveDateOverride applies step 2 of the precedence order. The second
// return value is false when the date defines no applicable override and the
// caller must fall through to batch pricing.
func resolveDateOverride(event *domain.Event, date *domain.EventDate, ticketTypeID string) (Price, bool) {
	if event.HasTicketTypes() {
		// Per-date override must be expressed per ticket type when the
		// event sells ticket types.
		if ticketTypeID != "" {
			if tp := date.TypePrice(ticketTypeID); tp != nil {
				return scalar(tp.PriceCents), true
			}
		}
		return Price{}, false
	}
	if len(date.TicketTypePrices) == 0 && date.PriceCents != nil {
		return scalar(*date.PriceCents), true
	}
	return Price{}, false
}

// ResolveAcrossDates prices a ticket type over several candidate dates with
// no single date pinned. Equal resolutions collapse to a scalar; differing
// ones widen to a {min,max} range so the caller can display "from X to Y".
// Any unresolved date poisons the whole result.
func ResolveAcrossDates(event *domain.Event, batchID, ticketTypeID string, eventDateIDs []string) Price {
	if event.IsFree {
		return scalar(0)
	}
	if len(eventDateIDs) == 0 {
		return Resolve(event, Query{BatchID: batchID, TicketTypeID: ticketTypeID})
	}

	var min, max int64
	first := true
	for _, dateID := range eventDateIDs {
		p := Resolve(event, Query{BatchID: batchID, EventDateID: dateID, TicketTypeID: ticketTypeID})
		if !p.Resolved() {
			return unresolved()
		}
		if first {
			min, max = p.Cents, p.Cents
			first = false
			continue
		}
		if p.Cents < min {
			min = p.Cents
		}
		if p.Cents > max {
			max = p.Cents
		}
	}
	if min == max {
		return scalar(min)
	}
	return Price{Kind: PriceRange, MinCents: min, MaxCents: max}
}
