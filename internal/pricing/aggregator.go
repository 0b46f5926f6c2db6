package pricing

import (
	"sort"

	"github.com/festapass/pricing-service/internal/domain"
)

// SelectionKey addresses one cell of the buyer's in-progress selection.
// Empty EventDateID or TicketTypeID means that dimension is not used by the
// event's pricing mode, so the one map covers all three selection shapes
// (date×type, type-only, date-only).
type SelectionKey struct {
	EventDateID  string
	TicketTypeID string
}

// Selection maps selection cells to requested quantities
type Selection map[SelectionKey]int

// Line is one priced selection cell inside an order total
type Line struct {
	EventDateID  string `json:"event_date_id,omitempty"`
	TicketTypeID string `json:"ticket_type_id,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitCents    int64  `json:"unit_cents"`
	FeeCents     int64  `json:"fee_cents"`
	TotalCents   int64  `json:"total_cents"`
}

// Totals is the aggregate of a priced selection
type Totals struct {
	SubtotalCents int64  `json:"subtotal_cents"`
	FeeCents      int64  `json:"fee_cents"`
	TotalCents    int64  `json:"total_cents"`
	Lines         []Line `json:"lines"`
}

// ComputeTotal prices every active cell of the selection and sums unit price
// plus fee times quantity. Cells with quantity <= 0 are skipped. Iteration is
// keyed in sorted order so the result, including line order, is independent
// of map insertion order.
//
// Returns domain.ErrPriceNotConfigured when any active cell resolves to an
// unresolved price.
func ComputeTotal(event *domain.Event, batchID string, sel Selection, fees *FeeCalculator) (*Totals, error) {
	keys := make([]SelectionKey, 0, len(sel))
	for k, qty := range sel {
		if qty <= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].EventDateID != keys[j].EventDateID {
			return keys[i].EventDateID < keys[j].EventDateID
		}
		return keys[i].TicketTypeID < keys[j].TicketTypeID
	})

	totals := &Totals{Lines: make([]Line, 0, len(keys))}
	for _, k := range keys {
		qty := sel[k]
		p := Resolve(event, Query{
			BatchID:      batchID,
			EventDateID:  k.EventDateID,
			TicketTypeID: k.TicketTypeID,
		})
		if !p.Resolved() {
			return nil, domain.ErrPriceNotConfigured
		}
		fee := fees.Fee(p.Cents, event.IsClientTaxed)
		line := Line{
			EventDateID:  k.EventDateID,
			TicketTypeID: k.TicketTypeID,
			Quantity:     qty,
			UnitCents:    p.Cents,
			FeeCents:     fee,
			TotalCents:   (p.Cents + fee) * int64(qty),
		}
		totals.SubtotalCents += p.Cents * int64(qty)
		totals.FeeCents += fee * int64(qty)
		totals.TotalCents += line.TotalCents
		totals.Lines = append(totals.Lines, line)
	}
	return totals, nil
}
