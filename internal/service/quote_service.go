package service

import (
	"context"
	"fmt"
	"time"

	"github.com/festapass/pricing-service/internal/domain"
	"github.com/festapass/pricing-service/internal/dto"
	"github.com/festapass/pricing-service/internal/pricing"
	"github.com/festapass/pricing-service/internal/repository"
	"github.com/festapass/pricing-service/pkg/currency"
)

// quoteService implements QuoteService
type quoteService struct {
	eventRepo        repository.EventRepository
	availRepo        repository.AvailabilityRepository
	fees             *pricing.FeeCalculator
	defaultMaxPerBuy int
	now              func() time.Time
}

// NewQuoteService creates a new QuoteService. defaultMaxPerBuy caps the
// per-line quantity for events that do not set their own limit; zero or
// negative means uncapped.
func NewQuoteService(eventRepo repository.EventRepository, availRepo repository.AvailabilityRepository, fees *pricing.FeeCalculator, defaultMaxPerBuy int) QuoteService {
	return &quoteService{
		eventRepo:        eventRepo,
		availRepo:        availRepo,
		fees:             fees,
		defaultMaxPerBuy: defaultMaxPerBuy,
		now:              time.Now,
	}
}

// Quote prices a buyer's selection against the event's pricing configuration
// and current availability. Quantities are clamped per line before pricing, so
// the returned totals are always purchasable as quoted.
func (s *quoteService) Quote(ctx context.Context, slug string, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	batch := event.BatchByID(req.BatchID)
	if batch == nil {
		return nil, domain.ErrBatchNotFound
	}
	if batch.Status(s.now()) != domain.BatchStatusActive {
		return nil, domain.ErrBatchNotOnSale
	}

	for _, l := range req.Lines {
		if l.EventDateID != "" && event.DateByID(l.EventDateID) == nil {
			return nil, domain.ErrDateNotFound
		}
		if l.TicketTypeID != "" && event.TicketTypeByID(l.TicketTypeID) == nil {
			return nil, domain.ErrTicketTypeNotFound
		}
	}

	signals, err := s.availRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	limit := event.MaxTicketsPerBuy
	if limit <= 0 {
		limit = s.defaultMaxPerBuy
	}

	sel := pricing.Selection{}
	clamps := make(map[pricing.SelectionKey]pricing.ClampResult, len(req.Lines))
	for _, l := range req.Lines {
		key := pricing.SelectionKey{EventDateID: l.EventDateID, TicketTypeID: l.TicketTypeID}
		cr := pricing.Clamp(signals, l.Quantity, optionalID(l.EventDateID), optionalID(l.TicketTypeID), limit)
		clamps[key] = cr
		sel[key] = cr.Applied
	}

	totals, err := pricing.ComputeTotal(event, req.BatchID, sel, s.fees)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuoteResponse{
		EventID:       event.ID,
		BatchID:       req.BatchID,
		IsFree:        event.IsFree,
		IsClientTaxed: event.IsClientTaxed,
		SubtotalCents: totals.SubtotalCents,
		FeeCents:      totals.FeeCents,
		TotalCents:    totals.TotalCents,
		TotalDisplay:  currency.FormatCents(totals.TotalCents),
	}

	for _, l := range req.Lines {
		key := pricing.SelectionKey{EventDateID: l.EventDateID, TicketTypeID: l.TicketTypeID}
		cr := clamps[key]
		line := dto.QuoteLineResponse{
			EventDateID:   l.EventDateID,
			TicketTypeID:  l.TicketTypeID,
			Requested:     l.Quantity,
			Applied:       cr.Applied,
			WasClamped:    cr.WasClamped,
			SoldOut:       cr.SoldOut,
			IsLastTickets: cr.IsLastTickets,
		}
		if tt := event.TicketTypeByID(l.TicketTypeID); tt != nil {
			line.TicketTypeName = tt.Name
		}
		p := pricing.Resolve(event, pricing.Query{
			BatchID:      req.BatchID,
			EventDateID:  l.EventDateID,
			TicketTypeID: l.TicketTypeID,
		})
		if p.Resolved() {
			fee := s.fees.Fee(p.Cents, event.IsClientTaxed)
			line.UnitCents = p.Cents
			line.FeeCents = fee
			line.UnitDisplay = currency.FormatCents(p.Cents + fee)
			line.TotalCents = (p.Cents + fee) * int64(cr.Applied)
		}
		resp.Lines = append(resp.Lines, line)
	}

	resp.Checkout = s.buildCheckout(event, req.BatchID, resp.Lines, totals.TotalCents)

	return resp, nil
}

// buildCheckout folds the priced lines into the payload the checkout service
// consumes: one entry per (ticket type, unit price), quantities summed and
// the selected dates listed per entry.
func (s *quoteService) buildCheckout(event *domain.Event, batchID string, lines []dto.QuoteLineResponse, totalCents int64) *dto.CheckoutPayload {
	payload := &dto.CheckoutPayload{
		BatchID:       batchID,
		PriceCents:    totalCents,
		IsClientTaxed: event.IsClientTaxed,
		IsFree:        event.IsFree,
	}

	type groupKey struct {
		typeID string
		unit   int64
	}
	index := make(map[groupKey]int)
	for _, l := range lines {
		if l.Applied <= 0 {
			continue
		}
		key := groupKey{typeID: l.TicketTypeID, unit: l.UnitCents + l.FeeCents}
		i, ok := index[key]
		if !ok {
			i = len(payload.TicketTypes)
			index[key] = i
			payload.TicketTypes = append(payload.TicketTypes, dto.CheckoutTicketType{
				TicketTypeID:   l.TicketTypeID,
				TicketTypeName: l.TicketTypeName,
				PriceCents:     l.UnitCents + l.FeeCents,
			})
		}
		payload.TicketTypes[i].Quantity += l.Applied
		if l.EventDateID != "" {
			payload.TicketTypes[i].Days = append(payload.TicketTypes[i].Days, l.EventDateID)
		}
	}

	return payload
}

// PricingTable resolves the buyer-facing price for every sellable cell of the
// batch. An empty batchID selects the batch currently on sale. Displayed
// amounts include the service fee.
func (s *quoteService) PricingTable(ctx context.Context, slug, batchID string) (*dto.PricingTableResponse, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	var batch *domain.EventBatch
	if batchID != "" {
		if batch = event.BatchByID(batchID); batch == nil {
			return nil, domain.ErrBatchNotFound
		}
	} else {
		if batch = event.ActiveBatch(s.now()); batch == nil {
			return nil, domain.ErrBatchNotOnSale
		}
	}

	mode := event.Mode()
	resp := &dto.PricingTableResponse{
		EventID:     event.ID,
		BatchID:     batch.ID,
		BatchName:   batch.Name,
		PricingMode: mode.String(),
	}

	switch mode {
	case domain.PricingModePerTicketType:
		dateIDs := make([]string, 0, len(event.Dates))
		for _, d := range event.Dates {
			dateIDs = append(dateIDs, d.ID)
		}
		for _, tt := range event.TicketTypes {
			p := pricing.ResolveAcrossDates(event, batch.ID, tt.ID, dateIDs)
			entry := s.tableEntry(p, event.IsClientTaxed)
			entry.TicketTypeID = tt.ID
			entry.TicketTypeName = tt.Name
			resp.Entries = append(resp.Entries, entry)
		}
	case domain.PricingModePerDate:
		for _, d := range event.Dates {
			p := pricing.Resolve(event, pricing.Query{BatchID: batch.ID, EventDateID: d.ID})
			entry := s.tableEntry(p, event.IsClientTaxed)
			entry.EventDateID = d.ID
			resp.Entries = append(resp.Entries, entry)
		}
	default:
		p := pricing.Resolve(event, pricing.Query{BatchID: batch.ID})
		resp.Entries = append(resp.Entries, s.tableEntry(p, event.IsClientTaxed))
	}

	return resp, nil
}

// tableEntry renders one resolved price with the service fee folded in
func (s *quoteService) tableEntry(p pricing.Price, isClientTaxed bool) dto.PricingTableEntry {
	switch p.Kind {
	case pricing.PriceScalar:
		total := p.Cents + s.fees.Fee(p.Cents, isClientTaxed)
		return dto.PricingTableEntry{
			Kind:       "scalar",
			PriceCents: total,
			Display:    currency.FormatCents(total),
		}
	case pricing.PriceRange:
		min := p.MinCents + s.fees.Fee(p.MinCents, isClientTaxed)
		max := p.MaxCents + s.fees.Fee(p.MaxCents, isClientTaxed)
		return dto.PricingTableEntry{
			Kind:     "range",
			MinCents: min,
			MaxCents: max,
			Display:  currency.FormatCents(min) + " - " + currency.FormatCents(max),
		}
	default:
		return dto.PricingTableEntry{
			Kind:    "unresolved",
			Display: "price not defined",
		}
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
