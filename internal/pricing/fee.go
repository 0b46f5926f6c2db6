package pricing

// Default service fee: 10% of the ticket base price, no minimum.
const (
	DefaultFeeRateBps = 1000
)

// FeeCalculator computes the buyer-facing service fee for a ticket price.
// All amounts are integer cents.
type FeeCalculator struct {
	rateBps     int64
	minFeeCents int64
}

// NewFeeCalculator creates a FeeCalculator. rateBps is the fee rate in basis
// points (1000 = 10%). minFeeCents floors the fee for paid tickets; free
// tickets always carry a zero fee.
func NewFeeCalculator(rateBps, minFeeCents int64) *FeeCalculator {
	if rateBps < 0 {
		rateBps = 0
	}
	if minFeeCents < 0 {
		minFeeCents = 0
	}
	return &FeeCalculator{rateBps: rateBps, minFeeCents: minFeeCents}
}

// DefaultFeeCalculator returns a calculator with the default rate
func DefaultFeeCalculator() *FeeCalculator {
	return NewFeeCalculator(DefaultFeeRateBps, 0)
}

// Fee returns the service fee in cents for the given base price.
//
// isClientTaxed does not suppress the fee: the flag only decides who absorbs
// additional payment-processing costs downstream. The fee itself is charged
// wherever a price is displayed or totaled, so the calculation is identical
// either way.
func (f *FeeCalculator) Fee(basePriceCents int64, isClientTaxed bool) int64 {
	_ = isClientTaxed
	if basePriceCents <= 0 {
		return 0
	}
	// Round half up to the nearest cent.
	fee := (basePriceCents*f.rateBps + 5000) / 10000
	if fee < f.minFeeCents {
		fee = f.minFeeCents
	}
	return fee
}
