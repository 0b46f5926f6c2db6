package pricing

import "testing"

func TestFeeCalculator_Fee(t *testing.T) {
	tests := []struct {
		name          string
		rateBps       int64
		minFeeCents   int64
		baseCents     int64
		isClientTaxed bool
		want          int64
	}{
		{
			name:      "ten percent of R$100.00",
			rateBps:   1000,
			baseCents: 10000,
			want:      1000,
		},
		{
			name:      "rounds half up",
			rateBps:   1000,
			baseCents: 105, // 10.5 cents
			want:      11,
		},
		{
			name:      "rounds down below half",
			rateBps:   1000,
			baseCents: 104, // 10.4 cents
			want:      10,
		},
		{
			name:      "free ticket has no fee",
			rateBps:   1000,
			baseCents: 0,
			want:      0,
		},
		{
			name:          "free ticket has no fee even when client taxed",
			rateBps:       1000,
			baseCents:     0,
			isClientTaxed: true,
			want:          0,
		},
		{
			name:          "client taxed flag does not change the fee",
			rateBps:       1000,
			baseCents:     10000,
			isClientTaxed: true,
			want:          1000,
		},
		{
			name:        "minimum fee applies to small paid tickets",
			rateBps:     1000,
			minFeeCents: 250,
			baseCents:   1000,
			want:        250,
		},
		{
			name:        "minimum fee does not apply to free tickets",
			rateBps:     1000,
			minFeeCents: 250,
			baseCents:   0,
			want:        0,
		},
		{
			name:      "negative base treated as free",
			rateBps:   1000,
			baseCents: -500,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFeeCalculator(tt.rateBps, tt.minFeeCents)
			got := f.Fee(tt.baseCents, tt.isClientTaxed)
			if got != tt.want {
				t.Errorf("Fee(%d, %v) = %d, want %d", tt.baseCents, tt.isClientTaxed, got, tt.want)
			}
		})
	}
}

func TestFeeCalculator_Deterministic(t *testing.T) {
	f := DefaultFeeCalculator()
	for i := 0; i < 3; i++ {
		if got := f.Fee(12345, false); got != 1235 {
			t.Fatalf("Fee(12345) = %d on call %d, want 1235", got, i+1)
		}
	}
}
