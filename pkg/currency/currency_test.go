package currency

import "testing"

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{100, "R$ 1,00"},
		{10000, "R$ 100,00"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-2550, "-R$ 25,50"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParseToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"R$ 1.234,56", 123456, false},
		{"1234,56", 123456, false},
		{"1234.56", 123456, false},
		{"1.234", 123400, false}, // thousands separator, not decimals
		{"12.5", 1250, false},
		{"100", 10000, false},
		{"R$ 0,00", 0, false},
		{"-R$ 25,50", -2550, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseToCents(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseToCents(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseToCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	values := []int64{0, 1, 99, 100, 999, 12345, 100000, 123456789, -5000}
	for _, v := range values {
		got, err := ParseToCents(FormatCents(v))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", v, err)
		}
		if got != v {
			t.Errorf("ParseToCents(FormatCents(%d)) = %d", v, got)
		}
	}
}
