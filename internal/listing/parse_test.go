package listing

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"1234.56", 1234.56},
		{"150.000,00", 150000},
		{"120", 120},
		{"  42 m²", 42},
		{"1,5", 1.5},
		{"-5", -5},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"abc,5", 0},
		{"NaN", 0},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCEP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"123", "123"},
		{"12345", "12345"},
		{"123456", "12345-6"},
		{"17250000", "17250-000"},
		{"17250-000", "17250-000"},
		{"CEP 17.250-000 (centro)", "17250-000"},
		{"1725000099", "17250-000"},
	}

	for _, tt := range tests {
		if got := FormatCEP(tt.in); got != tt.want {
			t.Errorf("FormatCEP(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCEPIdempotent(t *testing.T) {
	inputs := []string{"", "1", "12345", "123456", "17250000", "17250-000", "x1y2z3-45678901", "abc"}
	for _, in := range inputs {
		once := FormatCEP(in)
		if twice := FormatCEP(once); twice != once {
			t.Errorf("FormatCEP not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 2 ", 2},
		{"2.7", 2},
		{"", 0},
		{"dois", 0},
		{"-1", 0},
		{"1e30", 0},
		{"9.3e18", 0},
		{"1e19", 0},
		{"1e6", 1000000},
	}

	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
