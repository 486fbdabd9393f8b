package eodhd

import "testing"

func TestTicker(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"7203.T", "7203.TSE"},
		{"6758.T", "6758.TSE"},
		{"AAPL.US", "AAPL.US"},
		{"7203", "7203"},
	}
	for _, tt := range tests {
		if got := Ticker(tt.in); got != tt.want {
			t.Errorf("Ticker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
