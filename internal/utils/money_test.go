package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{164.25, 164.25},
		{164.2549, 164.25},
		{164.255, 164.26},
		{0.005, 0.01},
		{-0.005, -0.01},
		{4380 * 0.0375, 164.25},
		{0, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatAED(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4544.25, "AED 4,544.25"},
		{1245, "AED 1,245.00"},
		{0, "AED 0.00"},
		{999.999, "AED 1,000.00"},
		{1234567.89, "AED 1,234,567.89"},
		{-45.5, "-AED 45.50"},
	}
	for _, c := range cases {
		if got := FormatAED(c.in); got != c.want {
			t.Errorf("FormatAED(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSafeNumber(t *testing.T) {
	if got := SafeNumber(math.NaN()); got != 0 {
		t.Errorf("SafeNumber(NaN) = %v, want 0", got)
	}
	if got := SafeNumber(math.Inf(1)); got != 0 {
		t.Errorf("SafeNumber(+Inf) = %v, want 0", got)
	}
	if got := SafeNumber(-10); got != 0 {
		t.Errorf("SafeNumber(-10) = %v, want 0", got)
	}
	if got := SafeNumber(99.5); got != 99.5 {
		t.Errorf("SafeNumber(99.5) = %v, want 99.5", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(500); got != "500.00" {
		t.Errorf("FormatMoney(500) = %q, want %q", got, "500.00")
	}
	if got := FormatMoney(164.254); got != "164.25" {
		t.Errorf("FormatMoney(164.254) = %q, want %q", got, "164.25")
	}
}
