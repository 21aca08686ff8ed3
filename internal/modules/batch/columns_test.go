package batch

import (
	"errors"
	"strings"
	"testing"
)

func TestDetectRateColumns(t *testing.T) {
	headers := []string{"State", "Destination", "Freight Rate (10 Tyre)", "Freight-Rate 12 tyre", "FREIGHT RATE: 14-TYRE ₹"}
	cols, err := detectRateColumns(headers)
	if err != nil {
		t.Fatalf("detectRateColumns: %v", err)
	}
	want := map[int]string{10: headers[2], 12: headers[3], 14: headers[4]}
	for size, h := range want {
		if cols[size] != h {
			t.Errorf("size %d column = %q, want %q", size, cols[size], h)
		}
	}
}

func TestDetectRateColumns_FirstMatchWins(t *testing.T) {
	headers := []string{"Freight Rate 10 Tyre", "Freight Rate 10 Tyre (old)", "Freight Rate 12", "Freight Rate 14"}
	cols, err := detectRateColumns(headers)
	if err != nil {
		t.Fatalf("detectRateColumns: %v", err)
	}
	if cols[10] != "Freight Rate 10 Tyre" {
		t.Errorf("size 10 column = %q", cols[10])
	}
}

func TestDetectRateColumns_Missing(t *testing.T) {
	headers := []string{"State", "Destination", "Freight Rate 10 Tyre", "Rate 12 Tyre", "Freight Rate 14 Tyre"}
	_, err := detectRateColumns(headers)
	if !errors.Is(err, ErrRateColumnsNotDetected) {
		t.Fatalf("error = %v, want ErrRateColumnsNotDetected", err)
	}
	if !strings.Contains(err.Error(), "Rate 12 Tyre") || !strings.Contains(err.Error(), "Destination") {
		t.Errorf("error %q should list the headers", err.Error())
	}
}

func TestNormalizeHeader(t *testing.T) {
	if got := normalizeHeader(" Freight Rate (10-Tyre) ₹ "); got != "freightrate10tyre" {
		t.Errorf("normalizeHeader = %q", got)
	}
}

func TestParseCellNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{"1200", 1200},
		{"₹ 1,250.50", 1250.5},
		{"Rs 900/-", 900},
		{" -45 ", -45},
		{"", 0},
		{"N/A", 0},
		{"-", 0},
		{"12.5.3", 12.5},
		{float64(780), 780},
		{3, 3},
		{nil, 0},
		{true, 0},
	}
	for _, tc := range cases {
		if got := parseCellNumber(tc.in); got != tc.want {
			t.Errorf("parseCellNumber(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
