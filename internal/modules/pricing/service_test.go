package pricing

import (
	"errors"
	"testing"

	"freight/internal/types"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name        string
		base        float64
		anchorToHub float64
		hubToDest   float64
		want        int64
	}{
		{name: "destination on hub keeps base", base: 100, anchorToHub: 50, hubToDest: 0, want: 100},
		{name: "50km hub, 30km beyond", base: 100, anchorToHub: 50, hubToDest: 30, want: 160},
		{name: "doubling distance doubles rate", base: 2450, anchorToHub: 186, hubToDest: 186, want: 4900},
		{name: "fractional result rounds at boundary", base: 1000, anchorToHub: 300, hubToDest: 1, want: 1003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.base, tt.anchorToHub, tt.hubToDest)
			if err != nil {
				t.Fatalf("Interpolate() error = %v", err)
			}
			if Round(got) != tt.want {
				t.Errorf("Interpolate() = %v (rounded %d), want %d", got, Round(got), tt.want)
			}
		})
	}
}

func TestInterpolate_ZeroMarkupAtHub(t *testing.T) {
	for _, r := range []float64{1, 99.5, 1234.75, 40000} {
		for _, d := range []float64{0.1, 50, 812.3} {
			got, err := Interpolate(r, d, 0)
			if err != nil {
				t.Fatalf("Interpolate(%v, %v, 0) error = %v", r, d, err)
			}
			if got != r {
				t.Errorf("Interpolate(%v, %v, 0) = %v, want %v", r, d, got, r)
			}
		}
	}
}

func TestInterpolate_MonotonicInDestinationDistance(t *testing.T) {
	prev := -1.0
	for d := 0.0; d <= 1000; d += 12.5 {
		got, err := Interpolate(850, 120, d)
		if err != nil {
			t.Fatalf("error at %v: %v", d, err)
		}
		if got < prev {
			t.Fatalf("rate decreased at %vkm: %v < %v", d, got, prev)
		}
		prev = got
	}
}

func TestInterpolate_DegenerateDistance(t *testing.T) {
	if _, err := Interpolate(100, 0, 30); !errors.Is(err, ErrDegenerateDistance) {
		t.Fatalf("expected ErrDegenerateDistance, got %v", err)
	}
}

func TestInterpolateRates(t *testing.T) {
	base := types.TyreRates{Tyre10: 100, Tyre12: 150, Tyre14: 200}
	got, err := InterpolateRates(base, 50, 30)
	if err != nil {
		t.Fatalf("InterpolateRates() error = %v", err)
	}
	want := types.TyreRates{Tyre10: 160, Tyre12: 240, Tyre14: 320}
	if RoundRates(got) != want {
		t.Errorf("InterpolateRates() = %+v, want %+v", got, want)
	}

	if _, err := InterpolateRates(base, 0, 30); !errors.Is(err, ErrDegenerateDistance) {
		t.Fatalf("expected ErrDegenerateDistance, got %v", err)
	}
}

func TestRound(t *testing.T) {
	cases := map[float64]int64{0: 0, 0.49: 0, 0.5: 1, 159.5: 160, 2.4999: 2}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}
