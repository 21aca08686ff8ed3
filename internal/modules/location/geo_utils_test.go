package location

import (
	"math"
	"testing"

	"freight/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Coordinate
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Coordinate{Lat: 22.7196, Lon: 75.8577},
			b:         types.Coordinate{Lat: 22.7196, Lon: 75.8577},
			wantKm:    0,
			tolerance: 0,
		},
		{
			name:      "Indore to Bhopal (~170km)",
			a:         types.Coordinate{Lat: 22.7196, Lon: 75.8577},
			b:         types.Coordinate{Lat: 23.2599, Lon: 77.4126},
			wantKm:    170,
			tolerance: 15,
		},
		{
			name:      "Mumbai to Delhi (~1150km)",
			a:         types.Coordinate{Lat: 19.0760, Lon: 72.8777},
			b:         types.Coordinate{Lat: 28.7041, Lon: 77.1025},
			wantKm:    1150,
			tolerance: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("Distance() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	points := []types.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: -179.9},
		{Lat: 23.2599, Lon: 77.4126},
	}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]types.Coordinate{
		{{Lat: 25.0, Lon: 121.0}, {Lat: 26.0, Lon: 122.0}},
		{{Lat: 22.7196, Lon: 75.8577}, {Lat: 23.2599, Lon: 77.4126}},
		{{Lat: -10, Lon: 170}, {Lat: 10, Lon: -170}},
	}
	for _, p := range pairs {
		d1 := Distance(p[0], p[1])
		d2 := Distance(p[1], p[0])
		if d1 != d2 {
			t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
		}
	}
}

func TestDistance_AlongMeridian(t *testing.T) {
	// Along a meridian the great-circle distance is R·Δlat.
	deg := 1.0
	want := earthRadiusKm * degreesToRadians(deg)
	got := Distance(types.Coordinate{Lat: 10, Lon: 30}, types.Coordinate{Lat: 11, Lon: 30})
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("Distance() = %f, want %f", got, want)
	}
}
