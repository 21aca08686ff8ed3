package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"

	"freight/internal/modules/location"
)

func newTestService(t *testing.T, body string) *GeocodeService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewGeocodeService("AIzaTestKey", maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewGeocodeService: %v", err)
	}
	return svc
}

func TestGeocode_FirstResult(t *testing.T) {
	svc := newTestService(t, `{
		"status": "OK",
		"results": [{
			"geometry": {"location": {"lat": 22.7196, "lng": 75.8577}},
			"address_components": [
				{"long_name": "Indore", "short_name": "Indore", "types": ["locality"]},
				{"long_name": "452001", "short_name": "452001", "types": ["postal_code"]}
			]
		}]
	}`)

	m, err := svc.Geocode(context.Background(), "Indore, Madhya Pradesh, India")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if m.Position.Lat != 22.7196 || m.Position.Lon != 75.8577 {
		t.Errorf("unexpected position %v", m.Position)
	}
	if m.Postcode != "452001" {
		t.Errorf("postcode = %q", m.Postcode)
	}
}

func TestGeocode_ZeroResultsIsNotFound(t *testing.T) {
	svc := newTestService(t, `{"status": "ZERO_RESULTS", "results": []}`)
	_, err := svc.Geocode(context.Background(), "Atlantis, India")
	if !errors.Is(err, location.ErrGeoNotFound) {
		t.Fatalf("expected ErrGeoNotFound, got %v", err)
	}
}

func TestGeocode_DeniedIsTransport(t *testing.T) {
	svc := newTestService(t, `{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`)
	_, err := svc.Geocode(context.Background(), "Indore, India")
	if !errors.Is(err, location.ErrGeoTransport) {
		t.Fatalf("expected ErrGeoTransport, got %v", err)
	}
}
