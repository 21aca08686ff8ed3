package maps

import (
	"fmt"
	"net/http"
	"strings"

	"freight/internal/config"
	"freight/internal/modules/location"
)

// NewGeocoderByName returns the geocoder selected by cfg.Provider.
// An empty name selects Nominatim.
func NewGeocoderByName(cfg config.GeocodeConfig) (location.Geocoder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "nominatim", "":
		client := &http.Client{Timeout: cfg.Timeout}
		if cfg.Timeout <= 0 {
			client = nil
		}
		return location.NewNominatimGeocoder(cfg.NominatimURL, cfg.UserAgent, client), nil
	case "google":
		return NewGeocodeService(cfg.GoogleKey)
	default:
		return nil, fmt.Errorf("unknown geocoder %q", cfg.Provider)
	}
}
