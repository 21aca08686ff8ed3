package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"freight/internal/modules/location"
	"freight/internal/types"
)

// GeocodeService resolves place strings through the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API Key.
// Extra options (for example maps.WithBaseURL) are passed to the client.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

func (s *GeocodeService) Name() string { return "google" }

// Geocode returns the first result. Results are biased to India.
func (s *GeocodeService) Geocode(ctx context.Context, query string) (location.Match, error) {
	r := &maps.GeocodingRequest{
		Address: query,
		Region:  "in",
	}

	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		// The client reports ZERO_RESULTS as a status error.
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return location.Match{}, location.ErrGeoNotFound
		}
		return location.Match{}, fmt.Errorf("%w: geocoding api error: %v", location.ErrGeoTransport, err)
	}
	if len(results) == 0 {
		return location.Match{}, location.ErrGeoNotFound
	}

	res := results[0]
	return location.Match{
		Position: types.Coordinate{
			Lat: res.Geometry.Location.Lat,
			Lon: res.Geometry.Location.Lng,
		},
		Postcode: postalCode(res.AddressComponents),
	}, nil
}

func postalCode(components []maps.AddressComponent) string {
	for _, c := range components {
		for _, t := range c.Types {
			if t == "postal_code" {
				return c.LongName
			}
		}
	}
	return ""
}
