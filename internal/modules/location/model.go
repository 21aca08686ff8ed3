// README: Geocoding match and error kinds shared by resolver and providers.
package location

import (
	"context"
	"errors"

	"freight/internal/types"
)

var (
	// ErrGeoNotFound means the provider answered but had no match for the place.
	ErrGeoNotFound = errors.New("place not found")
	// ErrGeoTransport means the lookup call itself failed (network, timeout, rate limit, bad payload).
	ErrGeoTransport = errors.New("geocoder unavailable")
)

// Match is one resolved place. Postcode is best-effort and may be empty.
type Match struct {
	Position types.Coordinate `json:"position"`
	Postcode string           `json:"postcode,omitempty"`
}

// Geocoder resolves a free-text place query. Implementations must wrap failures
// with ErrGeoNotFound or ErrGeoTransport.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, query string) (Match, error)
}
