// README: Computed destination rate record and lookup errors.
package rate

import (
	"errors"
	"time"

	"freight/internal/types"
)

var (
	ErrInvalidRequest    = errors.New("state and city are required")
	ErrNotFound          = errors.New("rate record not found")
	ErrPersistence       = errors.New("rate persistence failed")
	// ErrAnchorUnavailable means the configured anchor place could not be
	// resolved. The geocoder error is not wrapped, so it never reads as a
	// missing destination.
	ErrAnchorUnavailable = errors.New("anchor location unavailable")
)

// Record is the rate computed for one destination. Rates equal BaseRates
// when the destination is itself a hub.
type Record struct {
	State      string
	City       string
	Pincode    string
	Position   types.Coordinate
	BaseRates  types.TyreRates
	Rates      types.TyreRates
	DistanceKm float64
	NearestHub string
	UpdatedAt  time.Time
}
