// README: Distance-proportional rate interpolation from a hub's base rate.
package pricing

import (
	"fmt"
	"math"

	"freight/internal/types"
)

// Interpolate extends a hub's per-km cost from the anchor out to a destination:
//
//	base × (anchorToHub + hubToDest) / anchorToHub
//
// The result is not rounded; use Round at output boundaries.
func Interpolate(baseRate, anchorToHubKm, hubToDestKm float64) (float64, error) {
	if anchorToHubKm == 0 {
		return 0, ErrDegenerateDistance
	}
	return baseRate * (anchorToHubKm + hubToDestKm) / anchorToHubKm, nil
}

// InterpolateRates applies Interpolate to every tyre size.
func InterpolateRates(base types.TyreRates, anchorToHubKm, hubToDestKm float64) (types.TyreRates, error) {
	var out types.TyreRates
	for _, size := range types.TyreSizes {
		v, err := Interpolate(base.Get(size), anchorToHubKm, hubToDestKm)
		if err != nil {
			return types.TyreRates{}, fmt.Errorf("%d tyre rate: %w", size, err)
		}
		out.Set(size, v)
	}
	return out, nil
}

// Round rounds half away from zero to the nearest integer.
func Round(v float64) int64 {
	return int64(math.Round(v))
}

// RoundRates rounds each tyre rate for presentation.
func RoundRates(r types.TyreRates) types.TyreRates {
	return types.TyreRates{
		Tyre10: math.Round(r.Tyre10),
		Tyre12: math.Round(r.Tyre12),
		Tyre14: math.Round(r.Tyre14),
	}
}
