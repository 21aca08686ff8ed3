// README: Tyre-size rate triple carried by hubs and rate records.
package types

// TyreSizes lists the truck classes a rate card covers, in output order.
var TyreSizes = []int{10, 12, 14}

type TyreRates struct {
	Tyre10 float64 `json:"tyre10Rate"`
	Tyre12 float64 `json:"tyre12Rate"`
	Tyre14 float64 `json:"tyre14Rate"`
}

// Get returns the rate for a tyre size, or 0 for an unknown size.
func (r TyreRates) Get(size int) float64 {
	switch size {
	case 10:
		return r.Tyre10
	case 12:
		return r.Tyre12
	case 14:
		return r.Tyre14
	}
	return 0
}

// Set stores the rate for a tyre size; unknown sizes are ignored.
func (r *TyreRates) Set(size int, v float64) {
	switch size {
	case 10:
		r.Tyre10 = v
	case 12:
		r.Tyre12 = v
	case 14:
		r.Tyre14 = v
	}
}

// Positive reports whether every rate is strictly greater than zero.
func (r TyreRates) Positive() bool {
	return r.Tyre10 > 0 && r.Tyre12 > 0 && r.Tyre14 > 0
}
