// README: Shared value types (identifiers and coordinates) used across modules.
package types

type ID string

// Coordinate is a resolved geographic position in decimal degrees.
// Only the location module produces coordinates.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
