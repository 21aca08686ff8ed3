// Package location — geo_utils contains pure geographic computation helpers.
package location

import (
	"math"

	"freight/internal/types"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometres between a and b.
func Distance(a, b types.Coordinate) float64 {
	return haversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	sLat := math.Sin(dLat / 2)
	sLng := math.Sin(dLng / 2)
	a := sLat*sLat + math.Cos(rLat1)*math.Cos(rLat2)*sLng*sLng
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
