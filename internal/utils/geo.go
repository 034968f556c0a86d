package utils

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// HaversineKm calculates the great-circle distance in kilometers between
// two latitude/longitude pairs.
func HaversineKm(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if math.Abs(lat1) > 90 || math.Abs(lat2) > 90 {
		return 0, fmt.Errorf("latitude must be in [-90, 90]")
	}
	if math.Abs(lon1) > 180 || math.Abs(lon2) > 180 {
		return 0, fmt.Errorf("longitude must be in [-180, 180]")
	}

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// RoundKm rounds a distance to two decimal places for API responses.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
