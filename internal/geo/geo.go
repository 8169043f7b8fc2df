// Package geo estimates flight durations from great-circle distances.
package geo

import "math"

// earthRadiusMiles is the mean radius of the spherical-earth approximation.
const earthRadiusMiles = 3958.8

// cruiseSpeedMPH is the assumed average speed of a commercial flight.
const cruiseSpeedMPH = 500.0

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// Miles returns the great-circle distance between two coordinates using the
// haversine formula.
func Miles(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// EstimateDuration returns the flight time in hours between two coordinates.
// Identical coordinates yield 0; rejecting that is the caller's concern.
func EstimateDuration(a, b Coordinate) float64 {
	return Miles(a, b) / cruiseSpeedMPH
}
