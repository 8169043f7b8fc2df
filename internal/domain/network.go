package domain

// Airport is keyed by its IATA code; there is no surrogate id.
type Airport struct {
	IATA      string  `json:"iata_id"`
	City      string  `json:"city"`
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Elevation int     `json:"elevation"`
}

// Route connects two airports in a fixed direction. Duration is always
// computed from the airport coordinates, never taken from the caller.
type Route struct {
	ID              int64   `json:"id"`
	OriginIATA      string  `json:"origin_id"`
	DestinationIATA string  `json:"destination_id"`
	Duration        float64 `json:"duration"`
}
