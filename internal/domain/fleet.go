package domain

import "time"

// AirplaneType describes a cabin layout. Capacities are unique across types:
// in this fleet a capacity value identifies the type.
type AirplaneType struct {
	ID          int64 `json:"id"`
	MaxCapacity int   `json:"max_capacity"`
}

type Airplane struct {
	ID     int64 `json:"id"`
	TypeID int64 `json:"type_id"`
}

type Flight struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route_id"`
	AirplaneID    int64     `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ReservedSeats int       `json:"reserved_seats"`
	SeatPrice     float64   `json:"seat_price"`
}
