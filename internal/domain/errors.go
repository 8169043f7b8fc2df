package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested or referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a request fails validation before any write.
var ErrInvalidInput = errors.New("invalid input")

// ConflictError reports that a create or update would violate a uniqueness
// rule. ExistingKey identifies the record already holding the value so the
// caller can disambiguate.
type ConflictError struct {
	Entity      string
	Field       string
	ExistingKey string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with that %s already exists [id: %s]", e.Entity, e.Field, e.ExistingKey)
}

// DeletedSet records everything removed by one cascading deletion.
type DeletedSet struct {
	Airports      []string `json:"airports,omitempty"`
	AirplaneTypes []int64  `json:"airplane_types,omitempty"`
	Airplanes     []int64  `json:"airplanes,omitempty"`
	Routes        []int64  `json:"routes,omitempty"`
	Flights       []int64  `json:"flights,omitempty"`
}

func (d *DeletedSet) Total() int {
	return len(d.Airports) + len(d.AirplaneTypes) + len(d.Airplanes) + len(d.Routes) + len(d.Flights)
}
