// Package cascade removes dependent records when a parent entity is deleted.
//
// The schema declares reference columns for query convenience only; nothing at
// the storage layer cascades on delete. Every deletion here walks the
// dependency graph explicitly, children before parent, so no read inside or
// after the transaction can observe a dangling reference.
package cascade

import (
	"context"

	"github.com/utopia-air/flightnet/internal/domain"
)

// NetworkStore is the slice of the record store the airport and route plans
// need.
type NetworkStore interface {
	GetAirport(ctx context.Context, iata string) (*domain.Airport, error)
	FindRoutesByAirport(ctx context.Context, iata string) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	DeleteRoute(ctx context.Context, id int64) (bool, error)
	DeleteAirport(ctx context.Context, iata string) (bool, error)
}

// FleetStore is the slice of the record store the airplane-type plan needs.
type FleetStore interface {
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	FindAirplanesByType(ctx context.Context, typeID int64) ([]domain.Airplane, error)
	DeleteAirplane(ctx context.Context, id int64) (bool, error)
	DeleteAirplaneType(ctx context.Context, id int64) (bool, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
}

type FlightStore interface {
	FindFlightsByRoute(ctx context.Context, routeID int64) ([]domain.Flight, error)
	FindFlightsByAirplane(ctx context.Context, airplaneID int64) ([]domain.Flight, error)
	DeleteFlight(ctx context.Context, id int64) (bool, error)
}

// Resolver executes one deletion plan per parent kind. The caller is expected
// to run each plan inside a transaction so a mid-cascade failure rolls the
// whole deletion back.
type Resolver struct {
	network NetworkStore
	fleet   FleetStore
	flights FlightStore
}

func NewResolver(network NetworkStore, fleet FleetStore, flights FlightStore) *Resolver {
	return &Resolver{network: network, fleet: fleet, flights: flights}
}

// Airport removes every route touching the airport, as origin or destination,
// every flight on those routes, and finally the airport itself.
func (r *Resolver) Airport(ctx context.Context, iata string) (*domain.DeletedSet, error) {
	if _, err := r.network.GetAirport(ctx, iata); err != nil {
		return nil, err
	}

	set := &domain.DeletedSet{}
	routes, err := r.network.FindRoutesByAirport(ctx, iata)
	if err != nil {
		return nil, err
	}
	for _, rt := range routes {
		if err := r.deleteRouteTree(ctx, rt.ID, set); err != nil {
			return nil, err
		}
	}

	if _, err := r.network.DeleteAirport(ctx, iata); err != nil {
		return nil, err
	}
	set.Airports = append(set.Airports, iata)
	return set, nil
}

// AirplaneType removes the type's airplanes, every flight scheduled on those
// airplanes, and then the type record.
func (r *Resolver) AirplaneType(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	if _, err := r.fleet.GetAirplaneType(ctx, id); err != nil {
		return nil, err
	}

	set := &domain.DeletedSet{}
	airplanes, err := r.fleet.FindAirplanesByType(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, a := range airplanes {
		if err := r.deleteAirplaneTree(ctx, a.ID, set); err != nil {
			return nil, err
		}
	}

	if _, err := r.fleet.DeleteAirplaneType(ctx, id); err != nil {
		return nil, err
	}
	set.AirplaneTypes = append(set.AirplaneTypes, id)
	return set, nil
}

// Airplane removes the flights scheduled on the airplane and then the
// airplane itself.
func (r *Resolver) Airplane(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	if _, err := r.fleet.GetAirplane(ctx, id); err != nil {
		return nil, err
	}

	set := &domain.DeletedSet{}
	if err := r.deleteAirplaneTree(ctx, id, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Route removes the route's flights and then the route itself.
func (r *Resolver) Route(ctx context.Context, id int64) (*domain.DeletedSet, error) {
	if _, err := r.network.GetRoute(ctx, id); err != nil {
		return nil, err
	}

	set := &domain.DeletedSet{}
	if err := r.deleteRouteTree(ctx, id, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (r *Resolver) deleteRouteTree(ctx context.Context, routeID int64, set *domain.DeletedSet) error {
	flights, err := r.flights.FindFlightsByRoute(ctx, routeID)
	if err != nil {
		return err
	}
	for _, f := range flights {
		if _, err := r.flights.DeleteFlight(ctx, f.ID); err != nil {
			return err
		}
		set.Flights = append(set.Flights, f.ID)
	}

	if _, err := r.network.DeleteRoute(ctx, routeID); err != nil {
		return err
	}
	set.Routes = append(set.Routes, routeID)
	return nil
}

func (r *Resolver) deleteAirplaneTree(ctx context.Context, airplaneID int64, set *domain.DeletedSet) error {
	flights, err := r.flights.FindFlightsByAirplane(ctx, airplaneID)
	if err != nil {
		return err
	}
	for _, f := range flights {
		if _, err := r.flights.DeleteFlight(ctx, f.ID); err != nil {
			return err
		}
		set.Flights = append(set.Flights, f.ID)
	}

	if _, err := r.fleet.DeleteAirplane(ctx, airplaneID); err != nil {
		return err
	}
	set.Airplanes = append(set.Airplanes, airplaneID)
	return nil
}
