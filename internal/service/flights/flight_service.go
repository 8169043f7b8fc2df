// Package flights schedules flights on existing routes and airplanes.
package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/utopia-air/flightnet/internal/domain"
	"github.com/utopia-air/flightnet/internal/repository"
)

type FlightUseCase interface {
	CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	ListFlightsByRoute(ctx context.Context, routeID int64) ([]domain.Flight, error)
	UpdateFlight(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, id int64) error
	Audit(ctx context.Context) (*domain.AuditReport, error)
}

type FlightService struct {
	repo    repository.FlightRepository
	network repository.NetworkRepository
	fleet   repository.FleetRepository
}

type CreateFlightInput struct {
	RouteID       int64     `json:"route_id"`
	AirplaneID    int64     `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ReservedSeats int       `json:"reserved_seats"`
	SeatPrice     float64   `json:"seat_price"`
}

type UpdateFlightInput struct {
	RouteID       *int64     `json:"route_id"`
	AirplaneID    *int64     `json:"airplane_id"`
	DepartureTime *time.Time `json:"departure_time"`
	ReservedSeats *int       `json:"reserved_seats"`
	SeatPrice     *float64   `json:"seat_price"`
}

func NewFlightService(repo repository.FlightRepository, network repository.NetworkRepository, fleet repository.FleetRepository) *FlightService {
	return &FlightService{repo: repo, network: network, fleet: fleet}
}

func (s *FlightService) CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.SeatPrice < 0 {
		return nil, fmt.Errorf("%w: seat_price must not be negative", domain.ErrInvalidInput)
	}

	if _, err := s.network.GetRoute(ctx, input.RouteID); err != nil {
		return nil, err
	}
	airplane, err := s.fleet.GetAirplane(ctx, input.AirplaneID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSeats(ctx, airplane.TypeID, input.ReservedSeats); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ReservedSeats: input.ReservedSeats,
		SeatPrice:     input.SeatPrice,
	}
	if err := s.repo.InsertFlight(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetFlight(ctx, id)
}

func (s *FlightService) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.ListFlights(ctx)
}

func (s *FlightService) ListFlightsByRoute(ctx context.Context, routeID int64) ([]domain.Flight, error) {
	return s.repo.FindFlightsByRoute(ctx, routeID)
}

func (s *FlightService) UpdateFlight(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetFlight(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.RouteID != nil {
		if _, err := s.network.GetRoute(ctx, *input.RouteID); err != nil {
			return nil, err
		}
		flight.RouteID = *input.RouteID
	}
	if input.AirplaneID != nil {
		if _, err := s.fleet.GetAirplane(ctx, *input.AirplaneID); err != nil {
			return nil, err
		}
		flight.AirplaneID = *input.AirplaneID
	}
	if input.DepartureTime != nil {
		flight.DepartureTime = *input.DepartureTime
	}
	if input.ReservedSeats != nil {
		flight.ReservedSeats = *input.ReservedSeats
	}
	if input.SeatPrice != nil {
		if *input.SeatPrice < 0 {
			return nil, fmt.Errorf("%w: seat_price must not be negative", domain.ErrInvalidInput)
		}
		flight.SeatPrice = *input.SeatPrice
	}

	airplane, err := s.fleet.GetAirplane(ctx, flight.AirplaneID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSeats(ctx, airplane.TypeID, flight.ReservedSeats); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFlight(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) DeleteFlight(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteFlight(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Audit reports dangling references left in the store, if any. The cascades
// should keep every count at zero; a nonzero count means something wrote
// around the service layer.
func (s *FlightService) Audit(ctx context.Context) (*domain.AuditReport, error) {
	return s.repo.CountDangling(ctx)
}

// checkSeats keeps the reserved count inside the airplane type's capacity.
func (s *FlightService) checkSeats(ctx context.Context, typeID int64, reserved int) error {
	if reserved < 0 {
		return fmt.Errorf("%w: reserved_seats must not be negative", domain.ErrInvalidInput)
	}
	t, err := s.fleet.GetAirplaneType(ctx, typeID)
	if err != nil {
		return err
	}
	if reserved > t.MaxCapacity {
		return fmt.Errorf("%w: reserved_seats %d exceeds airplane capacity %d", domain.ErrInvalidInput, reserved, t.MaxCapacity)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
