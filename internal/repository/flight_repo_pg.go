package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utopia-air/flightnet/internal/domain"
)

type FlightRepository interface {
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	FindFlightsByRoute(ctx context.Context, routeID int64) ([]domain.Flight, error)
	FindFlightsByAirplane(ctx context.Context, airplaneID int64) ([]domain.Flight, error)
	InsertFlight(ctx context.Context, flight *domain.Flight) error
	UpdateFlight(ctx context.Context, flight *domain.Flight) error
	DeleteFlight(ctx context.Context, id int64) (bool, error)

	CountDangling(ctx context.Context) (*domain.AuditReport, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, route_id, airplane_id, departure_time, reserved_seats, seat_price`

func (r *PGFlightRepository) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ReservedSeats, &f.SeatPrice); err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *PGFlightRepository) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	return r.flights(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
}

func (r *PGFlightRepository) FindFlightsByRoute(ctx context.Context, routeID int64) ([]domain.Flight, error) {
	return r.flights(ctx, `SELECT `+flightColumns+` FROM flights WHERE route_id=$1 ORDER BY id`, routeID)
}

func (r *PGFlightRepository) FindFlightsByAirplane(ctx context.Context, airplaneID int64) ([]domain.Flight, error) {
	return r.flights(ctx, `SELECT `+flightColumns+` FROM flights WHERE airplane_id=$1 ORDER BY id`, airplaneID)
}

func (r *PGFlightRepository) flights(ctx context.Context, sql string, args ...any) ([]domain.Flight, error) {
	rows, err := q(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ReservedSeats, &f.SeatPrice); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) InsertFlight(ctx context.Context, flight *domain.Flight) error {
	return q(ctx, r.db).QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, reserved_seats, seat_price) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ReservedSeats, flight.SeatPrice).Scan(&flight.ID)
}

func (r *PGFlightRepository) UpdateFlight(ctx context.Context, flight *domain.Flight) error {
	res, err := q(ctx, r.db).Exec(ctx, `UPDATE flights SET route_id=$2, airplane_id=$3, departure_time=$4, reserved_seats=$5, seat_price=$6 WHERE id=$1`,
		flight.ID, flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ReservedSeats, flight.SeatPrice)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) DeleteFlight(ctx context.Context, id int64) (bool, error) {
	res, err := q(ctx, r.db).Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// CountDangling reports records whose referenced parent is gone. The schema
// has no enforced foreign keys, so this is the safety net behind the
// application-level cascades.
func (r *PGFlightRepository) CountDangling(ctx context.Context) (*domain.AuditReport, error) {
	var report domain.AuditReport
	row := q(ctx, r.db).QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM flights f LEFT JOIN routes rt ON rt.id = f.route_id WHERE rt.id IS NULL),
			(SELECT count(*) FROM flights f LEFT JOIN airplanes a ON a.id = f.airplane_id WHERE a.id IS NULL),
			(SELECT count(*) FROM airplanes a LEFT JOIN airplane_types t ON t.id = a.type_id WHERE t.id IS NULL),
			(SELECT count(*) FROM routes rt
				LEFT JOIN airports o ON o.iata = rt.origin_iata
				LEFT JOIN airports d ON d.iata = rt.destination_iata
				WHERE o.iata IS NULL OR d.iata IS NULL)`)
	if err := row.Scan(&report.FlightsMissingRoute, &report.FlightsMissingAirplane, &report.AirplanesMissingType, &report.RoutesMissingAirport); err != nil {
		return nil, err
	}
	return &report, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
