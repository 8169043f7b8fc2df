package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utopia-air/flightnet/internal/domain"
)

type NetworkRepository interface {
	GetAirport(ctx context.Context, iata string) (*domain.Airport, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListAirportsByCity(ctx context.Context, city string) ([]domain.Airport, error)
	InsertAirport(ctx context.Context, airport *domain.Airport) error
	UpdateAirport(ctx context.Context, airport *domain.Airport) error
	DeleteAirport(ctx context.Context, iata string) (bool, error)

	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	ListRoutesByOrigin(ctx context.Context, iata string) ([]domain.Route, error)
	ListRoutesByDestination(ctx context.Context, iata string) ([]domain.Route, error)
	FindRouteByPair(ctx context.Context, origin, destination string) (*domain.Route, error)
	FindRoutesByAirport(ctx context.Context, iata string) ([]domain.Route, error)
	InsertRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, id int64) (bool, error)
}

type PGNetworkRepository struct {
	db *pgxpool.Pool
}

func NewNetworkRepository(db *pgxpool.Pool) NetworkRepository {
	return &PGNetworkRepository{db: db}
}

const airportColumns = `iata, city, name, longitude, latitude, elevation`

func (r *PGNetworkRepository) GetAirport(ctx context.Context, iata string) (*domain.Airport, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT `+airportColumns+` FROM airports WHERE iata=$1`, iata)
	var a domain.Airport
	if err := row.Scan(&a.IATA, &a.City, &a.Name, &a.Longitude, &a.Latitude, &a.Elevation); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PGNetworkRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return r.airports(ctx, `SELECT `+airportColumns+` FROM airports ORDER BY iata`)
}

func (r *PGNetworkRepository) ListAirportsByCity(ctx context.Context, city string) ([]domain.Airport, error) {
	return r.airports(ctx, `SELECT `+airportColumns+` FROM airports WHERE city=$1 ORDER BY iata`, city)
}

func (r *PGNetworkRepository) airports(ctx context.Context, sql string, args ...any) ([]domain.Airport, error) {
	rows, err := q(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.IATA, &a.City, &a.Name, &a.Longitude, &a.Latitude, &a.Elevation); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGNetworkRepository) InsertAirport(ctx context.Context, airport *domain.Airport) error {
	_, err := q(ctx, r.db).Exec(ctx, `INSERT INTO airports (iata, city, name, longitude, latitude, elevation) VALUES ($1, $2, $3, $4, $5, $6)`,
		airport.IATA, airport.City, airport.Name, airport.Longitude, airport.Latitude, airport.Elevation)
	return uniqueConflict(err, "airport", "iata_id")
}

func (r *PGNetworkRepository) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	res, err := q(ctx, r.db).Exec(ctx, `UPDATE airports SET city=$2, name=$3, longitude=$4, latitude=$5, elevation=$6 WHERE iata=$1`,
		airport.IATA, airport.City, airport.Name, airport.Longitude, airport.Latitude, airport.Elevation)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGNetworkRepository) DeleteAirport(ctx context.Context, iata string) (bool, error) {
	res, err := q(ctx, r.db).Exec(ctx, `DELETE FROM airports WHERE iata=$1`, iata)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

const routeColumns = `id, origin_iata, destination_iata, duration`

func (r *PGNetworkRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id=$1`, id)
	var rt domain.Route
	if err := row.Scan(&rt.ID, &rt.OriginIATA, &rt.DestinationIATA, &rt.Duration); err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

func (r *PGNetworkRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return r.routes(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY id`)
}

func (r *PGNetworkRepository) ListRoutesByOrigin(ctx context.Context, iata string) ([]domain.Route, error) {
	return r.routes(ctx, `SELECT `+routeColumns+` FROM routes WHERE origin_iata=$1 ORDER BY id`, iata)
}

func (r *PGNetworkRepository) ListRoutesByDestination(ctx context.Context, iata string) ([]domain.Route, error) {
	return r.routes(ctx, `SELECT `+routeColumns+` FROM routes WHERE destination_iata=$1 ORDER BY id`, iata)
}

func (r *PGNetworkRepository) FindRouteByPair(ctx context.Context, origin, destination string) (*domain.Route, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE origin_iata=$1 AND destination_iata=$2`, origin, destination)
	var rt domain.Route
	if err := row.Scan(&rt.ID, &rt.OriginIATA, &rt.DestinationIATA, &rt.Duration); err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

// FindRoutesByAirport matches the airport on either end of the route.
func (r *PGNetworkRepository) FindRoutesByAirport(ctx context.Context, iata string) ([]domain.Route, error) {
	return r.routes(ctx, `SELECT `+routeColumns+` FROM routes WHERE origin_iata=$1 OR destination_iata=$1 ORDER BY id`, iata)
}

func (r *PGNetworkRepository) routes(ctx context.Context, sql string, args ...any) ([]domain.Route, error) {
	rows, err := q(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.OriginIATA, &rt.DestinationIATA, &rt.Duration); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGNetworkRepository) InsertRoute(ctx context.Context, route *domain.Route) error {
	err := q(ctx, r.db).QueryRow(ctx, `INSERT INTO routes (origin_iata, destination_iata, duration) VALUES ($1, $2, $3) RETURNING id`,
		route.OriginIATA, route.DestinationIATA, route.Duration).Scan(&route.ID)
	return uniqueConflict(err, "route", "origin/destination pair")
}

func (r *PGNetworkRepository) DeleteRoute(ctx context.Context, id int64) (bool, error) {
	res, err := q(ctx, r.db).Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ NetworkRepository = (*PGNetworkRepository)(nil)
