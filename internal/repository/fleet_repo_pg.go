package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utopia-air/flightnet/internal/domain"
)

type FleetRepository interface {
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	FindAirplaneTypeByCapacity(ctx context.Context, capacity int) (*domain.AirplaneType, error)
	FindAirplaneTypeWithCapacityAtLeast(ctx context.Context, capacity int) (*domain.AirplaneType, error)
	InsertAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	DeleteAirplaneType(ctx context.Context, id int64) (bool, error)

	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	FindAirplanesByType(ctx context.Context, typeID int64) ([]domain.Airplane, error)
	InsertAirplane(ctx context.Context, airplane *domain.Airplane) error
	UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error
	DeleteAirplane(ctx context.Context, id int64) (bool, error)
}

type PGFleetRepository struct {
	db *pgxpool.Pool
}

func NewFleetRepository(db *pgxpool.Pool) FleetRepository {
	return &PGFleetRepository{db: db}
}

func (r *PGFleetRepository) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT id, max_capacity FROM airplane_types WHERE id=$1`, id)
	var t domain.AirplaneType
	if err := row.Scan(&t.ID, &t.MaxCapacity); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PGFleetRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := q(ctx, r.db).Query(ctx, `SELECT id, max_capacity FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.MaxCapacity); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGFleetRepository) FindAirplaneTypeByCapacity(ctx context.Context, capacity int) (*domain.AirplaneType, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT id, max_capacity FROM airplane_types WHERE max_capacity=$1`, capacity)
	var t domain.AirplaneType
	if err := row.Scan(&t.ID, &t.MaxCapacity); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PGFleetRepository) FindAirplaneTypeWithCapacityAtLeast(ctx context.Context, capacity int) (*domain.AirplaneType, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT id, max_capacity FROM airplane_types WHERE max_capacity >= $1 ORDER BY max_capacity LIMIT 1`, capacity)
	var t domain.AirplaneType
	if err := row.Scan(&t.ID, &t.MaxCapacity); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *PGFleetRepository) InsertAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	err := q(ctx, r.db).QueryRow(ctx, `INSERT INTO airplane_types (max_capacity) VALUES ($1) RETURNING id`, t.MaxCapacity).Scan(&t.ID)
	return uniqueConflict(err, "airplane type", "capacity")
}

func (r *PGFleetRepository) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	res, err := q(ctx, r.db).Exec(ctx, `UPDATE airplane_types SET max_capacity=$2 WHERE id=$1`, t.ID, t.MaxCapacity)
	if err != nil {
		return uniqueConflict(err, "airplane type", "capacity")
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFleetRepository) DeleteAirplaneType(ctx context.Context, id int64) (bool, error) {
	res, err := q(ctx, r.db).Exec(ctx, `DELETE FROM airplane_types WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *PGFleetRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	row := q(ctx, r.db).QueryRow(ctx, `SELECT id, type_id FROM airplanes WHERE id=$1`, id)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.TypeID); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *PGFleetRepository) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return r.airplanes(ctx, `SELECT id, type_id FROM airplanes ORDER BY id`)
}

func (r *PGFleetRepository) FindAirplanesByType(ctx context.Context, typeID int64) ([]domain.Airplane, error) {
	return r.airplanes(ctx, `SELECT id, type_id FROM airplanes WHERE type_id=$1 ORDER BY id`, typeID)
}

func (r *PGFleetRepository) airplanes(ctx context.Context, sql string, args ...any) ([]domain.Airplane, error) {
	rows, err := q(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.TypeID); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGFleetRepository) InsertAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return q(ctx, r.db).QueryRow(ctx, `INSERT INTO airplanes (type_id) VALUES ($1) RETURNING id`, airplane.TypeID).Scan(&airplane.ID)
}

func (r *PGFleetRepository) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	res, err := q(ctx, r.db).Exec(ctx, `UPDATE airplanes SET type_id=$2 WHERE id=$1`, airplane.ID, airplane.TypeID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFleetRepository) DeleteAirplane(ctx context.Context, id int64) (bool, error) {
	res, err := q(ctx, r.db).Exec(ctx, `DELETE FROM airplanes WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ FleetRepository = (*PGFleetRepository)(nil)
