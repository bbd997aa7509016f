package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/melnyk-o/airport-api/internal/domain"
)

// CatalogRepository covers the reference data behind flights: crews,
// airports, routes, airplane types and airplanes. Plain CRUD, no
// business rules beyond uniqueness of a route's airport pair.
type CatalogRepository interface {
	ListCrews(ctx context.Context) ([]domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, crew *domain.Crew) error
	UpdateCrew(ctx context.Context, crew *domain.Crew) error
	DeleteCrew(ctx context.Context, id int64) error

	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	UpdateAirport(ctx context.Context, airport *domain.Airport) error
	DeleteAirport(ctx context.Context, id int64) error

	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
	UpdateRoute(ctx context.Context, route *domain.Route) error
	DeleteRoute(ctx context.Context, id int64) error

	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	DeleteAirplaneType(ctx context.Context, id int64) error

	ListAirplanes(ctx context.Context, name string) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error
	DeleteAirplane(ctx context.Context, id int64) error
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func notFoundOn(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PGCatalogRepository) deleteByID(ctx context.Context, query string, id int64) error {
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Crews

func (r *PGCatalogRepository) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGCatalogRepository) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	var c domain.Crew
	err := r.db.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		return nil, notFoundOn(err)
	}
	return &c, nil
}

func (r *PGCatalogRepository) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName).Scan(&crew.ID)
}

func (r *PGCatalogRepository) UpdateCrew(ctx context.Context, crew *domain.Crew) error {
	cmd, err := r.db.Exec(ctx, `UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3`,
		crew.FirstName, crew.LastName, crew.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGCatalogRepository) DeleteCrew(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM crews WHERE id=$1`, id)
}

// Airports

func (r *PGCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, closest_big_city FROM airports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGCatalogRepository) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	var a domain.Airport
	err := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city FROM airports WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.ClosestBigCity)
	if err != nil {
		return nil, notFoundOn(err)
	}
	return &a, nil
}

func (r *PGCatalogRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city) VALUES ($1, $2) RETURNING id`,
		airport.Name, airport.ClosestBigCity).Scan(&airport.ID)
}

func (r *PGCatalogRepository) UpdateAirport(ctx context.Context, airport *domain.Airport) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airports SET name=$1, closest_big_city=$2 WHERE id=$3`,
		airport.Name, airport.ClosestBigCity, airport.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGCatalogRepository) DeleteAirport(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM airports WHERE id=$1`, id)
}

// Routes

func (r *PGCatalogRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT id, source_id, destination_id, distance FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGCatalogRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	var rt domain.Route
	err := r.db.QueryRow(ctx, `SELECT id, source_id, destination_id, distance FROM routes WHERE id=$1`, id).
		Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance)
	if err != nil {
		return nil, notFoundOn(err)
	}
	return &rt, nil
}

func (r *PGCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGCatalogRepository) UpdateRoute(ctx context.Context, route *domain.Route) error {
	cmd, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGCatalogRepository) DeleteRoute(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM routes WHERE id=$1`, id)
}

// Airplane types

func (r *PGCatalogRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGCatalogRepository) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, notFoundOn(err)
	}
	return &t, nil
}

func (r *PGCatalogRepository) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

func (r *PGCatalogRepository) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGCatalogRepository) DeleteAirplaneType(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM airplane_types WHERE id=$1`, id)
}

// Airplanes

func (r *PGCatalogRepository) ListAirplanes(ctx context.Context, name string) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, rows, seats_in_row, airplane_type_id FROM airplanes
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGCatalogRepository) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	var a domain.Airplane
	err := r.db.QueryRow(ctx, `SELECT id, name, rows, seats_in_row, airplane_type_id FROM airplanes WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID)
	if err != nil {
		return nil, notFoundOn(err)
	}
	return &a, nil
}

func (r *PGCatalogRepository) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID).Scan(&airplane.ID)
}

func (r *PGCatalogRepository) UpdateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGCatalogRepository) DeleteAirplane(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM airplanes WHERE id=$1`, id)
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
