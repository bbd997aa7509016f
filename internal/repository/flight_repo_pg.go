package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/melnyk-o/airport-api/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context, routeID int64) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Seating(ctx context.Context, flightID int64) (*domain.Seating, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// List returns flights ordered by departure, each with the derived
// tickets_available count (airplane capacity minus sold tickets).
// A routeID of 0 returns all flights.
func (r *PGFlightRepository) List(ctx context.Context, routeID int64) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time, f.created_at, f.updated_at,
			a.rows * a.seats_in_row - COUNT(DISTINCT t.id) AS tickets_available,
			COALESCE(array_agg(DISTINCT fc.crew_id) FILTER (WHERE fc.crew_id IS NOT NULL), '{}') AS crews
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN tickets t ON t.flight_id = f.id
		LEFT JOIN flight_crews fc ON fc.flight_id = f.id
		WHERE $1 = 0 OR f.route_id = $1
		GROUP BY f.id, a.rows, a.seats_in_row
		ORDER BY f.departure_time`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
			&f.CreatedAt, &f.UpdatedAt, &f.TicketsAvailable, &f.CrewIDs); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, route_id, airplane_id, departure_time, arrival_time, created_at, updated_at FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	crewRows, err := r.db.Query(ctx, `SELECT crew_id FROM flight_crews WHERE flight_id=$1 ORDER BY crew_id`, id)
	if err != nil {
		return nil, err
	}
	defer crewRows.Close()

	f.CrewIDs = make([]int64, 0)
	for crewRows.Next() {
		var crewID int64
		if err := crewRows.Scan(&crewID); err != nil {
			return nil, err
		}
		f.CrewIDs = append(f.CrewIDs, crewID)
	}
	return &f, crewRows.Err()
}

// Seating resolves a flight to the seat grid of its airplane.
func (r *PGFlightRepository) Seating(ctx context.Context, flightID int64) (*domain.Seating, error) {
	row := r.db.QueryRow(ctx, `SELECT a.rows, a.seats_in_row FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id=$1`, flightID)
	var s domain.Seating
	if err := row.Scan(&s.Rows, &s.SeatsInRow); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return err
	}

	for _, crewID := range flight.CrewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`, flight.ID, crewID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4, updated_at=now()
		WHERE id=$5
		RETURNING created_at, updated_at`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID).
		Scan(&flight.CreatedAt, &flight.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, flight.ID); err != nil {
		return err
	}
	for _, crewID := range flight.CrewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`, flight.ID, crewID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes the flight; its tickets and crew assignments go with it
// through the ON DELETE CASCADE constraints.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
