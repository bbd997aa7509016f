package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/melnyk-o/airport-api/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	SeatTaken(ctx context.Context, flightID int64, row, seat int) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// Create persists the order and all of its tickets in one transaction.
// Either every row is written or none: any ticket insert failure rolls
// back the order itself. A unique violation on the seat constraint is
// reported as ErrSeatTaken.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (number, user_id) VALUES ($1, $2) RETURNING id, created_at`,
		order.Number, order.UserID).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		if err := tx.QueryRow(ctx, `INSERT INTO tickets (seat_row, seat_number, flight_id, order_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID); err != nil {
			if isUniqueViolation(err) {
				return ErrSeatTaken
			}
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

func (r *PGOrderRepository) SeatTaken(ctx context.Context, flightID int64, row, seat int) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE flight_id=$1 AND seat_row=$2 AND seat_number=$3)`,
		flightID, row, seat).Scan(&taken)
	return taken, err
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Tickets = make([]domain.Ticket, 0)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ticketRows, err := r.db.Query(ctx, `SELECT id, seat_row, seat_number, flight_id, order_id FROM tickets WHERE order_id = ANY($1) ORDER BY seat_row, seat_number`, ids)
	if err != nil {
		return nil, err
	}
	defer ticketRows.Close()

	byOrder := make(map[int64]int, len(orders))
	for i, o := range orders {
		byOrder[o.ID] = i
	}
	for ticketRows.Next() {
		var t domain.Ticket
		if err := ticketRows.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID); err != nil {
			return nil, err
		}
		i := byOrder[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, t)
	}
	return orders, ticketRows.Err()
}

func (r *PGOrderRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id=$1`, userID).Scan(&count)
	return count, err
}

var _ OrderRepository = (*PGOrderRepository)(nil)
