package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrSeatTaken is returned when a ticket insert trips the unique
// constraint on (flight, row, seat). The constraint is the authoritative
// guard against two concurrent orders claiming the same seat; the
// service-level availability check is only a fast-fail.
var ErrSeatTaken = errors.New("seat already taken")

// ErrDuplicate is returned on other unique violations, such as an already
// registered email or an existing (source, destination) route pair.
var ErrDuplicate = errors.New("already exists")

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
