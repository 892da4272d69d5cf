package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals that no row matched a lookup scoped to the caller's
	// user id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a unique-constraint violation, e.g. two concurrent
	// creates for the same (user_id, date).
	ErrConflict = errors.New("record already exists")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
