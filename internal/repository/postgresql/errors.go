package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation           = "23505"
	exclusionViolation        = "23P01"
	invalidTextRepresentation = "22P02"
)

// constraintViolation reports whether err is a PostgreSQL error with the given
// SQLSTATE raised by the named constraint or index.
func constraintViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code && pgErr.ConstraintName == constraint
}

// invalidID reports a malformed uuid parameter; callers treat it as not found.
func invalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
