package apperror

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// failure, optionally on the named constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return false
		}
		return len(constraint) == 0 || pgErr.ConstraintName == constraint[0]
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key value") {
		return false
	}
	return len(constraint) == 0 || strings.Contains(msg, strings.ToLower(constraint[0]))
}
