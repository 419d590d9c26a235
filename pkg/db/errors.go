package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// constraintError is the part of a server error the services care about.
// code is empty when the driver error carried no SQLSTATE.
type constraintError struct {
	code       string
	constraint string
	message    string
}

func inspect(err error) constraintError {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return constraintError{code: pgxErr.Code, constraint: pgxErr.ConstraintName}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return constraintError{code: string(pqErr.Code), constraint: pqErr.Constraint}
	}
	return constraintError{message: err.Error()}
}

// matches falls back to the message text for drivers that return plain
// errors, which is how sqlite reports constraint failures.
func (c constraintError) matches(code, constraintName string, markers ...string) bool {
	if c.code != "" {
		return c.code == code && (constraintName == "" || c.constraint == constraintName)
	}
	for _, marker := range markers {
		if strings.Contains(c.message, marker) {
			return constraintName == "" || strings.Contains(c.message, constraintName)
		}
	}
	return false
}

// IsUniqueViolation reports a duplicate key. A non-empty constraintName
// narrows the match to that constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	return inspect(err).matches(uniqueViolationCode, constraintName,
		"duplicate key value", "UNIQUE constraint failed")
}
