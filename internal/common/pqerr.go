package common

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique constraint violation on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return isConstraintError(err, pqUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a foreign key violation on the named constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	return isConstraintError(err, pqForeignKeyViolation, constraint)
}

func isConstraintError(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code && pqErr.Constraint == constraint
	}

	return false
}
