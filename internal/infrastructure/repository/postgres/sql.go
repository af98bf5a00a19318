package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports a duplicate key error, optionally limited to one constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolationCode {
		return false
	}
	return constraint == "" || strings.EqualFold(pqErr.Constraint, constraint)
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func int64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
