// Package dberr translates driver errors into module sentinels.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const codeUniqueViolation = "23505"

// IsUniqueViolation reports whether err was raised by the named unique
// index. The message check covers wrapped errors that lost the PgError.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, strings.ToLower(constraint))
}

// Map returns notFound for missing rows, the sentinel registered for a
// violated unique index, or err unchanged.
func Map(err error, notFound error, conflicts map[string]error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	for constraint, sentinel := range conflicts {
		if IsUniqueViolation(err, constraint) {
			return sentinel
		}
	}
	return err
}
