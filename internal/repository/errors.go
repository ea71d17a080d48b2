package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
	ErrCartEmpty      = errors.New("cart is empty")
)

// Postgres error codes we care about.
const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqCheckViolation       = "23514"
	pqSerializationFailure = "40001"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool     { return pqCode(err) == pqUniqueViolation }
func isForeignKeyViolation(err error) bool { return pqCode(err) == pqForeignKeyViolation }

// IsSerializationFailure reports whether the transaction lost a serializable
// conflict and is safe to retry from scratch.
func IsSerializationFailure(err error) bool { return pqCode(err) == pqSerializationFailure }
