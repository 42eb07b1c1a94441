package repositories

import "errors"

// Shared repository errors. Callers translate them into apperrors.
var (
	// ErrNotFound is returned when a mutation matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolation is returned when a referenced row no longer exists.
	ErrForeignKeyViolation = errors.New("referenced record does not exist")
)
