package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresClassification(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	foreign := &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_user_id_fkey"}

	if !IsUniqueViolation(unique) || IsForeignKeyViolation(unique) {
		t.Fatal("23505 not classified as unique violation only")
	}
	if !IsForeignKeyViolation(foreign) || IsUniqueViolation(foreign) {
		t.Fatal("23503 not classified as foreign key violation only")
	}
}

func TestUnrelatedErrors(t *testing.T) {
	t.Parallel()

	for _, err := range []error{nil, errors.New("timeout"), &pgconn.PgError{Code: "40001"}} {
		if IsUniqueViolation(err) || IsForeignKeyViolation(err) {
			t.Errorf("%v classified as constraint violation", err)
		}
	}
}
