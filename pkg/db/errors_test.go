package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "clients_pkey"}

	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create client: %w", pgErr), ""))
	assert.True(t, IsUniqueViolation(pgErr, "clients_pkey"))
	assert.False(t, IsUniqueViolation(pgErr, "orders_pkey"))
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil, ""))
	// Message text alone is not enough; the SQLSTATE decides.
	assert.False(t, IsUniqueViolation(fmt.Errorf("duplicate key value"), ""))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
}
