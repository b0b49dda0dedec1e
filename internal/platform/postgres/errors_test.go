package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskal/internal/platform/postgres"
	"github.com/phrazzld/taskal/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: "tasks_effort_check",
	}
}

func TestConstraintPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check func(error) bool
		code  string
	}{
		{"unique", postgres.IsUniqueViolation, "23505"},
		{"foreign key", postgres.IsForeignKeyViolation, "23503"},
		{"check", postgres.IsCheckConstraintViolation, "23514"},
		{"not null", postgres.IsNotNullViolation, "23502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(newPgError(tt.code)))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", newPgError(tt.code))))
			assert.False(t, tt.check(newPgError("42P01")))
			assert.False(t, tt.check(errors.New("generic error")))
			assert.False(t, tt.check(nil))
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", newPgError("23505"), store.ErrDuplicate},
		{"foreign key violation", newPgError("23503"), store.ErrInvalidEntity},
		{"check violation", newPgError("23514"), store.ErrInvalidEntity},
		{"not null violation", newPgError("23502"), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := postgres.MapError(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.Nil(t, postgres.MapError(nil))

	other := errors.New("connection reset")
	assert.Equal(t, other, postgres.MapError(other), "unmapped errors pass through")
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.Equal(t, store.ErrTaskNotFound, postgres.CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound))
	assert.Equal(t, store.ErrNotFound, postgres.CheckRowsAffected(sqlmock.NewResult(0, 0), nil))

	resultErr := errors.New("driver cannot count")
	err := postgres.CheckRowsAffected(sqlmock.NewErrorResult(resultErr), store.ErrTaskNotFound)
	assert.ErrorIs(t, err, resultErr)

	assert.Error(t, postgres.CheckRowsAffected(nil, store.ErrTaskNotFound))
}
