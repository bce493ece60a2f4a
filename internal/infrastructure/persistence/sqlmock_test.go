package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
	"github.com/sereci/sirepre/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicantRepository_FindByID_NotFound(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	id := uuid.New()
	mdb.Mock.ExpectQuery(`SELECT \* FROM "postulantes" WHERE id = \$1`).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormApplicantRepository(mdb.DB).FindByID(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mdb.ExpectationsWereMet(t)
}

func TestApplicantRepository_Create_UniqueViolation(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	mdb.Mock.ExpectExec(`INSERT INTO "postulantes"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_postulante_identidad" (SQLSTATE 23505)`))

	a := newApplicant(t, 123, "", "Rosa", time.Now().UTC())
	err := NewGormApplicantRepository(mdb.DB).Create(context.Background(), a)
	assert.ErrorIs(t, err, registration.ErrDuplicateApplicant)
	mdb.ExpectationsWereMet(t)
}

func TestApplicantRepository_Count(t *testing.T) {
	mdb := testutil.NewMockDB(t)
	mdb.Mock.ExpectQuery(`SELECT count\(\*\) FROM "postulantes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := NewGormApplicantRepository(mdb.DB).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	mdb.ExpectationsWereMet(t)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: recintos.codigo")))
	assert.True(t, isUniqueViolation(errors.New("pq: duplicate key value violates unique constraint")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
