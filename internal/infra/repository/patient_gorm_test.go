package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
)

func TestLatestProtocol(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientGormRepository(db)

	mock.ExpectQuery(`SELECT "protocol_number" FROM "patients" WHERE protocol_number LIKE \$1 ORDER BY protocol_number DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"protocol_number"}).AddRow("NUTRI-202501-0042"))

	got, err := repo.LatestProtocol(context.Background(), "NUTRI-202501")

	require.NoError(t, err)
	assert.Equal(t, "NUTRI-202501-0042", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestProtocol_EmptyMonth(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientGormRepository(db)

	mock.ExpectQuery(`FROM "patients" WHERE protocol_number LIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"protocol_number"}))

	got, err := repo.LatestProtocol(context.Background(), "NUTRI-202502")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLatestProtocol_StoreDown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientGormRepository(db)

	mock.ExpectQuery(`FROM "patients"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.LatestProtocol(context.Background(), "NUTRI-202502")

	var le *httperr.LookupError
	assert.True(t, errors.As(err, &le))
}

func TestAssignProtocol_OnlyWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientGormRepository(db)

	mock.ExpectExec(`UPDATE "patients" SET "protocol_number"=\$1.* WHERE .*id = \$\d+ AND protocol_number IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.AssignProtocol(context.Background(), uuid.New(), "NUTRI-202501-0001")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFeatures_MissingPatient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientGormRepository(db)

	mock.ExpectExec(`UPDATE "patients" SET "features"=\$1,"updated_at"=\$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateFeatures(context.Background(), uuid.New(), models.FeatureFlags{Appointments: true})

	assert.True(t, httperr.IsBusiness(err, httperr.CodePatientNotFound))
}
