package encounters

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{
	"id", "patient_id", "first_name", "last_name",
	"practitioner_id", "first_name", "middle_name", "last_name", "specialization",
	"status", "start_time", "created_at",
}

func TestList_JoinsNames(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM\s+encounters\s+e\s+JOIN\s+patients.*ORDER\s+BY\s+e\.start_time`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("e1", int64(1), "Ann", "Lee", "p1", "John", "H", "Watson", "GP", "planned", start, start))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann Lee", got[0].PatientName)
	assert.Equal(t, "John H Watson", got[0].PractitionerName)
	assert.Equal(t, "GP", got[0].PractitionerSpecialization)
	assert.Equal(t, models.EncounterPlanned, got[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByPractitioner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)WHERE\s+e\.practitioner_id\s*=\s*\$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListByPractitioner(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)WHERE\s+e\.id\s*=\s*\$1`).WithArgs("x").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	created := time.Now()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+encounters`).
		WithArgs(sqlmock.AnyArg(), int64(1), "p1", "planned", start).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	e, err := repo.Create(context.Background(), &models.Encounter{PatientID: 1, PractitionerID: "p1", StartTime: start})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, models.EncounterPlanned, e.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownReference(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+encounters`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), &models.Encounter{PatientID: 99, PractitionerID: "p1", StartTime: time.Now()})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+encounters\s+SET\s+status\s*=\s*\$2`).
		WithArgs("e1", "arrived").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), "e1", models.EncounterArrived))

	mock.ExpectExec(`UPDATE\s+encounters`).
		WithArgs("e2", "arrived").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "e2", models.EncounterArrived), common.ErrorNotFound)

	mock.ExpectExec(`UPDATE\s+encounters`).
		WithArgs("e3", "arrived").
		WillReturnError(errors.New("boom"))
	assert.ErrorContains(t, repo.UpdateStatus(context.Background(), "e3", models.EncounterArrived), "db error")
}
