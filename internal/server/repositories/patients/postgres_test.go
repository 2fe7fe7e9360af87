package patients

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
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

var patientColumns = []string{"id", "his_patient_id", "first_name", "last_name", "date_of_birth", "created_at", "updated_at"}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	rows := sqlmock.NewRows(patientColumns).
		AddRow(int64(2), "HIS-2", "Bo", "Ray", "1985-05-05", now, now).
		AddRow(int64(1), nil, "Ann", "Lee", "1990-01-02", now, now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+patients\s+ORDER\s+BY\s+created_at\s+DESC`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].HISPatientID)
	assert.Equal(t, "HIS-2", *got[0].HISPatientID)
	assert.Nil(t, got[1].HISPatientID)
	assert.Equal(t, "1990-01-02", got[1].DateOfBirth)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+patients`).WillReturnRows(sqlmock.NewRows(patientColumns))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+patients\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(patientColumns).AddRow(int64(7), nil, "Ann", "Lee", "1990-01-02", now, now))

	p, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)

	mock.ExpectQuery(`FROM\s+patients`).WithArgs(int64(8)).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), 8)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+patients\s*\(first_name,\s*last_name,\s*date_of_birth\)`).
		WithArgs("Ann", "Lee", "1990-01-02").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	p, err := repo.Create(context.Background(), &models.Patient{FirstName: "Ann", LastName: "Lee", DateOfBirth: "1990-01-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.True(t, p.CreatedAt.Equal(now))
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+patients\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec(`DELETE\s+FROM\s+patients`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), common.ErrorNotFound)

	mock.ExpectExec(`DELETE\s+FROM\s+patients`).
		WithArgs(int64(5)).
		WillReturnError(errors.New("db down"))
	err := repo.Delete(context.Background(), 5)
	assert.ErrorContains(t, err, "db error: db down")
}

func TestUpdateHISID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE\s+patients\s+SET\s+his_patient_id\s*=\s*\$2`).
		WithArgs(int64(3), "HIS-9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateHISID(context.Background(), 3, "HIS-9"))

	mock.ExpectExec(`UPDATE\s+patients`).
		WithArgs(int64(4), "HIS-9").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateHISID(context.Background(), 4, "HIS-9"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
