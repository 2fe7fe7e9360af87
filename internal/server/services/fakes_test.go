package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/encounters"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/patients"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/practitioners"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createIn  *models.User
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createIn = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	deleted []string
	delErr  error

	created   []string
	createErr error

	purgedBefore time.Time
	purgeOut     int64
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.purgedBefore = now
	return f.purgeOut, nil
}

type fakePatientsRepo struct {
	list      []models.Patient
	created   *models.Patient
	deleteErr error
	updateErr error
	hisID     string
}

func (f *fakePatientsRepo) List(ctx context.Context) ([]models.Patient, error) { return f.list, nil }

func (f *fakePatientsRepo) Get(ctx context.Context, id int64) (*models.Patient, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			return &f.list[i], nil
		}
	}
	return nil, nil
}

func (f *fakePatientsRepo) Create(ctx context.Context, p *models.Patient) (*models.Patient, error) {
	p.ID = 10
	f.created = p
	return p, nil
}

func (f *fakePatientsRepo) Delete(ctx context.Context, id int64) error { return f.deleteErr }

func (f *fakePatientsRepo) UpdateHISID(ctx context.Context, id int64, hisPatientID string) error {
	f.hisID = hisPatientID
	return f.updateErr
}

type fakePractitionersRepo struct {
	created *models.Practitioner
}

func (f *fakePractitionersRepo) List(ctx context.Context) ([]models.Practitioner, error) {
	return nil, nil
}

func (f *fakePractitionersRepo) Get(ctx context.Context, id string) (*models.Practitioner, error) {
	return nil, nil
}

func (f *fakePractitionersRepo) Create(ctx context.Context, p *models.Practitioner) (*models.Practitioner, error) {
	p.ID = "p1"
	f.created = p
	return p, nil
}

type fakeEncountersRepo struct {
	createErr error
	getOut    *models.Encounter
	updateErr error
	updated   models.EncounterStatus
	byPract   string
}

func (f *fakeEncountersRepo) List(ctx context.Context) ([]models.Encounter, error) { return nil, nil }

func (f *fakeEncountersRepo) ListByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error) {
	f.byPract = practitionerID
	return nil, nil
}

func (f *fakeEncountersRepo) Get(ctx context.Context, id string) (*models.Encounter, error) {
	return f.getOut, nil
}

func (f *fakeEncountersRepo) Create(ctx context.Context, e *models.Encounter) (*models.Encounter, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	e.ID = "e1"
	return e, nil
}

func (f *fakeEncountersRepo) UpdateStatus(ctx context.Context, id string, status models.EncounterStatus) error {
	f.updated = status
	return f.updateErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	p  *fakePatientsRepo
	pr *fakePractitionersRepo
	e  *fakeEncountersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Patients(db dbx.DBTX) patients.Repository           { return m.p }
func (m *fakeRepoManager) Practitioners(db dbx.DBTX) practitioners.Repository { return m.pr }
func (m *fakeRepoManager) Encounters(db dbx.DBTX) encounters.Repository       { return m.e }

type broadcastCall struct {
	eventType string
	data      any
}

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *recordingBroadcaster) Broadcast(eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{eventType: eventType, data: data})
}
