package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
	"github.com/dmitrijs2005/clinicdesk/internal/server/services"
)

var errValidation = fmt.Errorf("%w: first_name and last_name are required", common.ErrorValidation)

type fakeUsers struct {
	registerErr error
	loginPair   *services.TokenPair
	loginErr    error
	refreshOut  string
	refreshErr  error
	refreshedBy string
	loggedOut   []string
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u1", UserName: username}, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginPair, nil
}

func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	f.refreshedBy = refreshToken
	return f.refreshOut, f.refreshErr
}

func (f *fakeUsers) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

func (f *fakeUsers) RefreshTokenValidity() time.Duration { return 7 * 24 * time.Hour }

type fakeRecords struct {
	patients     []models.Patient
	createdP     services.NewPatient
	deleteErr    error
	hisID        string
	byPract      string
	createdE     services.NewEncounter
	statusID     string
	status       models.EncounterStatus
	practitioner services.NewPractitioner
}

func (f *fakeRecords) Patients(ctx context.Context) ([]models.Patient, error) { return f.patients, nil }

func (f *fakeRecords) Patient(ctx context.Context, id int64) (*models.Patient, error) {
	for i := range f.patients {
		if f.patients[i].ID == id {
			return &f.patients[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRecords) CreatePatient(ctx context.Context, np services.NewPatient) (*models.Patient, error) {
	f.createdP = np
	if np.FirstName == "" {
		return nil, errValidation
	}
	return &models.Patient{ID: 5, FirstName: np.FirstName, LastName: np.LastName, DateOfBirth: np.DateOfBirth}, nil
}

func (f *fakeRecords) DeletePatient(ctx context.Context, id int64) error { return f.deleteErr }

func (f *fakeRecords) UpdatePatientHISID(ctx context.Context, id int64, hisPatientID string) error {
	f.hisID = hisPatientID
	return nil
}

func (f *fakeRecords) Practitioners(ctx context.Context) ([]models.Practitioner, error) {
	return []models.Practitioner{{ID: "p1", FirstName: "Greg", LastName: "House", Specialization: "Diagnostics"}}, nil
}

func (f *fakeRecords) CreatePractitioner(ctx context.Context, np services.NewPractitioner) (*models.Practitioner, error) {
	f.practitioner = np
	return &models.Practitioner{ID: "p2", FirstName: np.FirstName, LastName: np.LastName, Specialization: np.Specialization}, nil
}

func (f *fakeRecords) Encounters(ctx context.Context) ([]models.Encounter, error) { return nil, nil }

func (f *fakeRecords) EncountersByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error) {
	f.byPract = practitionerID
	return []models.Encounter{}, nil
}

func (f *fakeRecords) CreateEncounter(ctx context.Context, ne services.NewEncounter) (*models.Encounter, error) {
	f.createdE = ne
	return &models.Encounter{ID: "e1"}, nil
}

func (f *fakeRecords) UpdateEncounterStatus(ctx context.Context, id string, status models.EncounterStatus) error {
	f.statusID, f.status = id, status
	if !status.Valid() {
		return errValidation
	}
	return nil
}
