package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/repomanager"
)

// Event types pushed to connected desks after a successful change.
const (
	EventPatientCreated         = "patient_created"
	EventPatientDeleted         = "patient_deleted"
	EventPatientHISIDUpdate     = "patient_his_id_update"
	EventEncounterCreated       = "encounter_created"
	EventEncounterStatusUpdated = "encounter_status_updated"
)

// Broadcaster fans an event out to every connected desk.
type Broadcaster interface {
	Broadcast(eventType string, data any)
}

type NewPatient struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

type NewPractitioner struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization"`
}

type NewEncounter struct {
	PatientID      int64     `json:"patient_id"`
	PractitionerID string    `json:"practitioner_id"`
	StartTime      time.Time `json:"start_time"`
}

type patientDeleted struct {
	ID int64 `json:"id"`
}

type patientHISIDUpdate struct {
	ID           int64  `json:"id"`
	HISPatientID string `json:"his_patient_id"`
}

type encounterStatusUpdated struct {
	ID     string                 `json:"id"`
	Status models.EncounterStatus `json:"status"`
}

// RecordsService manages patients, practitioners and encounters and
// announces every change through its Broadcaster.
type RecordsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	broadcaster Broadcaster
}

func NewRecordsService(db *sql.DB, m repomanager.RepositoryManager, b Broadcaster) *RecordsService {
	return &RecordsService{db: db, repomanager: m, broadcaster: b}
}

func (s *RecordsService) broadcast(eventType string, data any) {
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(eventType, data)
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{common.ErrorValidation}, args...)...)
}

func (s *RecordsService) Patients(ctx context.Context) ([]models.Patient, error) {
	return s.repomanager.Patients(s.db).List(ctx)
}

func (s *RecordsService) Patient(ctx context.Context, id int64) (*models.Patient, error) {
	return s.repomanager.Patients(s.db).Get(ctx, id)
}

func (s *RecordsService) CreatePatient(ctx context.Context, np NewPatient) (*models.Patient, error) {
	np.FirstName = strings.TrimSpace(np.FirstName)
	np.LastName = strings.TrimSpace(np.LastName)
	if np.FirstName == "" || np.LastName == "" {
		return nil, validationError("first_name and last_name are required")
	}
	if _, err := time.Parse(time.DateOnly, np.DateOfBirth); err != nil {
		return nil, validationError("date_of_birth must be YYYY-MM-DD")
	}

	p, err := s.repomanager.Patients(s.db).Create(ctx, &models.Patient{
		FirstName:   np.FirstName,
		LastName:    np.LastName,
		DateOfBirth: np.DateOfBirth,
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(EventPatientCreated, p)
	return p, nil
}

func (s *RecordsService) DeletePatient(ctx context.Context, id int64) error {
	if err := s.repomanager.Patients(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.broadcast(EventPatientDeleted, patientDeleted{ID: id})
	return nil
}

func (s *RecordsService) UpdatePatientHISID(ctx context.Context, id int64, hisPatientID string) error {
	hisPatientID = strings.TrimSpace(hisPatientID)
	if hisPatientID == "" {
		return validationError("his_patient_id is required")
	}
	if err := s.repomanager.Patients(s.db).UpdateHISID(ctx, id, hisPatientID); err != nil {
		return err
	}
	s.broadcast(EventPatientHISIDUpdate, patientHISIDUpdate{ID: id, HISPatientID: hisPatientID})
	return nil
}

func (s *RecordsService) Practitioners(ctx context.Context) ([]models.Practitioner, error) {
	return s.repomanager.Practitioners(s.db).List(ctx)
}

func (s *RecordsService) CreatePractitioner(ctx context.Context, np NewPractitioner) (*models.Practitioner, error) {
	p := &models.Practitioner{
		FirstName:      strings.TrimSpace(np.FirstName),
		MiddleName:     strings.TrimSpace(np.MiddleName),
		LastName:       strings.TrimSpace(np.LastName),
		Specialization: strings.TrimSpace(np.Specialization),
	}
	if p.FirstName == "" || p.LastName == "" || p.Specialization == "" {
		return nil, validationError("firstName, lastName and specialization are required")
	}
	return s.repomanager.Practitioners(s.db).Create(ctx, p)
}

func (s *RecordsService) Encounters(ctx context.Context) ([]models.Encounter, error) {
	return s.repomanager.Encounters(s.db).List(ctx)
}

func (s *RecordsService) EncountersByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error) {
	return s.repomanager.Encounters(s.db).ListByPractitioner(ctx, practitionerID)
}

// CreateEncounter books a planned encounter and returns it with the joined
// patient and practitioner names.
func (s *RecordsService) CreateEncounter(ctx context.Context, ne NewEncounter) (*models.Encounter, error) {
	if ne.PatientID <= 0 || strings.TrimSpace(ne.PractitionerID) == "" || ne.StartTime.IsZero() {
		return nil, validationError("patient_id, practitioner_id and start_time are required")
	}

	var created *models.Encounter
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Encounters(tx)
		e, err := repo.Create(ctx, &models.Encounter{
			PatientID:      ne.PatientID,
			PractitionerID: ne.PractitionerID,
			Status:         models.EncounterPlanned,
			StartTime:      ne.StartTime,
		})
		if err != nil {
			return err
		}
		created, err = repo.Get(ctx, e.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(EventEncounterCreated, created)
	return created, nil
}

func (s *RecordsService) UpdateEncounterStatus(ctx context.Context, id string, status models.EncounterStatus) error {
	if !status.Valid() {
		return validationError("unknown encounter status %q", status)
	}
	if err := s.repomanager.Encounters(s.db).UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.broadcast(EventEncounterStatusUpdated, encounterStatusUpdated{ID: id, Status: status})
	return nil
}
