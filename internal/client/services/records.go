package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/models"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

// RecordsService exposes the reception desk's resources. Every call goes
// through the request pipeline and so takes part in expiry recovery.
type RecordsService interface {
	Patients(ctx context.Context) ([]models.Patient, error)
	Patient(ctx context.Context, id int64) (*models.Patient, error)
	CreatePatient(ctx context.Context, p models.NewPatient) (*models.Patient, error)
	DeletePatient(ctx context.Context, id int64) error

	Practitioners(ctx context.Context) ([]models.Practitioner, error)
	CreatePractitioner(ctx context.Context, p models.NewPractitioner) (*models.Practitioner, error)

	Encounters(ctx context.Context) ([]models.Encounter, error)
	EncountersByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error)
	CreateEncounter(ctx context.Context, e models.NewEncounter) (string, error)
	UpdateEncounterStatus(ctx context.Context, id string, status models.EncounterStatus) error
}

type recordsService struct {
	api API
}

func NewRecordsService(api API) RecordsService {
	return &recordsService{api: api}
}

func (s *recordsService) Patients(ctx context.Context) ([]models.Patient, error) {
	return list[models.Patient](ctx, s.api, "/patients")
}

func (s *recordsService) Patient(ctx context.Context, id int64) (*models.Patient, error) {
	raw, err := s.api.Execute(ctx, http.MethodGet, "/patients/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[models.Patient](raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *recordsService) CreatePatient(ctx context.Context, np models.NewPatient) (*models.Patient, error) {
	if np.FirstName == "" || np.LastName == "" || np.DateOfBirth == "" {
		return nil, fmt.Errorf("%w: patient name and date of birth are required", common.ErrorValidation)
	}
	raw, err := s.api.Execute(ctx, http.MethodPost, "/patients", np, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[models.Patient](raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *recordsService) DeletePatient(ctx context.Context, id int64) error {
	_, err := s.api.Execute(ctx, http.MethodDelete, "/patients/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

func (s *recordsService) Practitioners(ctx context.Context) ([]models.Practitioner, error) {
	return list[models.Practitioner](ctx, s.api, "/practitioners")
}

func (s *recordsService) CreatePractitioner(ctx context.Context, np models.NewPractitioner) (*models.Practitioner, error) {
	raw, err := s.api.Execute(ctx, http.MethodPost, "/practitioners", np, nil)
	if err != nil {
		return nil, err
	}
	p, err := client.Decode[models.Practitioner](raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *recordsService) Encounters(ctx context.Context) ([]models.Encounter, error) {
	return list[models.Encounter](ctx, s.api, "/encounters")
}

func (s *recordsService) EncountersByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error) {
	return list[models.Encounter](ctx, s.api, "/encounters/"+url.PathEscape(practitionerID))
}

func (s *recordsService) CreateEncounter(ctx context.Context, ne models.NewEncounter) (string, error) {
	raw, err := s.api.Execute(ctx, http.MethodPost, "/encounters", ne, nil)
	if err != nil {
		return "", err
	}
	created, err := client.Decode[models.CreatedID](raw)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *recordsService) UpdateEncounterStatus(ctx context.Context, id string, status models.EncounterStatus) error {
	if !models.ValidEncounterStatus(status) {
		return fmt.Errorf("%w: unknown encounter status %q", common.ErrorValidation, status)
	}
	body := map[string]models.EncounterStatus{"status": status}
	_, err := s.api.Execute(ctx, http.MethodPatch, "/encounters/"+url.PathEscape(id), body, nil)
	return err
}

// list decodes a JSON array, treating a null body as empty.
func list[T any](ctx context.Context, api API, endpoint string) ([]T, error) {
	raw, err := api.Execute(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	items, err := client.Decode[[]T](raw)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
