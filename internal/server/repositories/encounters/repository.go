package encounters

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
)

type Repository interface {
	// List returns every encounter ordered by start time, with patient and
	// practitioner names joined in.
	List(ctx context.Context) ([]models.Encounter, error)
	ListByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error)
	Get(ctx context.Context, id string) (*models.Encounter, error)
	// Create books e. Unknown patient or practitioner references yield
	// common.ErrorValidation.
	Create(ctx context.Context, e *models.Encounter) (*models.Encounter, error)
	UpdateStatus(ctx context.Context, id string, status models.EncounterStatus) error
}
