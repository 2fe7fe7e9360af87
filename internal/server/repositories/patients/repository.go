// Package patients stores reception desk patients.
package patients

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
)

type Repository interface {
	// List returns all patients, newest first.
	List(ctx context.Context) ([]models.Patient, error)
	Get(ctx context.Context, id int64) (*models.Patient, error)
	// Create inserts p and fills in its ID and timestamps.
	Create(ctx context.Context, p *models.Patient) (*models.Patient, error)
	Delete(ctx context.Context, id int64) error
	UpdateHISID(ctx context.Context, id int64, hisPatientID string) error
}
