package practitioners

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Practitioner, error)
	Get(ctx context.Context, id string) (*models.Practitioner, error)
	// Create assigns a fresh ID when p.ID is empty.
	Create(ctx context.Context, p *models.Practitioner) (*models.Practitioner, error)
}
