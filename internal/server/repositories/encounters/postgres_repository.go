package encounters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectJoined = `
	SELECT e.id, e.patient_id, p.first_name, p.last_name,
	       e.practitioner_id, pr.first_name, pr.middle_name, pr.last_name, pr.specialization,
	       e.status, e.start_time, e.created_at
	FROM encounters e
	JOIN patients p ON p.id = e.patient_id
	JOIN practitioners pr ON pr.id = e.practitioner_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanEncounter(s scanner) (*models.Encounter, error) {
	var (
		e             models.Encounter
		pFirst, pLast string
		practitioner  models.Practitioner
		status        string
	)
	err := s.Scan(&e.ID, &e.PatientID, &pFirst, &pLast,
		&e.PractitionerID, &practitioner.FirstName, &practitioner.MiddleName, &practitioner.LastName, &e.PractitionerSpecialization,
		&status, &e.StartTime, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.PatientName = strings.TrimSpace(pFirst + " " + pLast)
	e.PractitionerName = practitioner.FullName()
	e.Status = models.EncounterStatus(status)
	return &e, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Encounter, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Encounter{}
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Encounter, error) {
	return r.list(ctx, selectJoined+`
	ORDER BY e.start_time`)
}

func (r *PostgresRepository) ListByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error) {
	return r.list(ctx, selectJoined+`
	WHERE e.practitioner_id = $1
	ORDER BY e.start_time`, practitionerID)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Encounter, error) {
	e, err := scanEncounter(r.db.QueryRowContext(ctx, selectJoined+`
	WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Encounter) (*models.Encounter, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = models.EncounterPlanned
	}

	query := `
		INSERT INTO encounters (id, patient_id, practitioner_id, status, start_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, e.ID, e.PatientID, e.PractitionerID, string(e.Status), e.StartTime).
		Scan(&e.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: unknown patient or practitioner", common.ErrorValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.EncounterStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE encounters SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
