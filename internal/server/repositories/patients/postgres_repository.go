package patients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, his_patient_id, first_name, last_name, to_char(date_of_birth, 'YYYY-MM-DD'), created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPatient(s scanner) (*models.Patient, error) {
	p := &models.Patient{}
	var his sql.NullString
	if err := s.Scan(&p.ID, &his, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if his.Valid {
		p.HISPatientID = &his.String
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Patient, error) {
	query := `SELECT ` + selectColumns + `
		FROM patients
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Patient, error) {
	query := `SELECT ` + selectColumns + `
		FROM patients
		WHERE id = $1`

	p, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Patient) (*models.Patient, error) {
	query := `
		INSERT INTO patients (first_name, last_name, date_of_birth)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(ctx, query, p.FirstName, p.LastName, p.DateOfBirth).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Delete removes the patient. A missing row yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) UpdateHISID(ctx context.Context, id int64, hisPatientID string) error {
	query := `
		UPDATE patients
		SET his_patient_id = $2, updated_at = now()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, hisPatientID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
