package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/server/migrations"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/encounters"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/patients"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/practitioners"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var gooseUpContext = goose.UpContext

type PostgresRepositoryManager struct {
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Patients(db dbx.DBTX) patients.Repository {
	return patients.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Practitioners(db dbx.DBTX) practitioners.Repository {
	return practitioners.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Encounters(db dbx.DBTX) encounters.Repository {
	return encounters.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {

	m := &PostgresRepositoryManager{}

	return m, nil
}
