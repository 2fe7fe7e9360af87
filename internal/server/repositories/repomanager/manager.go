package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/clinicdesk/internal/dbx"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/encounters"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/patients"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/practitioners"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/clinicdesk/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a connection or an
// open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Patients(db dbx.DBTX) patients.Repository
	Practitioners(db dbx.DBTX) practitioners.Repository
	Encounters(db dbx.DBTX) encounters.Repository
}
