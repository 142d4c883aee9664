package repomanager

import (
	"context"
	"database/sql"

	"github.com/avilov/fieldsync/internal/dbx"
	"github.com/avilov/fieldsync/internal/server/repositories/artifacts"
	"github.com/avilov/fieldsync/internal/server/repositories/organizations"
	"github.com/avilov/fieldsync/internal/server/repositories/technicians"
)

// RepositoryManager vends registry-side repositories bound to a DBTX, so
// services can run several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Artifacts(db dbx.DBTX) artifacts.Repository
	Organizations(db dbx.DBTX) organizations.Repository
	Technicians(db dbx.DBTX) technicians.Repository
}
