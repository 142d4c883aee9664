// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/avilov/fieldsync/internal/dbx"
	"github.com/avilov/fieldsync/internal/server/migrations"
	"github.com/avilov/fieldsync/internal/server/repositories/artifacts"
	"github.com/avilov/fieldsync/internal/server/repositories/organizations"
	"github.com/avilov/fieldsync/internal/server/repositories/technicians"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Artifacts returns an artifacts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Artifacts(db dbx.DBTX) artifacts.Repository {
	return artifacts.NewPostgresRepository(db)
}

// Organizations returns an organizations.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Organizations(db dbx.DBTX) organizations.Repository {
	return organizations.NewPostgresRepository(db)
}

// Technicians returns a technicians.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Technicians(db dbx.DBTX) technicians.Repository {
	return technicians.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection. Only the primary (registry)
// database is ever migrated; the foreign catalog is read-only.
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

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
