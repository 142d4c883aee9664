// Package server wires the reconciliation engine together: configuration,
// logging, the two database handles (registry and foreign catalog), blob
// storage, and the sync service. The host application embeds an App and
// calls its operations; there is no wire protocol here.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avilov/fieldsync/internal/access"
	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/logging"
	"github.com/avilov/fieldsync/internal/obs"
	"github.com/avilov/fieldsync/internal/server/catalog"
	"github.com/avilov/fieldsync/internal/server/config"
	"github.com/avilov/fieldsync/internal/server/models"
	"github.com/avilov/fieldsync/internal/server/repositories/repomanager"
	"github.com/avilov/fieldsync/internal/server/services"
	"github.com/avilov/fieldsync/internal/server/storage"
)

// seams for tests
var (
	openDB               = sql.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	catalogDB   *sql.DB
	syncService *services.SyncService
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	obs.Init()

	db, err := openDB("pgx", c.PrimaryDatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("primary db open error: %w", err)
	}

	catalogDB, err := openDB("pgx", c.CatalogDatabaseDSN)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog db open error: %w", err)
	}

	repos := newRepositoryManager()
	if err := repos.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		catalogDB.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := newBlobStorage(c)
	if err != nil {
		db.Close()
		catalogDB.Close()
		return nil, err
	}

	reader := catalog.NewPostgresReader(catalogDB, c.CatalogQueryTimeout)
	syncService := services.NewSyncService(db, repos, reader, blobs, logger, c.SyncWorkers)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		catalogDB:   catalogDB,
		syncService: syncService,
	}, nil
}

func newBlobStorage(c *config.Config) (storage.BlobStorage, error) {
	switch c.StorageBackend {
	case config.StorageBackendS3:
		return storage.NewS3Storage(c)
	case config.StorageBackendFile:
		return storage.NewFileStorage(c.FileStorageDir)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownStorageBackend, c.StorageBackend)
	}
}

// PreviewSync classifies everything discoverable for the organization
// without writing.
func (app *App) PreviewSync(ctx context.Context, organizationID string) (*models.SyncReport, error) {
	return app.syncService.Preview(ctx, organizationID)
}

// RunSync imports new artifacts for the organization, attributing created
// records to principalEmail.
func (app *App) RunSync(ctx context.Context, organizationID, principalEmail string) (*models.SyncReport, error) {
	return app.syncService.Run(ctx, organizationID, principalEmail)
}

// ImportedArtifacts lists what has been imported for the organization,
// newest first.
func (app *App) ImportedArtifacts(ctx context.Context, organizationID string) ([]*models.Artifact, error) {
	return app.syncService.ImportedArtifacts(ctx, organizationID)
}

// ResolveAccess answers the single-record ownership question for the host
// application's detail and mutation paths.
func (app *App) ResolveAccess(ctx context.Context, p access.Principal, organizationID string, scope access.Scope) (bool, error) {
	return app.syncService.ResolveAccess(ctx, p, organizationID, scope)
}

// AccessibleOrganizations lists the organizations the principal may see.
func (app *App) AccessibleOrganizations(ctx context.Context, p access.Principal, scope access.Scope) ([]*models.Organization, error) {
	return app.syncService.AccessibleOrganizations(ctx, p, scope)
}

// MetricsHandler exposes the Prometheus metrics; the host application
// mounts it on its own router.
func (app *App) MetricsHandler() http.Handler {
	return obs.Handler()
}

// Close releases both database handles.
func (app *App) Close() error {
	var firstErr error
	if err := app.db.Close(); err != nil {
		firstErr = err
	}
	if err := app.catalogDB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
