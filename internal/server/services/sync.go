// Package services implements the reconciliation operations exposed to the
// host application: the preview/commit sync pipeline and the access-filtered
// organization queries.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/ids"
	"github.com/avilov/fieldsync/internal/logging"
	"github.com/avilov/fieldsync/internal/obs"
	"github.com/avilov/fieldsync/internal/server/catalog"
	"github.com/avilov/fieldsync/internal/server/models"
	"github.com/avilov/fieldsync/internal/server/repositories/artifacts"
	"github.com/avilov/fieldsync/internal/server/repositories/repomanager"
	"github.com/avilov/fieldsync/internal/server/storage"
)

// Mode selects between a read-only classification run and an actual import.
type Mode string

const (
	// ModePreview classifies candidates without writing anything.
	ModePreview Mode = "preview"
	// ModeCommit transfers new candidates into local storage.
	ModeCommit Mode = "commit"
)

// SyncService runs artifact synchronization for one organization at a time.
// Discovery talks to the foreign catalog; the transfer stage only touches
// the local store, so the two failure domains stay separate.
type SyncService struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	catalog catalog.Reader
	blobs   storage.BlobStorage
	logger  logging.Logger
	workers int
}

func NewSyncService(db *sql.DB, repos repomanager.RepositoryManager, reader catalog.Reader,
	blobs storage.BlobStorage, logger logging.Logger, workers int) *SyncService {
	if workers < 1 {
		workers = 1
	}
	return &SyncService{
		db:      db,
		repos:   repos,
		catalog: reader,
		blobs:   blobs,
		logger:  logger.With("module", "sync_service"),
		workers: workers,
	}
}

// Preview classifies every discoverable candidate without performing writes.
func (s *SyncService) Preview(ctx context.Context, organizationID string) (*models.SyncReport, error) {
	return s.sync(ctx, organizationID, ModePreview, "")
}

// Run imports every new candidate. principalEmail is recorded on created
// artifact rows for audit attribution. Re-running is always safe: the dedup
// check skips everything already imported, so a rerun only retries previous
// failures and picks up newly discovered candidates.
func (s *SyncService) Run(ctx context.Context, organizationID, principalEmail string) (*models.SyncReport, error) {
	return s.sync(ctx, organizationID, ModeCommit, principalEmail)
}

// ImportedArtifacts returns the organization's imported artifacts, newest
// first. The organization must exist.
func (s *SyncService) ImportedArtifacts(ctx context.Context, organizationID string) ([]*models.Artifact, error) {
	if _, err := s.repos.Organizations(s.db).GetByID(ctx, organizationID); err != nil {
		return nil, fmt.Errorf("organization lookup: %w", err)
	}
	return s.repos.Artifacts(s.db).ListByOrganization(ctx, organizationID)
}

func (s *SyncService) sync(ctx context.Context, organizationID string, mode Mode, importedBy string) (*models.SyncReport, error) {
	runID := ids.New()
	log := s.logger.With("run_id", runID, "org_id", organizationID, "mode", string(mode))
	started := time.Now()

	org, err := s.repos.Organizations(s.db).GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("organization lookup: %w", err)
	}

	if mode == ModeCommit {
		importedBy = s.resolveAttribution(ctx, importedBy)
	}

	candidates, err := s.catalog.Discover(ctx, org.SubmissionRoot, models.Categories())
	if err != nil {
		log.Error(ctx, "discovery failed", "error", err.Error())
		return nil, err
	}
	log.Info(ctx, "discovery finished", "candidates", len(candidates))

	outcomes := s.reconcile(ctx, org, candidates, mode, importedBy)

	report := BuildReport(outcomes)
	report.RunID = runID

	obs.ObserveRun(string(mode), report.Succeeded, time.Since(started))
	for _, o := range outcomes {
		obs.CountOutcome(string(o.Status))
	}

	log.Info(ctx, "run finished",
		"total", report.TotalDiscovered,
		"already_present", report.AlreadyPresent,
		"imported", report.Imported,
		"failed", report.Failed,
	)

	return report, nil
}

// resolveAttribution maps the principal's email to a technician id when the
// principal is registered. Unknown principals keep the raw email, so a run
// never blocks on attribution.
func (s *SyncService) resolveAttribution(ctx context.Context, email string) string {
	if email == "" {
		return ""
	}
	tech, err := s.repos.Technicians(s.db).GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "technician lookup failed", "email", email, "error", err.Error())
		}
		return email
	}
	return tech.ID
}

// reconcile classifies (and in commit mode transfers) every candidate.
// Candidates are independent, so they run on a bounded worker pool; each
// worker writes its outcome into the slot matching the candidate's discovery
// position, which keeps the final report deterministic. Workers never return
// errors: every per-candidate failure is downgraded to a Failed outcome so
// that one artifact can never abort the run.
func (s *SyncService) reconcile(ctx context.Context, org *models.Organization,
	candidates []models.SyncCandidate, mode Mode, importedBy string) []models.SyncOutcome {

	outcomes := make([]models.SyncOutcome, len(candidates))
	repo := s.repos.Artifacts(s.db)

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			outcomes[i] = s.reconcileOne(ctx, repo, org, c, mode, importedBy)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

func (s *SyncService) reconcileOne(ctx context.Context, repo artifacts.Repository,
	org *models.Organization, c models.SyncCandidate, mode Mode, importedBy string) models.SyncOutcome {

	// cancellation stops new transfers; finished work is still reported
	if err := ctx.Err(); err != nil {
		return failedOutcome(c, err)
	}

	exists, err := repo.Exists(ctx, org.ID, c.ExternalURI)
	if err != nil {
		return failedOutcome(c, err)
	}
	if exists {
		return models.SyncOutcome{
			ExternalURI: c.ExternalURI,
			Status:      models.StatusAlreadyPresent,
			Message:     "already imported",
			Filename:    c.SuggestedFilename,
			Category:    c.Category,
		}
	}

	if mode == ModePreview {
		return models.SyncOutcome{
			ExternalURI: c.ExternalURI,
			Status:      models.StatusImported,
			Message:     "available to import",
			Filename:    c.SuggestedFilename,
			Category:    c.Category,
		}
	}

	key := storage.NewStorageKey(org.ID, c.SuggestedFilename)

	if err := s.blobs.Put(ctx, key, c.Payload); err != nil {
		s.logger.Warn(ctx, "artifact transfer failed", "external_uri", c.ExternalURI, "error", err.Error())
		return failedOutcome(c, err)
	}

	err = repo.Create(ctx, &models.Artifact{
		OrganizationID:   org.ID,
		ExternalURI:      c.ExternalURI,
		StoredFilename:   key,
		Category:         c.Category,
		ParticipantLabel: c.ParticipantLabel,
		ImportedBy:       importedBy,
	})
	if errors.Is(err, common.ErrDuplicateArtifact) {
		// lost a race against a concurrent run; the artifact is present
		return models.SyncOutcome{
			ExternalURI: c.ExternalURI,
			Status:      models.StatusAlreadyPresent,
			Message:     "imported concurrently",
			Filename:    c.SuggestedFilename,
			Category:    c.Category,
		}
	}
	if err != nil {
		s.logger.Warn(ctx, "artifact metadata write failed", "external_uri", c.ExternalURI, "error", err.Error())
		return failedOutcome(c, err)
	}

	return models.SyncOutcome{
		ExternalURI: c.ExternalURI,
		Status:      models.StatusImported,
		Filename:    key,
		Category:    c.Category,
	}
}

func failedOutcome(c models.SyncCandidate, err error) models.SyncOutcome {
	return models.SyncOutcome{
		ExternalURI: c.ExternalURI,
		Status:      models.StatusFailed,
		Message:     err.Error(),
		Filename:    c.SuggestedFilename,
		Category:    c.Category,
	}
}
