package artifacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/dbx"
	"github.com/avilov/fieldsync/internal/server/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique-constraint errors.
const uniqueViolation = "23505"

// PostgresRepository implements artifact metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Exists reports whether an artifact row already exists for the
// (organization, external URI) dedup key.
func (r *PostgresRepository) Exists(ctx context.Context, organizationID, externalURI string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM org_artifacts WHERE organization_id=$1 AND external_uri=$2
	)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, organizationID, externalURI).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check artifact: %w", err)
	}
	return exists, nil
}

// Create inserts a new artifact metadata row. A unique violation on the
// dedup index is mapped to common.ErrDuplicateArtifact so that concurrent
// duplicate imports degrade to "already present" instead of failing the run.
func (r *PostgresRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	query := `
		INSERT INTO org_artifacts
			(organization_id, external_uri, stored_filename, category, participant_label, imported_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	res, err := r.db.ExecContext(ctx, query,
		artifact.OrganizationID, artifact.ExternalURI, artifact.StoredFilename,
		string(artifact.Category), artifact.ParticipantLabel, artifact.ImportedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateArtifact
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// ListByOrganization returns all imported artifacts of one organization,
// newest first.
func (r *PostgresRepository) ListByOrganization(ctx context.Context, organizationID string) ([]*models.Artifact, error) {
	query := `SELECT id, organization_id, external_uri, stored_filename, category, participant_label, imported_by, imported_at
		FROM org_artifacts WHERE organization_id=$1
		ORDER BY imported_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to select artifacts: %w", err)
	}
	defer rows.Close()

	var result []*models.Artifact
	for rows.Next() {
		var item models.Artifact
		var category string
		if err := rows.Scan(&item.ID, &item.OrganizationID, &item.ExternalURI, &item.StoredFilename,
			&category, &item.ParticipantLabel, &item.ImportedBy, &item.ImportedAt); err != nil {
			return nil, err
		}
		item.Category = models.Category(category)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
