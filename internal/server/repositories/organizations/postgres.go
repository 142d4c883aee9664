package organizations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/dbx"
	"github.com/avilov/fieldsync/internal/server/models"
)

// PostgresRepository reads organizations from the registry database. The
// reconciliation engine never writes organizations; their CRUD belongs to
// the host application.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns one organization or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := `SELECT id, name, submission_root, COALESCE(owner_id::text, ''), creator_uri, created_at
		FROM organizations WHERE id=$1`

	result := &models.Organization{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&result.ID, &result.Name, &result.SubmissionRoot, &result.OwnerID, &result.CreatorURI, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select organization: %w", err)
	}
	return result, nil
}

// List returns every organization, in name order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Organization, error) {
	query := `SELECT id, name, submission_root, COALESCE(owner_id::text, ''), creator_uri, created_at
		FROM organizations ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select organizations: %w", err)
	}
	defer rows.Close()

	var result []*models.Organization
	for rows.Next() {
		var item models.Organization
		if err := rows.Scan(&item.ID, &item.Name, &item.SubmissionRoot, &item.OwnerID, &item.CreatorURI, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
