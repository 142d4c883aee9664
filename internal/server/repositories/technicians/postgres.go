package technicians

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/dbx"
	"github.com/avilov/fieldsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	query := `SELECT id, email, full_name, created_at FROM technicians WHERE id=$1`
	return r.get(ctx, query, id)
}

// GetByEmail looks a technician up case-insensitively, matching the
// normalization applied to creator-identity tokens.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Technician, error) {
	query := `SELECT id, email, full_name, created_at FROM technicians WHERE lower(email)=lower($1)`
	return r.get(ctx, query, email)
}

func (r *PostgresRepository) get(ctx context.Context, query string, arg any) (*models.Technician, error) {
	result := &models.Technician{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&result.ID, &result.Email, &result.FullName, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select technician: %w", err)
	}
	return result, nil
}
