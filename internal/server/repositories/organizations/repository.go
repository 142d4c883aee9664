package organizations

import (
	"context"

	"github.com/avilov/fieldsync/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	List(ctx context.Context) ([]*models.Organization, error)
}
