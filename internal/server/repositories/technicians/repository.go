package technicians

import (
	"context"

	"github.com/avilov/fieldsync/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Technician, error)
	GetByEmail(ctx context.Context, email string) (*models.Technician, error)
}
