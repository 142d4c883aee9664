package artifacts

import (
	"context"

	"github.com/avilov/fieldsync/internal/server/models"
)

type Repository interface {
	Exists(ctx context.Context, organizationID, externalURI string) (bool, error)
	Create(ctx context.Context, artifact *models.Artifact) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*models.Artifact, error)
}
