// Package catalog reads candidate binary artifacts from the foreign
// data-collection store. The store belongs to the external platform and is
// only ever queried read-only, over its own connection and credentials.
package catalog

import (
	"context"

	"github.com/avilov/fieldsync/internal/server/models"
)

// Reader discovers sync candidates for one submission root.
type Reader interface {
	// Discover returns every candidate artifact tied to submissionRoot in
	// the requested categories, in a stable order. An organization with no
	// prior remote submission (empty submissionRoot) yields an empty list.
	// Connectivity or query errors fail the whole call; there is nothing to
	// partially succeed at during discovery.
	Discover(ctx context.Context, submissionRoot string, categories []models.Category) ([]models.SyncCandidate, error)
}
