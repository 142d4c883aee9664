package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/avilov/fieldsync/internal/common"
	"github.com/avilov/fieldsync/internal/dbx"
	"github.com/avilov/fieldsync/internal/server/models"
)

// Queries against the collector's generated schema. Signature blobs hang off
// per-category binary tables keyed by the submission's top-level URI; the
// participant variant joins the participant row for its display name. The
// ORDER BY keeps discovery order stable across runs for deterministic
// reporting.
const (
	responsibleQuery = `
		SELECT a.uri, a.top_level_uri, a.creation_date, b.content, octet_length(b.content), a.unrooted_file_path
		FROM resp_signature_bn a
		JOIN resp_signature_blb b ON b.parent_uri = a.uri
		WHERE a.top_level_uri = $1
		ORDER BY a.uri`

	participantQuery = `
		SELECT a.uri, a.parent_uri, a.creation_date, b.content, octet_length(b.content), a.unrooted_file_path, p.full_name
		FROM participant_signature_bn a
		JOIN participant_signature_blb b ON b.parent_uri = a.uri
		JOIN participants p ON p.uri = a.parent_uri
		WHERE a.top_level_uri = $1
		ORDER BY a.uri`
)

// PostgresReader implements Reader over the foreign store's PostgreSQL
// database. The connection is injected so its lifecycle is managed once at
// process scope, and so tests can substitute a mock.
type PostgresReader struct {
	db           dbx.DBTX
	queryTimeout time.Duration
}

// NewPostgresReader constructs a reader over db. queryTimeout bounds each
// category query; zero disables the deadline.
func NewPostgresReader(db dbx.DBTX, queryTimeout time.Duration) *PostgresReader {
	return &PostgresReader{db: db, queryTimeout: queryTimeout}
}

func (r *PostgresReader) Discover(ctx context.Context, submissionRoot string, categories []models.Category) ([]models.SyncCandidate, error) {
	// no remote submission yet, nothing to discover
	if submissionRoot == "" {
		return nil, nil
	}

	var result []models.SyncCandidate
	for _, category := range categories {
		candidates, err := r.discoverCategory(ctx, submissionRoot, category)
		if err != nil {
			return nil, err
		}
		result = append(result, candidates...)
	}
	return result, nil
}

func (r *PostgresReader) discoverCategory(ctx context.Context, submissionRoot string, category models.Category) ([]models.SyncCandidate, error) {
	var query string
	switch category {
	case models.CategoryResponsible:
		query = responsibleQuery
	case models.CategoryParticipant:
		query = participantQuery
	default:
		return nil, fmt.Errorf("unknown artifact category: %s", category)
	}

	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	rows, err := r.db.QueryContext(ctx, query, submissionRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s query: %v", common.ErrCatalogUnavailable, category, err)
	}
	defer rows.Close()

	var result []models.SyncCandidate
	for rows.Next() {
		item := models.SyncCandidate{Category: category}
		var dest []any
		if category == models.CategoryParticipant {
			dest = []any{&item.ExternalURI, &item.ParentURI, &item.CapturedAt, &item.Payload, &item.ByteSize, &item.SuggestedFilename, &item.ParticipantLabel}
		} else {
			dest = []any{&item.ExternalURI, &item.ParentURI, &item.CapturedAt, &item.Payload, &item.ByteSize, &item.SuggestedFilename}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %s scan: %v", common.ErrCatalogUnavailable, category, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s rows: %v", common.ErrCatalogUnavailable, category, err)
	}
	return result, nil
}
