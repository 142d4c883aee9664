// Package common defines shared constants and sentinel errors used across
// the layers of fieldsync. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateArtifact is returned when an artifact metadata row already
	// exists for the same (organization, external URI) pair. The sync
	// pipeline treats it as "already present", not as a failure.
	ErrDuplicateArtifact = errors.New("artifact already imported")

	// ErrCatalogUnavailable wraps connection/query failures against the
	// foreign data-collection store. Fatal for the whole discovery call.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrUnknownStorageBackend is returned when configuration names a blob
	// storage backend that is not compiled in.
	ErrUnknownStorageBackend = errors.New("unknown storage backend")
)
