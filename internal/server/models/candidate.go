// Package models defines the data structures moved between the catalog
// reader, the sync pipeline, and the repositories.
package models

import "time"

// Category enumerates the kinds of binary artifacts discovered on the
// foreign store.
type Category string

const (
	// CategoryResponsible marks the signature of the organization's
	// responsible party.
	CategoryResponsible Category = "responsible"
	// CategoryParticipant marks a participant's signature; candidates in
	// this category carry the participant's display name.
	CategoryParticipant Category = "participant"
)

// Categories returns every artifact category a full discovery covers.
func Categories() []Category {
	return []Category{CategoryResponsible, CategoryParticipant}
}

// SyncCandidate is one binary artifact discovered on the foreign store
// during a sync run. Transient: it lives only for the duration of the run.
type SyncCandidate struct {
	// ExternalURI is the foreign store's stable, globally unique key for
	// this artifact. It is the dedup key: it must stay identical across
	// repeated discovery queries for the same remote artifact.
	ExternalURI string
	// ParentURI links the candidate to the submission (or participant) row
	// it was captured under.
	ParentURI string
	// CapturedAt is the remote capture time.
	CapturedAt time.Time
	// Payload is the binary content, already materialized by discovery so
	// that the transfer stage performs no foreign-store calls.
	Payload []byte
	// ByteSize is the payload size as reported by the foreign store.
	ByteSize int64
	// SuggestedFilename is the collector-supplied name. Never trusted as a
	// storage key on its own: it may collide across organizations.
	SuggestedFilename string
	Category          Category
	// ParticipantLabel is the participant's display name. Only set for
	// CategoryParticipant.
	ParticipantLabel string
}
