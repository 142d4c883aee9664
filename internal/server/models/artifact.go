package models

import "time"

// Artifact is the persisted metadata of one imported binary artifact. The
// content itself lives in blob storage under StoredFilename. At most one row
// exists per (OrganizationID, ExternalURI); the row is created once by the
// transfer step and never updated.
type Artifact struct {
	ID               string
	OrganizationID   string
	ExternalURI      string
	StoredFilename   string
	Category         Category
	ParticipantLabel string
	ImportedBy       string
	ImportedAt       time.Time
}
