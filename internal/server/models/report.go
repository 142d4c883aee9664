package models

// OutcomeStatus classifies what happened to one candidate during a run.
type OutcomeStatus string

const (
	StatusImported       OutcomeStatus = "imported"
	StatusAlreadyPresent OutcomeStatus = "already_present"
	StatusFailed         OutcomeStatus = "failed"
)

// SyncOutcome is the per-candidate result of one run.
type SyncOutcome struct {
	ExternalURI string        `json:"external_uri"`
	Status      OutcomeStatus `json:"status"`
	// Message carries the underlying error text for StatusFailed, or a
	// short note otherwise.
	Message  string   `json:"message,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Category Category `json:"category"`
}

// SyncReport aggregates one sync invocation. It is returned to the caller
// and never persisted.
//
// Callers must rely on the numeric fields; Summary is a presentation
// convenience, not a machine-readable contract.
type SyncReport struct {
	RunID           string        `json:"run_id"`
	TotalDiscovered int           `json:"total_discovered"`
	AlreadyPresent  int           `json:"already_present"`
	Imported        int           `json:"imported"`
	Failed          int           `json:"failed"`
	Details         []SyncOutcome `json:"details"`
	// Succeeded is true iff no candidate failed. A run that imported
	// nothing new is still a success.
	Succeeded bool   `json:"succeeded"`
	Summary   string `json:"summary"`
}
