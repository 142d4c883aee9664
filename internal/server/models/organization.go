package models

import "time"

type Organization struct {
	ID             string
	Name           string
	SubmissionRoot string
	OwnerID        string
	CreatorURI     string
	CreatedAt      time.Time
}
