package models

import "time"

type Technician struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}
