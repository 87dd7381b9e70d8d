package domain

import "time"

// Engineering groups tasks under a project. It is created either standalone
// or by materializing an engineering template, in which case TemplateID
// records the origin.
type Engineering struct {
	ID          string
	ProjectID   string
	TemplateID  *string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
