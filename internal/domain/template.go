package domain

import "time"

// The template hierarchy mirrors the instance hierarchy but carries no
// runtime progress fields. Equipment counts come from the caller at
// materialization time, never from the template.

type ProjectTemplate struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EngineeringTemplate struct {
	ID                string
	ProjectTemplateID *string
	Name              string
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TaskTemplate priority is restricted to 0 (high), 1 (medium), 2 (low).
type TaskTemplate struct {
	ID                    string
	EngineeringTemplateID string
	Name                  string
	Description           string
	Priority              int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type SubTaskTemplate struct {
	ID             string
	TaskTemplateID string
	Name           string
	Description    string
	Priority       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
