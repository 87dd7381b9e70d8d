package domain

import "time"

// Project is the root of the instance hierarchy. It owns zero or more
// engineerings, which in turn own tasks and subtasks.
type Project struct {
	ID          string
	Name        string
	Description string
	Priority    int // 0 highest .. 9 lowest
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Creator     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
