package domain

import (
	"math"
	"time"
)

// Task is a schedulable work item with a planned unit quantity.
// EquipmentCount is the task's own planned capacity; subtasks consume from
// it but never overwrite it. ActualEquipmentCount and CompletionRate are
// derived from subtasks whenever the task has any.
type Task struct {
	ID                   string
	EngineeringID        string
	ProjectID            string
	TemplateID           *string
	Name                 string
	Description          string
	Priority             int // 0 highest .. 9 lowest
	Status               TaskStatus
	EquipmentCount       *int
	ActualEquipmentCount int
	CompletionRate       int // 0-100
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CompletionRate computes the completion percentage for an actual count
// against a planned count: round(100 * actual / planned) clamped to
// [0, 100]. A nil or zero planned count yields 0.
func CompletionRate(actual int, planned *int) int {
	if planned == nil || *planned <= 0 {
		return 0
	}
	rate := int(math.Round(100 * float64(actual) / float64(*planned)))
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// StatusForRate derives the lifecycle status from a completion rate.
// This is the only transition path once a task has subtasks.
func StatusForRate(rate int) TaskStatus {
	switch {
	case rate <= 0:
		return TaskTodo
	case rate >= 100:
		return TaskDone
	default:
		return TaskInProgress
	}
}

// CheckCounts verifies that the actual count does not exceed the planned
// count when a planned count is set.
func (t *Task) CheckCounts() error {
	if t.EquipmentCount != nil && t.ActualEquipmentCount > *t.EquipmentCount {
		return &ConsistencyError{Actual: t.ActualEquipmentCount, Planned: *t.EquipmentCount}
	}
	if t.ActualEquipmentCount < 0 {
		return &ValidationError{Field: "actual_equipment_count", Reason: "must not be negative"}
	}
	return nil
}
