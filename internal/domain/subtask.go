package domain

import (
	"fmt"
	"time"
)

// SubTask is an allocation slice of its parent task's planned quantity.
// EquipmentCount stays nil until the allocator assigns it; the sum of
// sibling allocations never exceeds the parent's equipment count.
// ParentTaskID is an optional grouping handle used when a task is split.
type SubTask struct {
	ID                   string
	TaskID               string
	ParentTaskID         *string
	TemplateID           *string
	Name                 string
	Description          string
	Priority             int
	Status               TaskStatus
	PlannedStart         *time.Time
	PlannedEnd           *time.Time
	EquipmentCount       *int
	ActualEquipmentCount *int
	CompletionRate       int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultSplitName is the subtask name used when a split request does not
// supply one.
func DefaultSplitName(parentName string) string {
	return fmt.Sprintf("%s - 子任務", parentName)
}

// CheckCounts verifies actual <= planned when both counts are set.
func (s *SubTask) CheckCounts() error {
	if s.EquipmentCount != nil && s.ActualEquipmentCount != nil && *s.ActualEquipmentCount > *s.EquipmentCount {
		return &ConsistencyError{Actual: *s.ActualEquipmentCount, Planned: *s.EquipmentCount}
	}
	if s.ActualEquipmentCount != nil && *s.ActualEquipmentCount < 0 {
		return &ValidationError{Field: "actual_equipment_count", Reason: "must not be negative"}
	}
	if s.EquipmentCount != nil && *s.EquipmentCount < 0 {
		return &ValidationError{Field: "equipment_count", Reason: "must not be negative"}
	}
	return nil
}
