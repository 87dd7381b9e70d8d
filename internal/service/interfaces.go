package service

import (
	"context"
	"time"

	"github.com/hylin-tw/worksite/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type EngineeringService interface {
	Create(ctx context.Context, e *domain.Engineering) error
	GetByID(ctx context.Context, id string) (*domain.Engineering, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Engineering, error)
	Update(ctx context.Context, e *domain.Engineering) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByEngineering(ctx context.Context, engineeringID string) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// SplitInput describes a requested subtask split of a parent task.
// Unset optional fields are defaulted from the parent.
type SplitInput struct {
	ParentTaskID         string
	Name                 string
	Description          string
	PlannedStart         *time.Time
	PlannedEnd           *time.Time
	EquipmentCount       *int
	ActualEquipmentCount *int
}

// SubTaskUpdateInput carries the mutable subtask fields for Update.
// Nil pointers leave the stored value untouched.
type SubTaskUpdateInput struct {
	Name                 *string
	Description          *string
	Priority             *int
	PlannedStart         *time.Time
	PlannedEnd           *time.Time
	EquipmentCount       *int
	ActualEquipmentCount *int
}

// SubTaskService is the equipment allocator: every mutation revalidates
// sibling allocation and recalculates the parent task in the same
// transaction.
type SubTaskService interface {
	Split(ctx context.Context, in SplitInput) (*domain.SubTask, error)
	GetByID(ctx context.Context, id string) (*domain.SubTask, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.SubTask, error)
	Update(ctx context.Context, id string, in SubTaskUpdateInput) (*domain.SubTask, error)
	Delete(ctx context.Context, id string) error
}

// ProgressService recalculates a task's aggregate fields from its subtasks.
type ProgressService interface {
	Recalculate(ctx context.Context, taskID string) (*domain.Task, error)
}

// MaterializeInput selects an engineering template and the per-task-template
// instantiation counts. A missing count defaults to 1.
type MaterializeInput struct {
	EngineeringTemplateID string
	ProjectID             string
	Name                  string
	Description           string
	TaskCounts            map[string]int
}

// MaterializeResult reports everything the materializer created, plus the
// task templates it had to skip, so callers can detect partial results.
type MaterializeResult struct {
	Engineering            *domain.Engineering
	Tasks                  []*domain.Task
	SubTasks               []*domain.SubTask
	SkippedTaskTemplateIDs []string
}

type MaterializeService interface {
	Materialize(ctx context.Context, in MaterializeInput) (*MaterializeResult, error)
}

// TemplateTree is an engineering template with its task and subtask templates.
type TemplateTree struct {
	Engineering *domain.EngineeringTemplate
	Tasks       []*domain.TaskTemplate
	SubTasks    map[string][]*domain.SubTaskTemplate // keyed by task template id
}

type TemplateService interface {
	CreateProjectTemplate(ctx context.Context, t *domain.ProjectTemplate) error
	CreateEngineeringTemplate(ctx context.Context, t *domain.EngineeringTemplate) error
	CreateTaskTemplate(ctx context.Context, t *domain.TaskTemplate) error
	CreateSubTaskTemplate(ctx context.Context, t *domain.SubTaskTemplate) error
	ListEngineeringTemplates(ctx context.Context) ([]*domain.EngineeringTemplate, error)
	Tree(ctx context.Context, engineeringTemplateID string) (*TemplateTree, error)
	DeleteEngineeringTemplate(ctx context.Context, id string) error
	DeleteTaskTemplate(ctx context.Context, id string) error
	DeleteSubTaskTemplate(ctx context.Context, id string) error
}
