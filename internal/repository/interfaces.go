package repository

import (
	"context"

	"github.com/hylin-tw/worksite/internal/domain"
)

// Repositories are grouped per aggregate root: projects, engineerings,
// tasks together with their subtasks, and the template tree.

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type EngineeringRepo interface {
	Create(ctx context.Context, e *domain.Engineering) error
	GetByID(ctx context.Context, id string) (*domain.Engineering, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Engineering, error)
	Update(ctx context.Context, e *domain.Engineering) error
	Delete(ctx context.Context, id string) error
}

// TaskRepo covers the task aggregate: tasks and their subtasks.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByEngineering(ctx context.Context, engineeringID string) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error

	CreateSubTask(ctx context.Context, s *domain.SubTask) error
	GetSubTask(ctx context.Context, id string) (*domain.SubTask, error)
	ListSubTasks(ctx context.Context, taskID string) ([]*domain.SubTask, error)
	UpdateSubTask(ctx context.Context, s *domain.SubTask) error
	DeleteSubTask(ctx context.Context, id string) error
}

// TemplateRepo covers the whole template tree.
type TemplateRepo interface {
	CreateProjectTemplate(ctx context.Context, t *domain.ProjectTemplate) error
	GetProjectTemplate(ctx context.Context, id string) (*domain.ProjectTemplate, error)
	ListProjectTemplates(ctx context.Context) ([]*domain.ProjectTemplate, error)
	DeleteProjectTemplate(ctx context.Context, id string) error

	CreateEngineeringTemplate(ctx context.Context, t *domain.EngineeringTemplate) error
	GetEngineeringTemplate(ctx context.Context, id string) (*domain.EngineeringTemplate, error)
	ListEngineeringTemplates(ctx context.Context) ([]*domain.EngineeringTemplate, error)
	DeleteEngineeringTemplate(ctx context.Context, id string) error

	CreateTaskTemplate(ctx context.Context, t *domain.TaskTemplate) error
	GetTaskTemplate(ctx context.Context, id string) (*domain.TaskTemplate, error)
	ListTaskTemplates(ctx context.Context, engineeringTemplateID string) ([]*domain.TaskTemplate, error)
	DeleteTaskTemplate(ctx context.Context, id string) error

	CreateSubTaskTemplate(ctx context.Context, t *domain.SubTaskTemplate) error
	GetSubTaskTemplate(ctx context.Context, id string) (*domain.SubTaskTemplate, error)
	ListSubTaskTemplates(ctx context.Context, taskTemplateID string) ([]*domain.SubTaskTemplate, error)
	DeleteSubTaskTemplate(ctx context.Context, id string) error
}
