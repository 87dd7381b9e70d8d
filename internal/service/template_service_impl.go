package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

type templateService struct {
	templates repository.TemplateRepo
}

func NewTemplateService(templates repository.TemplateRepo) TemplateService {
	return &templateService{templates: templates}
}

func (s *templateService) CreateProjectTemplate(ctx context.Context, t *domain.ProjectTemplate) error {
	name, err := domain.NewName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name
	stampNew(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return s.templates.CreateProjectTemplate(ctx, t)
}

func (s *templateService) CreateEngineeringTemplate(ctx context.Context, t *domain.EngineeringTemplate) error {
	name, err := domain.NewName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name
	if t.ProjectTemplateID != nil {
		if _, err := s.templates.GetProjectTemplate(ctx, *t.ProjectTemplateID); err != nil {
			return err
		}
	}
	stampNew(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return s.templates.CreateEngineeringTemplate(ctx, t)
}

func (s *templateService) CreateTaskTemplate(ctx context.Context, t *domain.TaskTemplate) error {
	name, err := domain.NewName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name
	if t.Priority, err = domain.NewTemplatePriority(t.Priority); err != nil {
		return err
	}
	if _, err := s.templates.GetEngineeringTemplate(ctx, t.EngineeringTemplateID); err != nil {
		return err
	}
	stampNew(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return s.templates.CreateTaskTemplate(ctx, t)
}

func (s *templateService) CreateSubTaskTemplate(ctx context.Context, t *domain.SubTaskTemplate) error {
	name, err := domain.NewName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name
	if t.Priority, err = domain.NewTemplatePriority(t.Priority); err != nil {
		return err
	}
	if _, err := s.templates.GetTaskTemplate(ctx, t.TaskTemplateID); err != nil {
		return err
	}
	stampNew(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return s.templates.CreateSubTaskTemplate(ctx, t)
}

func (s *templateService) ListEngineeringTemplates(ctx context.Context) ([]*domain.EngineeringTemplate, error) {
	return s.templates.ListEngineeringTemplates(ctx)
}

// Tree loads an engineering template with its full task/subtask subtree.
func (s *templateService) Tree(ctx context.Context, engineeringTemplateID string) (*TemplateTree, error) {
	eng, err := s.templates.GetEngineeringTemplate(ctx, engineeringTemplateID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.templates.ListTaskTemplates(ctx, eng.ID)
	if err != nil {
		return nil, err
	}

	subtasks := make(map[string][]*domain.SubTaskTemplate, len(tasks))
	for _, tt := range tasks {
		subs, err := s.templates.ListSubTaskTemplates(ctx, tt.ID)
		if err != nil {
			return nil, err
		}
		subtasks[tt.ID] = subs
	}

	return &TemplateTree{Engineering: eng, Tasks: tasks, SubTasks: subtasks}, nil
}

func (s *templateService) DeleteEngineeringTemplate(ctx context.Context, id string) error {
	return s.templates.DeleteEngineeringTemplate(ctx, id)
}

func (s *templateService) DeleteTaskTemplate(ctx context.Context, id string) error {
	return s.templates.DeleteTaskTemplate(ctx, id)
}

func (s *templateService) DeleteSubTaskTemplate(ctx context.Context, id string) error {
	return s.templates.DeleteSubTaskTemplate(ctx, id)
}

func stampNew(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}
