package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

type taskService struct {
	tasks        repository.TaskRepo
	engineerings repository.EngineeringRepo
	uow          db.UnitOfWork
	publisher    Publisher
}

func NewTaskService(tasks repository.TaskRepo, engineerings repository.EngineeringRepo, uow db.UnitOfWork, publishers ...Publisher) TaskService {
	return &taskService{
		tasks:        tasks,
		engineerings: engineerings,
		uow:          uow,
		publisher:    publisherOrNoop(publishers),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	name, err := domain.NewName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name
	if t.Priority, err = domain.NewPriority(t.Priority); err != nil {
		return err
	}
	if err := t.CheckCounts(); err != nil {
		return err
	}

	eng, err := s.engineerings.GetByID(ctx, t.EngineeringID)
	if err != nil {
		return err
	}
	t.ProjectID = eng.ProjectID

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	t.CompletionRate = domain.CompletionRate(t.ActualEquipmentCount, t.EquipmentCount)

	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	s.publisher.Publish(ctx, MutationEvent{
		Entity: "task", Action: "created", ID: t.ID, TaskID: t.ID, ProjectID: t.ProjectID,
	})
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByEngineering(ctx context.Context, engineeringID string) ([]*domain.Task, error) {
	return s.tasks.ListByEngineering(ctx, engineeringID)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// Update persists the caller's descriptive fields and, when the task has
// subtasks, immediately re-derives the aggregate fields from the children
// so a direct edit cannot bypass recalculation.
func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	name, err := domain.NewName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name
	if t.Priority, err = domain.NewPriority(t.Priority); err != nil {
		return err
	}
	if err := t.CheckCounts(); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		t.CompletionRate = domain.CompletionRate(t.ActualEquipmentCount, t.EquipmentCount)
		t.Status = domain.StatusForRate(t.CompletionRate)
		t.UpdatedAt = time.Now().UTC()
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}

		fresh, err := recalcTaskTx(ctx, tx, t.ID)
		if err != nil {
			return err
		}
		*t = *fresh
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, MutationEvent{
		Entity: "task", Action: "updated", ID: t.ID, TaskID: t.ID, ProjectID: t.ProjectID,
	})
	return nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Subtask rows go with the task via the store's cascade.
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(ctx, MutationEvent{
		Entity: "task", Action: "deleted", ID: id, TaskID: id, ProjectID: t.ProjectID,
	})
	return nil
}
