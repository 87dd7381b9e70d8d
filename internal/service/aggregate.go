package service

import (
	"context"
	"time"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

// recalcTaskTx re-derives a task's aggregate fields from its subtasks inside
// the caller's transaction. It always reads fresh state immediately before
// writing, which makes repeated invocations idempotent.
//
// The task's own equipment count is never overwritten: subtasks consume
// capacity, they do not define it. A task without subtasks keeps its
// directly recorded actual count.
func recalcTaskTx(ctx context.Context, tx db.DBTX, taskID string) (*domain.Task, error) {
	tasks := repository.NewSQLiteTaskRepo(tx)

	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	subtasks, err := tasks.ListSubTasks(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if len(subtasks) > 0 {
		actual := 0
		for _, s := range subtasks {
			if s.ActualEquipmentCount != nil {
				actual += *s.ActualEquipmentCount
			}
		}
		task.ActualEquipmentCount = actual
	}

	task.CompletionRate = domain.CompletionRate(task.ActualEquipmentCount, task.EquipmentCount)
	task.Status = domain.StatusForRate(task.CompletionRate)
	task.UpdatedAt = time.Now().UTC()

	if err := tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

type progressService struct {
	uow       db.UnitOfWork
	publisher Publisher
}

// NewProgressService creates the progress aggregator. Each recalculation
// runs in its own transaction so concurrent recalculations of the same task
// serialize on the store.
func NewProgressService(uow db.UnitOfWork, publishers ...Publisher) ProgressService {
	return &progressService{uow: uow, publisher: publisherOrNoop(publishers)}
}

func (s *progressService) Recalculate(ctx context.Context, taskID string) (*domain.Task, error) {
	var task *domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		task, err = recalcTaskTx(ctx, tx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, MutationEvent{
		Entity:    "task",
		Action:    "recalculated",
		ID:        task.ID,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
	})
	return task, nil
}
