package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

type subTaskService struct {
	tasks     repository.TaskRepo
	uow       db.UnitOfWork
	observer  OperationObserver
	publisher Publisher
}

// NewSubTaskService creates the equipment allocator. All mutations run the
// sibling-allocation read and the write in one transaction, so concurrent
// splits of the same parent cannot jointly overallocate.
func NewSubTaskService(tasks repository.TaskRepo, uow db.UnitOfWork, observer OperationObserver, publishers ...Publisher) SubTaskService {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &subTaskService{
		tasks:     tasks,
		uow:       uow,
		observer:  observer,
		publisher: publisherOrNoop(publishers),
	}
}

func (s *subTaskService) Split(ctx context.Context, in SplitInput) (subtask *domain.SubTask, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "subtask-split",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"parent_task": in.ParentTaskID},
		})
	}()

	if in.ParentTaskID == "" {
		return nil, &domain.ValidationError{Field: "parent_task_id", Reason: "must not be empty"}
	}

	var parent *domain.Task
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		var err error
		parent, err = txTasks.GetByID(ctx, in.ParentTaskID)
		if err != nil {
			return err
		}

		siblings, err := txTasks.ListSubTasks(ctx, parent.ID)
		if err != nil {
			return err
		}

		if err := checkCapacity(parent, siblings, in.EquipmentCount, in.ActualEquipmentCount); err != nil {
			return err
		}

		name := in.Name
		if name == "" {
			name = domain.DefaultSplitName(parent.Name)
		}
		name, err = domain.NewName(name)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		subtask = &domain.SubTask{
			ID:                   uuid.New().String(),
			TaskID:               parent.ID,
			ParentTaskID:         &parent.ID,
			Name:                 name,
			Description:          in.Description,
			Priority:             parent.Priority,
			Status:               domain.TaskTodo,
			PlannedStart:         in.PlannedStart,
			PlannedEnd:           in.PlannedEnd,
			EquipmentCount:       in.EquipmentCount,
			ActualEquipmentCount: in.ActualEquipmentCount,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := subtask.CheckCounts(); err != nil {
			return err
		}
		actual := domain.IntFromPtrWithDefault(0, subtask.ActualEquipmentCount)
		subtask.CompletionRate = domain.CompletionRate(actual, subtask.EquipmentCount)
		subtask.Status = domain.StatusForRate(subtask.CompletionRate)

		if err := txTasks.CreateSubTask(ctx, subtask); err != nil {
			return err
		}

		_, err = recalcTaskTx(ctx, tx, parent.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, MutationEvent{
		Entity:    "subtask",
		Action:    "created",
		ID:        subtask.ID,
		TaskID:    parent.ID,
		ProjectID: parent.ProjectID,
	})
	return subtask, nil
}

func (s *subTaskService) GetByID(ctx context.Context, id string) (*domain.SubTask, error) {
	return s.tasks.GetSubTask(ctx, id)
}

func (s *subTaskService) ListByTask(ctx context.Context, taskID string) ([]*domain.SubTask, error) {
	return s.tasks.ListSubTasks(ctx, taskID)
}

func (s *subTaskService) Update(ctx context.Context, id string, in SubTaskUpdateInput) (*domain.SubTask, error) {
	var updated *domain.SubTask
	var parent *domain.Task

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		subtask, err := txTasks.GetSubTask(ctx, id)
		if err != nil {
			return err
		}

		parent, err = txTasks.GetByID(ctx, subtask.TaskID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name, err := domain.NewName(*in.Name)
			if err != nil {
				return err
			}
			subtask.Name = name
		}
		if in.Description != nil {
			subtask.Description = *in.Description
		}
		if in.Priority != nil {
			p, err := domain.NewPriority(*in.Priority)
			if err != nil {
				return err
			}
			subtask.Priority = p
		}
		if in.PlannedStart != nil {
			subtask.PlannedStart = in.PlannedStart
		}
		if in.PlannedEnd != nil {
			subtask.PlannedEnd = in.PlannedEnd
		}
		if in.EquipmentCount != nil {
			subtask.EquipmentCount = in.EquipmentCount
		}
		if in.ActualEquipmentCount != nil {
			subtask.ActualEquipmentCount = in.ActualEquipmentCount
		}

		if in.EquipmentCount != nil || in.ActualEquipmentCount != nil {
			siblings, err := txTasks.ListSubTasks(ctx, parent.ID)
			if err != nil {
				return err
			}
			// Exclude the subtask itself from the sibling allocation sum.
			others := siblings[:0]
			for _, sib := range siblings {
				if sib.ID != subtask.ID {
					others = append(others, sib)
				}
			}
			if err := checkCapacity(parent, others, subtask.EquipmentCount, subtask.ActualEquipmentCount); err != nil {
				return err
			}
		}

		if err := subtask.CheckCounts(); err != nil {
			return err
		}
		actual := domain.IntFromPtrWithDefault(0, subtask.ActualEquipmentCount)
		subtask.CompletionRate = domain.CompletionRate(actual, subtask.EquipmentCount)
		subtask.Status = domain.StatusForRate(subtask.CompletionRate)
		subtask.UpdatedAt = time.Now().UTC()

		if err := txTasks.UpdateSubTask(ctx, subtask); err != nil {
			return err
		}
		updated = subtask

		_, err = recalcTaskTx(ctx, tx, parent.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, MutationEvent{
		Entity:    "subtask",
		Action:    "updated",
		ID:        updated.ID,
		TaskID:    parent.ID,
		ProjectID: parent.ProjectID,
	})
	return updated, nil
}

func (s *subTaskService) Delete(ctx context.Context, id string) error {
	var parent *domain.Task

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		subtask, err := txTasks.GetSubTask(ctx, id)
		if err != nil {
			return err
		}
		parent, err = txTasks.GetByID(ctx, subtask.TaskID)
		if err != nil {
			return err
		}
		if err := txTasks.DeleteSubTask(ctx, id); err != nil {
			return err
		}
		_, err = recalcTaskTx(ctx, tx, parent.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, MutationEvent{
		Entity:    "subtask",
		Action:    "deleted",
		ID:        id,
		TaskID:    parent.ID,
		ProjectID: parent.ProjectID,
	})
	return nil
}

// checkCapacity rejects a subtask whose demand exceeds the parent's
// remaining capacity. A subtask's demand is the larger of its planned
// allocation and its recorded actual, so an actual count on an unallocated
// subtask consumes capacity too and the parent's rollup can never exceed
// the parent's own planned quantity. A parent with no planned quantity
// never constrains its subtasks.
func checkCapacity(parent *domain.Task, siblings []*domain.SubTask, planned, actual *int) error {
	if parent.EquipmentCount == nil {
		return nil
	}
	requested := subTaskDemand(planned, actual)
	if requested == 0 {
		return nil
	}
	allocated := 0
	for _, sib := range siblings {
		allocated += subTaskDemand(sib.EquipmentCount, sib.ActualEquipmentCount)
	}
	remaining := *parent.EquipmentCount - allocated
	if requested > remaining {
		return &domain.CapacityError{Requested: requested, Remaining: remaining}
	}
	return nil
}

func subTaskDemand(planned, actual *int) int {
	demand := 0
	if planned != nil {
		demand = *planned
	}
	if actual != nil && *actual > demand {
		demand = *actual
	}
	return demand
}
