package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

// prefetchLimit bounds the fan-out of subtask-template reads so a large
// template tree does not overwhelm the store.
const prefetchLimit = 8

type materializeService struct {
	templates repository.TemplateRepo
	projects  repository.ProjectRepo
	uow       db.UnitOfWork
	logger    *slog.Logger
	observer  OperationObserver
	publisher Publisher
}

// NewMaterializeService creates the template materializer. Logger may be
// nil, in which case skip warnings go to the default slog logger.
func NewMaterializeService(
	templates repository.TemplateRepo,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	logger *slog.Logger,
	observer OperationObserver,
	publishers ...Publisher,
) MaterializeService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &materializeService{
		templates: templates,
		projects:  projects,
		uow:       uow,
		logger:    logger,
		observer:  observer,
		publisher: publisherOrNoop(publishers),
	}
}

// expansion is the in-memory instance tree built before anything is written.
type expansion struct {
	engineering *domain.Engineering
	tasks       []*domain.Task
	subtasks    []*domain.SubTask
	skipped     []string
}

func (s *materializeService) Materialize(ctx context.Context, in MaterializeInput) (result *MaterializeResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"engineering_template": in.EngineeringTemplateID,
		"project":              in.ProjectID,
	}
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "materialize",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if in.EngineeringTemplateID == "" {
		return nil, &domain.ValidationError{Field: "engineering_template_id", Reason: "must not be empty"}
	}
	if in.ProjectID == "" {
		return nil, &domain.ValidationError{Field: "project_id", Reason: "must not be empty"}
	}
	for templateID, count := range in.TaskCounts {
		if count < 1 {
			return nil, &domain.ValidationError{
				Field:  "task_counts[" + templateID + "]",
				Reason: "count must be at least 1",
			}
		}
	}

	engTemplate, err := s.templates.GetEngineeringTemplate(ctx, in.EngineeringTemplateID)
	if err != nil {
		return nil, err
	}
	if _, err = s.projects.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	taskTemplates, err := s.templates.ListTaskTemplates(ctx, engTemplate.ID)
	if err != nil {
		return nil, err
	}

	subTemplatesByTask, skipped, err := s.prefetchSubTaskTemplates(ctx, taskTemplates)
	if err != nil {
		return nil, err
	}

	exp := s.expand(engTemplate, in, taskTemplates, subTemplatesByTask, skipped)
	fields["task_count"] = len(exp.tasks)
	fields["subtask_count"] = len(exp.subtasks)
	fields["skipped_count"] = len(exp.skipped)

	// Persist the whole subtree atomically. A store failure mid-sequence
	// rolls back every row written so far.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEngineerings := repository.NewSQLiteEngineeringRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if err := txEngineerings.Create(ctx, exp.engineering); err != nil {
			return err
		}
		for _, task := range exp.tasks {
			if err := txTasks.Create(ctx, task); err != nil {
				return err
			}
		}
		for _, subtask := range exp.subtasks {
			if err := txTasks.CreateSubTask(ctx, subtask); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, MutationEvent{
		Entity:    "engineering",
		Action:    "materialized",
		ID:        exp.engineering.ID,
		ProjectID: in.ProjectID,
	})

	return &MaterializeResult{
		Engineering:            exp.engineering,
		Tasks:                  exp.tasks,
		SubTasks:               exp.subtasks,
		SkippedTaskTemplateIDs: exp.skipped,
	}, nil
}

// prefetchSubTaskTemplates loads the subtask templates for every task
// template with a bounded fan-out, before any write begins. A task template
// whose subtask lookup reports NotFound (dangling relation) is recorded for
// skipping rather than failing the whole materialization; any other store
// error aborts.
func (s *materializeService) prefetchSubTaskTemplates(
	ctx context.Context,
	taskTemplates []*domain.TaskTemplate,
) (map[string][]*domain.SubTaskTemplate, map[string]bool, error) {
	var mu sync.Mutex
	byTask := make(map[string][]*domain.SubTaskTemplate, len(taskTemplates))
	skipped := make(map[string]bool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchLimit)

	for _, tt := range taskTemplates {
		g.Go(func() error {
			subs, err := s.templates.ListSubTaskTemplates(gctx, tt.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					s.logger.Warn("skipping task template with dangling relation",
						"task_template", tt.ID, "error", err)
					mu.Lock()
					skipped[tt.ID] = true
					mu.Unlock()
					return nil
				}
				return err
			}
			mu.Lock()
			byTask[tt.ID] = subs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return byTask, skipped, nil
}

// expand builds the full instance tree in memory. Exactly one task is
// created per task template: the requested count becomes the task's planned
// quantity, not a row multiplier. Subtask instances copy the template's
// descriptive fields and leave the equipment count unset for the allocator.
func (s *materializeService) expand(
	engTemplate *domain.EngineeringTemplate,
	in MaterializeInput,
	taskTemplates []*domain.TaskTemplate,
	subTemplatesByTask map[string][]*domain.SubTaskTemplate,
	skipped map[string]bool,
) *expansion {
	now := time.Now().UTC()

	engineering := &domain.Engineering{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		TemplateID:  &engTemplate.ID,
		Name:        domain.CoalesceStr(in.Name, engTemplate.Name),
		Description: domain.CoalesceStr(in.Description, engTemplate.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	exp := &expansion{engineering: engineering}
	for _, tt := range taskTemplates {
		if skipped[tt.ID] {
			exp.skipped = append(exp.skipped, tt.ID)
			continue
		}

		count := 1
		if c, ok := in.TaskCounts[tt.ID]; ok {
			count = c
		}

		task := &domain.Task{
			ID:             uuid.New().String(),
			EngineeringID:  engineering.ID,
			ProjectID:      in.ProjectID,
			TemplateID:     &tt.ID,
			Name:           tt.Name,
			Description:    tt.Description,
			Priority:       instancePriority(tt.Priority),
			Status:         domain.TaskTodo,
			EquipmentCount: &count,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		exp.tasks = append(exp.tasks, task)

		for _, st := range subTemplatesByTask[tt.ID] {
			exp.subtasks = append(exp.subtasks, &domain.SubTask{
				ID:          uuid.New().String(),
				TaskID:      task.ID,
				TemplateID:  &st.ID,
				Name:        st.Name,
				Description: st.Description,
				Priority:    instancePriority(st.Priority),
				Status:      domain.TaskTodo,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
	}
	return exp
}

// instancePriority maps a template priority (0 high, 1 medium, 2 low) onto
// the 0-9 instance scale.
func instancePriority(templatePriority int) int {
	switch templatePriority {
	case 0:
		return 0
	case 1:
		return 5
	default:
		return 9
	}
}
