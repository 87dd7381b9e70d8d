package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

type engineeringService struct {
	engineerings repository.EngineeringRepo
	projects     repository.ProjectRepo
	publisher    Publisher
}

func NewEngineeringService(engineerings repository.EngineeringRepo, projects repository.ProjectRepo, publishers ...Publisher) EngineeringService {
	return &engineeringService{
		engineerings: engineerings,
		projects:     projects,
		publisher:    publisherOrNoop(publishers),
	}
}

func (s *engineeringService) Create(ctx context.Context, e *domain.Engineering) error {
	name, err := domain.NewName(e.Name)
	if err != nil {
		return err
	}
	e.Name = name

	// The owning project must exist; engineerings are never orphaned.
	if _, err := s.projects.GetByID(ctx, e.ProjectID); err != nil {
		return err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.engineerings.Create(ctx, e); err != nil {
		return err
	}
	s.publisher.Publish(ctx, MutationEvent{
		Entity: "engineering", Action: "created", ID: e.ID, ProjectID: e.ProjectID,
	})
	return nil
}

func (s *engineeringService) GetByID(ctx context.Context, id string) (*domain.Engineering, error) {
	return s.engineerings.GetByID(ctx, id)
}

func (s *engineeringService) ListByProject(ctx context.Context, projectID string) ([]*domain.Engineering, error) {
	return s.engineerings.ListByProject(ctx, projectID)
}

func (s *engineeringService) Update(ctx context.Context, e *domain.Engineering) error {
	name, err := domain.NewName(e.Name)
	if err != nil {
		return err
	}
	e.Name = name
	e.UpdatedAt = time.Now().UTC()

	if err := s.engineerings.Update(ctx, e); err != nil {
		return err
	}
	s.publisher.Publish(ctx, MutationEvent{
		Entity: "engineering", Action: "updated", ID: e.ID, ProjectID: e.ProjectID,
	})
	return nil
}

func (s *engineeringService) Delete(ctx context.Context, id string) error {
	e, err := s.engineerings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.engineerings.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(ctx, MutationEvent{
		Entity: "engineering", Action: "deleted", ID: id, ProjectID: e.ProjectID,
	})
	return nil
}
