package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
	"github.com/hylin-tw/worksite/internal/testutil"
)

func TestProjectService_Create(t *testing.T) {
	_, projects, _, _, _, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewProjectService(projects)

	proj := &domain.Project{Name: "  Harbor expansion  ", Priority: 2}
	require.NoError(t, svc.Create(ctx, proj))

	assert.NotEmpty(t, proj.ID)
	assert.Equal(t, "Harbor expansion", proj.Name)
	assert.Equal(t, domain.ProjectActive, proj.Status, "status defaults to active")

	var validation *domain.ValidationError
	err := svc.Create(ctx, &domain.Project{Name: ""})
	assert.ErrorAs(t, err, &validation)

	err = svc.Create(ctx, &domain.Project{Name: "Bad priority", Priority: 12})
	assert.ErrorAs(t, err, &validation)
}

func TestProjectService_ArchiveHidesFromDefaultList(t *testing.T) {
	_, projects, _, _, _, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewProjectService(projects)

	active := &domain.Project{Name: "Active site"}
	require.NoError(t, svc.Create(ctx, active))
	old := &domain.Project{Name: "Old site"}
	require.NoError(t, svc.Create(ctx, old))

	old.Status = domain.ProjectArchived
	require.NoError(t, svc.Update(ctx, old))

	visible, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, active.ID, visible[0].ID)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEngineeringService_Create(t *testing.T) {
	_, projects, engineerings, _, _, _ := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Site")
	require.NoError(t, projects.Create(ctx, proj))

	var events []MutationEvent
	record := PublisherFunc(func(_ context.Context, e MutationEvent) {
		events = append(events, e)
	})
	svc := NewEngineeringService(engineerings, projects, record)

	eng := &domain.Engineering{ProjectID: proj.ID, Name: "Civil works"}
	require.NoError(t, svc.Create(ctx, eng))
	assert.NotEmpty(t, eng.ID)

	require.Len(t, events, 1)
	assert.Equal(t, "engineering", events[0].Entity)
	assert.Equal(t, "created", events[0].Action)
	assert.Equal(t, proj.ID, events[0].ProjectID)

	err := svc.Create(ctx, &domain.Engineering{ProjectID: "missing", Name: "Orphan"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, events, 1, "a failed create publishes nothing")
}

func TestFanoutPublisher_ForwardsInOrder(t *testing.T) {
	var order []string
	first := PublisherFunc(func(context.Context, MutationEvent) { order = append(order, "first") })
	second := PublisherFunc(func(context.Context, MutationEvent) { order = append(order, "second") })

	fanout := NewFanoutPublisher(first)
	fanout.Subscribe(second)
	fanout.Publish(context.Background(), MutationEvent{Entity: "task", Action: "created"})

	assert.Equal(t, []string{"first", "second"}, order)
}
