package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/testutil"
)

func TestCascade_ProjectDeleteRemovesSubtree(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(database)
	engRepo := NewSQLiteEngineeringRepo(database)
	taskRepo := NewSQLiteTaskRepo(database)

	p, e := seedHierarchy(t, database)
	task := testutil.NewTestTask(e.ID, p.ID, "Task")
	require.NoError(t, taskRepo.Create(ctx, task))
	sub := testutil.NewTestSubTask(task.ID, "Slice")
	require.NoError(t, taskRepo.CreateSubTask(ctx, sub))

	require.NoError(t, projRepo.Delete(ctx, p.ID))

	_, err := engRepo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound, "engineering should cascade with project")
	_, err = taskRepo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound, "task should cascade with project")
	_, err = taskRepo.GetSubTask(ctx, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound, "subtask should cascade with task")
}

func TestCascade_TaskDeleteRemovesSubtasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	taskRepo := NewSQLiteTaskRepo(database)

	p, e := seedHierarchy(t, database)
	task := testutil.NewTestTask(e.ID, p.ID, "Task")
	require.NoError(t, taskRepo.Create(ctx, task))
	sub := testutil.NewTestSubTask(task.ID, "Slice")
	require.NoError(t, taskRepo.CreateSubTask(ctx, sub))

	require.NoError(t, taskRepo.Delete(ctx, task.ID))

	_, err := taskRepo.GetSubTask(ctx, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Sibling tasks are untouched.
	other := testutil.NewTestTask(e.ID, p.ID, "Other")
	require.NoError(t, taskRepo.Create(ctx, other))
	got, err := taskRepo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other", got.Name)
}

func TestCascade_EngineeringTemplateDeleteRemovesTaskTemplates(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteTemplateRepo(database)

	eng := testutil.NewTestEngineeringTemplate("Bridge")
	require.NoError(t, repo.CreateEngineeringTemplate(ctx, eng))
	tt := testutil.NewTestTaskTemplate(eng.ID, "Pour deck")
	require.NoError(t, repo.CreateTaskTemplate(ctx, tt))
	st := testutil.NewTestSubTaskTemplate(tt.ID, "North span")
	require.NoError(t, repo.CreateSubTaskTemplate(ctx, st))

	require.NoError(t, repo.DeleteEngineeringTemplate(ctx, eng.ID))

	_, err := repo.GetTaskTemplate(ctx, tt.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetSubTaskTemplate(ctx, st.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
