package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/testutil"
)

func TestRecalculate_SumsChildActuals(t *testing.T) {
	_, projects, engineerings, tasks, _, uow := setupRepos(t)
	ctx := context.Background()
	parent := seedParentTask(t, projects, engineerings, tasks, 10)

	require.NoError(t, tasks.CreateSubTask(ctx, testutil.NewTestSubTask(parent.ID, "A",
		testutil.WithSubTaskEquipment(4, 3))))
	require.NoError(t, tasks.CreateSubTask(ctx, testutil.NewTestSubTask(parent.ID, "B",
		testutil.WithSubTaskEquipment(6, 2))))
	// A subtask with no recorded actual contributes zero.
	require.NoError(t, tasks.CreateSubTask(ctx, testutil.NewTestSubTask(parent.ID, "C")))

	svc := NewProgressService(uow)
	task, err := svc.Recalculate(ctx, parent.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, task.ActualEquipmentCount)
	assert.Equal(t, 50, task.CompletionRate)
	assert.Equal(t, domain.TaskInProgress, task.Status)
	require.NotNil(t, task.EquipmentCount)
	assert.Equal(t, 10, *task.EquipmentCount, "planned count is input, never output")
}

func TestRecalculate_Idempotent(t *testing.T) {
	_, projects, engineerings, tasks, _, uow := setupRepos(t)
	ctx := context.Background()
	parent := seedParentTask(t, projects, engineerings, tasks, 8)

	require.NoError(t, tasks.CreateSubTask(ctx, testutil.NewTestSubTask(parent.ID, "A",
		testutil.WithSubTaskEquipment(8, 4))))

	svc := NewProgressService(uow)
	first, err := svc.Recalculate(ctx, parent.ID)
	require.NoError(t, err)
	second, err := svc.Recalculate(ctx, parent.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ActualEquipmentCount, second.ActualEquipmentCount)
	assert.Equal(t, first.CompletionRate, second.CompletionRate)
	assert.Equal(t, first.Status, second.Status)
}

func TestRecalculate_DoneIsNotTerminal(t *testing.T) {
	_, projects, engineerings, tasks, _, uow := setupRepos(t)
	ctx := context.Background()
	parent := seedParentTask(t, projects, engineerings, tasks, 10)

	sub := testutil.NewTestSubTask(parent.ID, "A", testutil.WithSubTaskEquipment(10, 10))
	require.NoError(t, tasks.CreateSubTask(ctx, sub))

	svc := NewProgressService(uow)
	task, err := svc.Recalculate(ctx, parent.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskDone, task.Status)

	// Progress regresses: the status follows the rate back down.
	two := 2
	sub.ActualEquipmentCount = &two
	require.NoError(t, tasks.UpdateSubTask(ctx, sub))

	task, err = svc.Recalculate(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, task.Status)
	assert.Equal(t, 20, task.CompletionRate)

	zero := 0
	sub.ActualEquipmentCount = &zero
	require.NoError(t, tasks.UpdateSubTask(ctx, sub))

	task, err = svc.Recalculate(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTodo, task.Status)
}

func TestRecalculate_LeafTaskKeepsDirectActual(t *testing.T) {
	_, projects, engineerings, tasks, _, uow := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Site")
	require.NoError(t, projects.Create(ctx, proj))
	eng := testutil.NewTestEngineering(proj.ID, "Civil")
	require.NoError(t, engineerings.Create(ctx, eng))
	leaf := testutil.NewTestTask(eng.ID, proj.ID, "Leaf",
		testutil.WithEquipmentCount(4),
		testutil.WithActualCount(3))
	require.NoError(t, tasks.Create(ctx, leaf))

	svc := NewProgressService(uow)
	task, err := svc.Recalculate(ctx, leaf.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, task.ActualEquipmentCount, "a task without subtasks keeps its direct actual")
	assert.Equal(t, 75, task.CompletionRate)
	assert.Equal(t, domain.TaskInProgress, task.Status)
}

func TestRecalculate_NoPlannedCountStaysTodo(t *testing.T) {
	_, projects, engineerings, tasks, _, uow := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Site")
	require.NoError(t, projects.Create(ctx, proj))
	eng := testutil.NewTestEngineering(proj.ID, "Civil")
	require.NoError(t, engineerings.Create(ctx, eng))
	task := testutil.NewTestTask(eng.ID, proj.ID, "Unplanned")
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, tasks.CreateSubTask(ctx, testutil.NewTestSubTask(task.ID, "A",
		testutil.WithSubTaskEquipment(3, 3))))

	svc := NewProgressService(uow)
	got, err := svc.Recalculate(ctx, task.ID)
	require.NoError(t, err)

	// Without a planned denominator the rate is defined as zero.
	assert.Equal(t, 3, got.ActualEquipmentCount)
	assert.Equal(t, 0, got.CompletionRate)
	assert.Equal(t, domain.TaskTodo, got.Status)
}
