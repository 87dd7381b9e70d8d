package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/testutil"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	p := testutil.NewTestProject("Harbor expansion",
		testutil.WithProjectPriority(2),
		testutil.WithProjectDates(start, end),
		testutil.WithCreator("chen"),
	)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor expansion", got.Name)
	assert.Equal(t, 2, got.Priority)
	assert.Equal(t, domain.ProjectActive, got.Status)
	assert.Equal(t, "chen", got.Creator)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2026-03-01", got.StartDate.Format("2006-01-02"))
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2026-09-30", got.EndDate.Format("2006-01-02"))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_List_ExcludesArchivedByDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	active := testutil.NewTestProject("Active site")
	archived := testutil.NewTestProject("Old site",
		testutil.WithProjectStatus(domain.ProjectArchived))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))

	visible, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, active.ID, visible[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectRepo_List_OrdersByPriority(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	low := testutil.NewTestProject("Backlog", testutil.WithProjectPriority(9))
	high := testutil.NewTestProject("Urgent", testutil.WithProjectPriority(0))
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, high))

	projects, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Urgent", projects[0].Name)
	assert.Equal(t, "Backlog", projects[1].Name)
}

func TestProjectRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("Rename me")
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "Renamed"
	p.Status = domain.ProjectPaused
	p.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, domain.ProjectPaused, got.Status)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)

	ghost := testutil.NewTestProject("Ghost")
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("Doomed")
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}
