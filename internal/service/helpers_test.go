package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
	"github.com/hylin-tw/worksite/internal/testutil"
)

func intPtr(v int) *int { return &v }

// setupRepos wires the full repository stack against a fresh in-memory DB.
func setupRepos(t *testing.T) (*sql.DB, *repository.SQLiteProjectRepo, *repository.SQLiteEngineeringRepo, *repository.SQLiteTaskRepo, *repository.SQLiteTemplateRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database,
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteEngineeringRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteTemplateRepo(database),
		testutil.NewTestUoW(database)
}

// seedTemplateTree creates an engineering template with two task templates;
// the first task template carries two subtask templates, the second none.
func seedTemplateTree(t *testing.T, templates repository.TemplateRepo) (*domain.EngineeringTemplate, []*domain.TaskTemplate) {
	t.Helper()
	ctx := context.Background()

	eng := testutil.NewTestEngineeringTemplate("Pile foundation")
	eng.Description = "Driven pile installation sequence"
	require.NoError(t, templates.CreateEngineeringTemplate(ctx, eng))

	drive := testutil.NewTestTaskTemplate(eng.ID, "Drive piles", testutil.WithTemplatePriority(0))
	require.NoError(t, templates.CreateTaskTemplate(ctx, drive))
	capTpl := testutil.NewTestTaskTemplate(eng.ID, "Cap piles", testutil.WithTemplatePriority(1))
	require.NoError(t, templates.CreateTaskTemplate(ctx, capTpl))

	require.NoError(t, templates.CreateSubTaskTemplate(ctx,
		testutil.NewTestSubTaskTemplate(drive.ID, "Position rig")))
	require.NoError(t, templates.CreateSubTaskTemplate(ctx,
		testutil.NewTestSubTaskTemplate(drive.ID, "Drive to depth")))

	return eng, []*domain.TaskTemplate{drive, capTpl}
}
