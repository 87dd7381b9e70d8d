package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/testutil"
)

func TestTemplateRepo_EngineeringTemplateCRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	eng := testutil.NewTestEngineeringTemplate("Tunnel boring")
	eng.Description = "Standard twin-bore tunnel sequence"
	require.NoError(t, repo.CreateEngineeringTemplate(ctx, eng))

	got, err := repo.GetEngineeringTemplate(ctx, eng.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tunnel boring", got.Name)
	assert.Equal(t, "Standard twin-bore tunnel sequence", got.Description)
	assert.Nil(t, got.ProjectTemplateID)

	list, err := repo.ListEngineeringTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteEngineeringTemplate(ctx, eng.ID))
	_, err = repo.GetEngineeringTemplate(ctx, eng.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplateRepo_ProjectTemplateLink(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	pt := testutil.NewTestProjectTemplate("Metro line")
	require.NoError(t, repo.CreateProjectTemplate(ctx, pt))

	eng := testutil.NewTestEngineeringTemplate("Station box")
	eng.ProjectTemplateID = &pt.ID
	require.NoError(t, repo.CreateEngineeringTemplate(ctx, eng))

	got, err := repo.GetEngineeringTemplate(ctx, eng.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProjectTemplateID)
	assert.Equal(t, pt.ID, *got.ProjectTemplateID)

	templates, err := repo.ListProjectTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestTemplateRepo_TaskTemplates_OrderedByPriority(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	eng := testutil.NewTestEngineeringTemplate("Roadworks")
	require.NoError(t, repo.CreateEngineeringTemplate(ctx, eng))

	low := testutil.NewTestTaskTemplate(eng.ID, "Line painting", testutil.WithTemplatePriority(2))
	high := testutil.NewTestTaskTemplate(eng.ID, "Base layer", testutil.WithTemplatePriority(0))
	require.NoError(t, repo.CreateTaskTemplate(ctx, low))
	require.NoError(t, repo.CreateTaskTemplate(ctx, high))

	templates, err := repo.ListTaskTemplates(ctx, eng.ID)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Base layer", templates[0].Name)
	assert.Equal(t, "Line painting", templates[1].Name)
}

func TestTemplateRepo_SubTaskTemplates(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	eng := testutil.NewTestEngineeringTemplate("Roadworks")
	require.NoError(t, repo.CreateEngineeringTemplate(ctx, eng))
	tt := testutil.NewTestTaskTemplate(eng.ID, "Base layer")
	require.NoError(t, repo.CreateTaskTemplate(ctx, tt))

	st := testutil.NewTestSubTaskTemplate(tt.ID, "Compact subgrade")
	require.NoError(t, repo.CreateSubTaskTemplate(ctx, st))

	subs, err := repo.ListSubTaskTemplates(ctx, tt.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Compact subgrade", subs[0].Name)
	assert.Equal(t, tt.ID, subs[0].TaskTemplateID)

	require.NoError(t, repo.DeleteSubTaskTemplate(ctx, st.ID))
	subs, err = repo.ListSubTaskTemplates(ctx, tt.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
