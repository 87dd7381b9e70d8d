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

func TestTemplateService_CreateEngineeringTemplate(t *testing.T) {
	_, _, _, _, templates, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTemplateService(templates)

	tpl := &domain.EngineeringTemplate{Name: "  Pile foundation  ", Description: "Driven piles"}
	require.NoError(t, svc.CreateEngineeringTemplate(ctx, tpl))

	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "Pile foundation", tpl.Name)
	assert.False(t, tpl.CreatedAt.IsZero())

	var validation *domain.ValidationError
	err := svc.CreateEngineeringTemplate(ctx, &domain.EngineeringTemplate{Name: "   "})
	assert.ErrorAs(t, err, &validation)
}

func TestTemplateService_CreateEngineeringTemplate_ProjectLink(t *testing.T) {
	_, _, _, _, templates, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTemplateService(templates)

	projTpl := testutil.NewTestProjectTemplate("Harbor works")
	require.NoError(t, svc.CreateProjectTemplate(ctx, projTpl))

	linked := &domain.EngineeringTemplate{Name: "Dredging", ProjectTemplateID: &projTpl.ID}
	require.NoError(t, svc.CreateEngineeringTemplate(ctx, linked))

	missing := "missing-project-template"
	err := svc.CreateEngineeringTemplate(ctx, &domain.EngineeringTemplate{
		Name:              "Orphan",
		ProjectTemplateID: &missing,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateService_CreateTaskTemplate(t *testing.T) {
	_, _, _, _, templates, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTemplateService(templates)

	engTpl := &domain.EngineeringTemplate{Name: "Pile foundation"}
	require.NoError(t, svc.CreateEngineeringTemplate(ctx, engTpl))

	taskTpl := &domain.TaskTemplate{
		EngineeringTemplateID: engTpl.ID,
		Name:                  "Drive piles",
		Priority:              0,
	}
	require.NoError(t, svc.CreateTaskTemplate(ctx, taskTpl))
	assert.NotEmpty(t, taskTpl.ID)

	// Template priorities live on the 0..2 scale, not the instance 0..9 one.
	var validation *domain.ValidationError
	err := svc.CreateTaskTemplate(ctx, &domain.TaskTemplate{
		EngineeringTemplateID: engTpl.ID,
		Name:                  "Too urgent",
		Priority:              3,
	})
	assert.ErrorAs(t, err, &validation)

	err = svc.CreateTaskTemplate(ctx, &domain.TaskTemplate{
		EngineeringTemplateID: "missing",
		Name:                  "Orphan",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateService_CreateSubTaskTemplate_RequiresParent(t *testing.T) {
	_, _, _, _, templates, _ := setupRepos(t)
	ctx := context.Background()

	svc := NewTemplateService(templates)

	err := svc.CreateSubTaskTemplate(ctx, &domain.SubTaskTemplate{
		TaskTemplateID: "missing",
		Name:           "Position rig",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateService_Tree(t *testing.T) {
	_, _, _, _, templates, _ := setupRepos(t)
	ctx := context.Background()

	engTpl, taskTpls := seedTemplateTree(t, templates)

	svc := NewTemplateService(templates)
	tree, err := svc.Tree(ctx, engTpl.ID)
	require.NoError(t, err)

	assert.Equal(t, engTpl.ID, tree.Engineering.ID)
	require.Len(t, tree.Tasks, 2)
	assert.Equal(t, "Drive piles", tree.Tasks[0].Name, "task templates come back in priority order")
	assert.Equal(t, "Cap piles", tree.Tasks[1].Name)

	assert.Len(t, tree.SubTasks[taskTpls[0].ID], 2)
	assert.Empty(t, tree.SubTasks[taskTpls[1].ID])

	_, err = svc.Tree(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateService_DeleteEngineeringTemplate_Cascades(t *testing.T) {
	_, _, _, _, templates, _ := setupRepos(t)
	ctx := context.Background()

	engTpl, taskTpls := seedTemplateTree(t, templates)

	svc := NewTemplateService(templates)
	require.NoError(t, svc.DeleteEngineeringTemplate(ctx, engTpl.ID))

	_, err := templates.GetEngineeringTemplate(ctx, engTpl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = templates.GetTaskTemplate(ctx, taskTpls[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
