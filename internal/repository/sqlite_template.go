package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo for the whole template tree.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) CreateProjectTemplate(ctx context.Context, t *domain.ProjectTemplate) error {
	query := `INSERT INTO project_templates (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Description,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting project template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetProjectTemplate(ctx context.Context, id string) (*domain.ProjectTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM project_templates WHERE id = ?`, id)

	var t domain.ProjectTemplate
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project template: %w", err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &t, nil
}

func (r *SQLiteTemplateRepo) ListProjectTemplates(ctx context.Context) ([]*domain.ProjectTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM project_templates ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing project templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProjectTemplate
	for rows.Next() {
		var t domain.ProjectTemplate
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning project template: %w", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *SQLiteTemplateRepo) DeleteProjectTemplate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project template: %w", err)
	}
	return requireRow(res, "project template", id)
}

func (r *SQLiteTemplateRepo) CreateEngineeringTemplate(ctx context.Context, t *domain.EngineeringTemplate) error {
	query := `INSERT INTO engineering_templates (id, project_template_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, nullableStrToValue(t.ProjectTemplateID),
		t.Name, t.Description,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting engineering template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetEngineeringTemplate(ctx context.Context, id string) (*domain.EngineeringTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_template_id, name, description, created_at, updated_at
		 FROM engineering_templates WHERE id = ?`, id)

	var t domain.EngineeringTemplate
	var projectTemplateID sql.NullString
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&t.ID, &projectTemplateID, &t.Name, &t.Description, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("engineering template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning engineering template: %w", err)
	}
	t.ProjectTemplateID = parseNullableStr(projectTemplateID)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &t, nil
}

func (r *SQLiteTemplateRepo) ListEngineeringTemplates(ctx context.Context) ([]*domain.EngineeringTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_template_id, name, description, created_at, updated_at
		 FROM engineering_templates ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing engineering templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.EngineeringTemplate
	for rows.Next() {
		var t domain.EngineeringTemplate
		var projectTemplateID sql.NullString
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&t.ID, &projectTemplateID, &t.Name, &t.Description, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning engineering template: %w", err)
		}
		t.ProjectTemplateID = parseNullableStr(projectTemplateID)
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *SQLiteTemplateRepo) DeleteEngineeringTemplate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM engineering_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting engineering template: %w", err)
	}
	return requireRow(res, "engineering template", id)
}

func (r *SQLiteTemplateRepo) CreateTaskTemplate(ctx context.Context, t *domain.TaskTemplate) error {
	query := `INSERT INTO task_templates (id, engineering_template_id, name, description, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.EngineeringTemplateID,
		t.Name, t.Description, t.Priority,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting task template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetTaskTemplate(ctx context.Context, id string) (*domain.TaskTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, engineering_template_id, name, description, priority, created_at, updated_at
		 FROM task_templates WHERE id = ?`, id)

	t, err := scanTaskTemplate(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task template: %w", err)
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) ListTaskTemplates(ctx context.Context, engineeringTemplateID string) ([]*domain.TaskTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, engineering_template_id, name, description, priority, created_at, updated_at
		 FROM task_templates WHERE engineering_template_id = ? ORDER BY priority, created_at`,
		engineeringTemplateID)
	if err != nil {
		return nil, fmt.Errorf("listing task templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.TaskTemplate
	for rows.Next() {
		t, err := scanTaskTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning task template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteTemplateRepo) DeleteTaskTemplate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task template: %w", err)
	}
	return requireRow(res, "task template", id)
}

func (r *SQLiteTemplateRepo) CreateSubTaskTemplate(ctx context.Context, t *domain.SubTaskTemplate) error {
	query := `INSERT INTO subtask_templates (id, task_template_id, name, description, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.TaskTemplateID,
		t.Name, t.Description, t.Priority,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting subtask template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetSubTaskTemplate(ctx context.Context, id string) (*domain.SubTaskTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, task_template_id, name, description, priority, created_at, updated_at
		 FROM subtask_templates WHERE id = ?`, id)

	t, err := scanSubTaskTemplate(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subtask template %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subtask template: %w", err)
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) ListSubTaskTemplates(ctx context.Context, taskTemplateID string) ([]*domain.SubTaskTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_template_id, name, description, priority, created_at, updated_at
		 FROM subtask_templates WHERE task_template_id = ? ORDER BY priority, created_at`,
		taskTemplateID)
	if err != nil {
		return nil, fmt.Errorf("listing subtask templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.SubTaskTemplate
	for rows.Next() {
		t, err := scanSubTaskTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteTemplateRepo) DeleteSubTaskTemplate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtask_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subtask template: %w", err)
	}
	return requireRow(res, "subtask template", id)
}

func scanTaskTemplate(scan func(dest ...any) error) (*domain.TaskTemplate, error) {
	var t domain.TaskTemplate
	var createdAtStr, updatedAtStr string
	err := scan(&t.ID, &t.EngineeringTemplateID, &t.Name, &t.Description, &t.Priority,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &t, nil
}

func scanSubTaskTemplate(scan func(dest ...any) error) (*domain.SubTaskTemplate, error) {
	var t domain.SubTaskTemplate
	var createdAtStr, updatedAtStr string
	err := scan(&t.ID, &t.TaskTemplateID, &t.Name, &t.Description, &t.Priority,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &t, nil
}
