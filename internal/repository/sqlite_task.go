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

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, engineering_id, project_id, template_id, name, description,
		priority, status, equipment_count, actual_equipment_count, completion_rate,
		created_at, updated_at`

// subtaskColumns is the canonical SELECT column list for subtasks.
const subtaskColumns = `id, task_id, parent_task_id, template_id, name, description,
		priority, status, planned_start, planned_end,
		equipment_count, actual_equipment_count, completion_rate,
		created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo (tasks and subtasks) using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.EngineeringID,
		t.ProjectID,
		nullableStrToValue(t.TemplateID),
		t.Name,
		t.Description,
		t.Priority,
		string(t.Status),
		nullableIntToValue(t.EquipmentCount),
		t.ActualEquipmentCount,
		t.CompletionRate,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByEngineering(ctx context.Context, engineeringID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE engineering_id = ? ORDER BY priority, created_at`
	return r.listTasks(ctx, query, engineeringID)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = ? ORDER BY priority, created_at`
	return r.listTasks(ctx, query, projectID)
}

func (r *SQLiteTaskRepo) listTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, description = ?, priority = ?, status = ?,
		equipment_count = ?, actual_equipment_count = ?, completion_rate = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.Priority,
		string(t.Status),
		nullableIntToValue(t.EquipmentCount),
		t.ActualEquipmentCount,
		t.CompletionRate,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res, "task", id)
}

func (r *SQLiteTaskRepo) CreateSubTask(ctx context.Context, s *domain.SubTask) error {
	query := `INSERT INTO subtasks (` + subtaskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.TaskID,
		nullableStrToValue(s.ParentTaskID),
		nullableStrToValue(s.TemplateID),
		s.Name,
		s.Description,
		s.Priority,
		string(s.Status),
		nullableTimeToString(s.PlannedStart, dateLayout),
		nullableTimeToString(s.PlannedEnd, dateLayout),
		nullableIntToValue(s.EquipmentCount),
		nullableIntToValue(s.ActualEquipmentCount),
		s.CompletionRate,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subtask: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetSubTask(ctx context.Context, id string) (*domain.SubTask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSubTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subtask: %w", err)
	}
	return s, nil
}

func (r *SQLiteTaskRepo) ListSubTasks(ctx context.Context, taskID string) ([]*domain.SubTask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks
		WHERE task_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.SubTask
	for rows.Next() {
		s, err := scanSubTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteTaskRepo) UpdateSubTask(ctx context.Context, s *domain.SubTask) error {
	query := `UPDATE subtasks SET name = ?, description = ?, priority = ?, status = ?,
		planned_start = ?, planned_end = ?,
		equipment_count = ?, actual_equipment_count = ?, completion_rate = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Description,
		s.Priority,
		string(s.Status),
		nullableTimeToString(s.PlannedStart, dateLayout),
		nullableTimeToString(s.PlannedEnd, dateLayout),
		nullableIntToValue(s.EquipmentCount),
		nullableIntToValue(s.ActualEquipmentCount),
		s.CompletionRate,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subtask: %w", err)
	}
	return requireRow(res, "subtask", s.ID)
}

func (r *SQLiteTaskRepo) DeleteSubTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subtask: %w", err)
	}
	return requireRow(res, "subtask", id)
}

func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var t domain.Task
	var templateID sql.NullString
	var equipment sql.NullInt64
	var statusStr, createdAtStr, updatedAtStr string

	err := scan(&t.ID, &t.EngineeringID, &t.ProjectID, &templateID, &t.Name, &t.Description,
		&t.Priority, &statusStr, &equipment, &t.ActualEquipmentCount, &t.CompletionRate,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	t.TemplateID = parseNullableStr(templateID)
	t.Status = domain.TaskStatus(statusStr)
	t.EquipmentCount = parseNullableInt(equipment)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &t, nil
}

func scanSubTask(scan func(dest ...any) error) (*domain.SubTask, error) {
	var s domain.SubTask
	var parentTaskID, templateID sql.NullString
	var equipment, actual sql.NullInt64
	var statusStr, createdAtStr, updatedAtStr string
	var plannedStartStr, plannedEndStr sql.NullString

	err := scan(&s.ID, &s.TaskID, &parentTaskID, &templateID, &s.Name, &s.Description,
		&s.Priority, &statusStr, &plannedStartStr, &plannedEndStr,
		&equipment, &actual, &s.CompletionRate,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	s.ParentTaskID = parseNullableStr(parentTaskID)
	s.TemplateID = parseNullableStr(templateID)
	s.Status = domain.TaskStatus(statusStr)
	s.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	s.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)
	s.EquipmentCount = parseNullableInt(equipment)
	s.ActualEquipmentCount = parseNullableInt(actual)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &s, nil
}
