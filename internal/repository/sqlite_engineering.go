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

const engineeringColumns = `id, project_id, template_id, name, description, created_at, updated_at`

// SQLiteEngineeringRepo implements EngineeringRepo using a SQLite database.
type SQLiteEngineeringRepo struct {
	db db.DBTX
}

func NewSQLiteEngineeringRepo(conn db.DBTX) *SQLiteEngineeringRepo {
	return &SQLiteEngineeringRepo{db: conn}
}

func (r *SQLiteEngineeringRepo) Create(ctx context.Context, e *domain.Engineering) error {
	query := `INSERT INTO engineerings (` + engineeringColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		nullableStrToValue(e.TemplateID),
		e.Name,
		e.Description,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting engineering: %w", err)
	}
	return nil
}

func (r *SQLiteEngineeringRepo) GetByID(ctx context.Context, id string) (*domain.Engineering, error) {
	query := `SELECT ` + engineeringColumns + ` FROM engineerings WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEngineering(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("engineering %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning engineering: %w", err)
	}
	return e, nil
}

func (r *SQLiteEngineeringRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Engineering, error) {
	query := `SELECT ` + engineeringColumns + ` FROM engineerings
		WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing engineerings: %w", err)
	}
	defer rows.Close()

	var out []*domain.Engineering
	for rows.Next() {
		e, err := scanEngineering(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning engineering: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteEngineeringRepo) Update(ctx context.Context, e *domain.Engineering) error {
	query := `UPDATE engineerings SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Name, e.Description, e.UpdatedAt.Format(time.RFC3339), e.ID)
	if err != nil {
		return fmt.Errorf("updating engineering: %w", err)
	}
	return requireRow(res, "engineering", e.ID)
}

func (r *SQLiteEngineeringRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM engineerings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting engineering: %w", err)
	}
	return requireRow(res, "engineering", id)
}

func scanEngineering(scan func(dest ...any) error) (*domain.Engineering, error) {
	var e domain.Engineering
	var templateID sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(&e.ID, &e.ProjectID, &templateID, &e.Name, &e.Description,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	e.TemplateID = parseNullableStr(templateID)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &e, nil
}
