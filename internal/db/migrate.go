package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list re-runs safely on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    INTEGER NOT NULL DEFAULT 5
		            CHECK(priority BETWEEN 0 AND 9),
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		start_date  TEXT,
		end_date    TEXT,
		creator     TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS engineerings (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		template_id TEXT,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                     TEXT PRIMARY KEY,
		engineering_id         TEXT NOT NULL REFERENCES engineerings(id) ON DELETE CASCADE,
		project_id             TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		template_id            TEXT,
		name                   TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		priority               INTEGER NOT NULL DEFAULT 5
		                       CHECK(priority BETWEEN 0 AND 9),
		status                 TEXT NOT NULL DEFAULT 'todo'
		                       CHECK(status IN ('todo','in_progress','done')),
		equipment_count        INTEGER,
		actual_equipment_count INTEGER NOT NULL DEFAULT 0,
		completion_rate        INTEGER NOT NULL DEFAULT 0
		                       CHECK(completion_rate BETWEEN 0 AND 100),
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subtasks (
		id                     TEXT PRIMARY KEY,
		task_id                TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		parent_task_id         TEXT,
		template_id            TEXT,
		name                   TEXT NOT NULL,
		description            TEXT NOT NULL DEFAULT '',
		priority               INTEGER NOT NULL DEFAULT 5
		                       CHECK(priority BETWEEN 0 AND 9),
		status                 TEXT NOT NULL DEFAULT 'todo'
		                       CHECK(status IN ('todo','in_progress','done')),
		planned_start          TEXT,
		planned_end            TEXT,
		equipment_count        INTEGER,
		actual_equipment_count INTEGER,
		completion_rate        INTEGER NOT NULL DEFAULT 0
		                       CHECK(completion_rate BETWEEN 0 AND 100),
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_templates (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS engineering_templates (
		id                  TEXT PRIMARY KEY,
		project_template_id TEXT REFERENCES project_templates(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_templates (
		id                      TEXT PRIMARY KEY,
		engineering_template_id TEXT NOT NULL REFERENCES engineering_templates(id) ON DELETE CASCADE,
		name                    TEXT NOT NULL,
		description             TEXT NOT NULL DEFAULT '',
		priority                INTEGER NOT NULL DEFAULT 1
		                        CHECK(priority BETWEEN 0 AND 2),
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS subtask_templates (
		id               TEXT PRIMARY KEY,
		task_template_id TEXT NOT NULL REFERENCES task_templates(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		priority         INTEGER NOT NULL DEFAULT 1
		                 CHECK(priority BETWEEN 0 AND 2),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_engineerings_project ON engineerings(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_engineering ON tasks(engineering_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subtasks_task ON subtasks(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_engineering_templates_project ON engineering_templates(project_template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_templates_engineering ON task_templates(engineering_template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subtask_templates_task ON subtask_templates(task_template_id)`,
}
