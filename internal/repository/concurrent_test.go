package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/testutil"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies that concurrent task listings
// do not block or corrupt data while subtask writes are in progress. SQLite
// WAL mode allows concurrent readers with a single writer, which is the
// normal operating mode for a single-user CLI.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	database := newConcurrentTestDB(t)
	ctx := context.Background()
	taskRepo := NewSQLiteTaskRepo(database)

	p, e := seedHierarchy(t, database)
	task := testutil.NewTestTask(e.ID, p.ID, "Parent", testutil.WithEquipmentCount(100))
	require.NoError(t, taskRepo.Create(ctx, task))

	var wg sync.WaitGroup

	// Writer goroutine: create 20 subtasks sequentially.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			sub := testutil.NewTestSubTask(task.ID, fmt.Sprintf("Slice-%d", i),
				testutil.WithSubTaskEquipment(1, 0))
			if err := taskRepo.CreateSubTask(ctx, sub); err != nil {
				t.Errorf("concurrent subtask create failed: %v", err)
				return
			}
		}
	}()

	// Reader goroutines: list subtasks repeatedly while writes happen.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := taskRepo.ListSubTasks(ctx, task.ID); err != nil {
					t.Errorf("concurrent subtask list failed: %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()

	subs, err := taskRepo.ListSubTasks(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 20, "all writes should be visible after the writer finishes")
}
