package service

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hylin-tw/worksite/internal/db"
	"github.com/hylin-tw/worksite/internal/domain"
	"github.com/hylin-tw/worksite/internal/repository"
)

// TestSplit_NeverOverallocates drives the allocator with random requests and
// checks the invariant after every attempt: the sum of sibling allocations
// never exceeds the parent's planned count, no matter which requests are
// accepted or rejected.
func TestSplit_NeverOverallocates(t *testing.T) {
	_, projects, engineerings, tasks, _, uow := setupRepos(t)
	ctx := context.Background()

	const capacity = 25
	parent := seedParentTask(t, projects, engineerings, tasks, capacity)
	svc := NewSubTaskService(tasks, uow, nil)

	rng := rand.New(rand.NewSource(42))
	accepted, rejected := 0, 0

	for i := 0; i < 100; i++ {
		request := rng.Intn(10) + 1
		_, err := svc.Split(ctx, SplitInput{
			ParentTaskID:   parent.ID,
			EquipmentCount: &request,
		})
		switch {
		case err == nil:
			accepted++
		default:
			var capErr *domain.CapacityError
			require.ErrorAs(t, err, &capErr, "the only acceptable failure is a capacity rejection")
			rejected++
		}

		subs, err := svc.ListByTask(ctx, parent.ID)
		require.NoError(t, err)
		total := 0
		for _, s := range subs {
			if s.EquipmentCount != nil {
				total += *s.EquipmentCount
			}
		}
		require.LessOrEqual(t, total, capacity, "sibling allocations must never exceed the parent's planned count")
	}

	assert.Positive(t, accepted, "seeded run should accept some splits")
	assert.Positive(t, rejected, "seeded run should reject some splits")
}

// TestSplit_ConcurrentSameParent fires parallel splits at one parent over a
// file-backed database. The read-validate-write sequence runs inside a single
// transaction, so the accepted splits can never jointly overallocate.
func TestSplit_ConcurrentSameParent(t *testing.T) {
	dir := t.TempDir()
	database, err := db.OpenDB(filepath.Join(dir, "split_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	projects := repository.NewSQLiteProjectRepo(database)
	engineerings := repository.NewSQLiteEngineeringRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	const capacity = 10
	parent := seedParentTask(t, projects, engineerings, tasks, capacity)
	svc := NewSubTaskService(tasks, uow, nil)

	// SQLite allows only one writer at a time, so a split may transiently
	// fail with SQLITE_BUSY. Retry with backoff the way a user would re-run
	// the command; a capacity rejection is a final answer, not a retry.
	retrySplit := func(request int) error {
		const maxRetries = 5
		var err error
		for attempt := 0; attempt < maxRetries; attempt++ {
			_, err = svc.Split(ctx, SplitInput{
				ParentTaskID:   parent.ID,
				EquipmentCount: &request,
			})
			var capErr *domain.CapacityError
			if err == nil || errors.As(err, &capErr) {
				return nil
			}
			time.Sleep(time.Millisecond * time.Duration(1<<attempt))
		}
		return err
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := retrySplit(3); err != nil {
				t.Errorf("unexpected split error: %v", err)
			}
		}()
	}
	wg.Wait()

	subs, err := tasks.ListSubTasks(ctx, parent.ID)
	require.NoError(t, err)

	total := 0
	for _, s := range subs {
		if s.EquipmentCount != nil {
			total += *s.EquipmentCount
		}
	}
	assert.LessOrEqual(t, total, capacity, "concurrent splits must not jointly overallocate")
	assert.Positive(t, len(subs), "at least one split should win")
}
