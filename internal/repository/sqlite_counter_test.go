package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmateus/crewplan/internal/db"
	"github.com/dmateus/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRepo_LazySeedStartsAtOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCounterRepo(database)

	n, err := repo.Increment(ctx, "branch-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Increment(ctx, "branch-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCounterRepo_SequentialAllocationsGapFree(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCounterRepo(database)

	for i := 1; i <= 25; i++ {
		n, err := repo.Increment(ctx, "branch-1", 2025)
		require.NoError(t, err)
		assert.Equal(t, i, n, "values must be strictly increasing with no gaps")
	}
}

func TestCounterRepo_KeysAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCounterRepo(database)

	n1, err := repo.Increment(ctx, "branch-1", 2025)
	require.NoError(t, err)
	n2, err := repo.Increment(ctx, "branch-2", 2025)
	require.NoError(t, err)
	n3, err := repo.Increment(ctx, "branch-1", 2026)
	require.NoError(t, err)

	assert.Equal(t, 1, n1)
	assert.Equal(t, 1, n2, "different branch starts its own counter")
	assert.Equal(t, 1, n3, "different year starts its own counter")
}

func TestCounterRepo_GetMissingReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCounterRepo(database)

	_, err := repo.Get(ctx, "branch-1", 2025)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.Increment(ctx, "branch-1", 2025)
	require.NoError(t, err)

	c, err := repo.Get(ctx, "branch-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, c.LastNumber)
}

// newFileTestDB creates a file-backed SQLite database. Unlike :memory:, a
// file-backed DB shares state across all pooled connections, which is
// required to exercise real concurrent allocation under WAL mode.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	database, err := db.OpenDB(filepath.Join(dir, "counter_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestCounterRepo_ConcurrentAllocationsNeverRepeat(t *testing.T) {
	database := newFileTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCounterRepo(database)

	const workers = 8
	const perWorker = 5

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				n, err := repo.Increment(ctx, "branch-1", 2025)
				if err != nil {
					// Contention is an acceptable outcome here; the
					// allocator layer owns retrying it.
					if errors.Is(err, ErrContention) {
						continue
					}
					t.Errorf("increment: %v", err)
					return
				}
				mu.Lock()
				if seen[n] {
					t.Errorf("value %d allocated twice", n)
				}
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
