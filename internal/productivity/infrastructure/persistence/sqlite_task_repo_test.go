package persistence_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/checklist/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSQLiteTestDB opens a migrated SQLite database in a temp directory.
func setupSQLiteTestDB(t *testing.T) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "tasks.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func TestSQLiteTaskRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) task.Repository {
		return persistence.NewSQLiteTaskRepository(setupSQLiteTestDB(t))
	})
}

func TestSQLiteTaskRepository_OrdersNewestFirst(t *testing.T) {
	repo := persistence.NewSQLiteTaskRepository(setupSQLiteTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	for i, title := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, newContractTask(t, owner, title, time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	tasks, err := repo.FindByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title())
	assert.Equal(t, "first", tasks[2].Title())
}

func TestSQLiteTaskRepository_ClosedConnection(t *testing.T) {
	conn := setupSQLiteTestDB(t)
	repo := persistence.NewSQLiteTaskRepository(conn)
	require.NoError(t, conn.Close())

	_, err := repo.FindByOwner(context.Background(), uuid.New())
	assert.ErrorIs(t, err, task.ErrStoreUnavailable)
}
