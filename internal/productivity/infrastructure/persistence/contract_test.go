package persistence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contractNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newContractTask(t *testing.T, ownerID uuid.UUID, title string, offset time.Duration) *task.Task {
	t.Helper()
	tk, err := task.NewTask(ownerID, title, "desc "+title, contractNow.Add(offset))
	require.NoError(t, err)
	return tk
}

// runRepositoryContract checks the behaviour every task store must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) task.Repository) {
	t.Run("insert then find by id round-trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		tk := newContractTask(t, uuid.New(), "Write report", 0)

		id, err := repo.Insert(ctx, tk)
		require.NoError(t, err)
		assert.Equal(t, tk.ID(), id)

		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tk.Snapshot(), found.Snapshot())
	})

	t.Run("find by id of unknown task is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("find by owner is scoped", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner, other := uuid.New(), uuid.New()

		for i, title := range []string{"a", "b"} {
			_, err := repo.Insert(ctx, newContractTask(t, owner, title, time.Duration(i)*time.Second))
			require.NoError(t, err)
		}
		_, err := repo.Insert(ctx, newContractTask(t, other, "c", 0))
		require.NoError(t, err)

		tasks, err := repo.FindByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		for _, tk := range tasks {
			assert.Equal(t, owner, tk.OwnerID())
		}

		none, err := repo.FindByOwner(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("replace overwrites all mutable fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		tk := newContractTask(t, uuid.New(), "Write report", 0)
		_, err := repo.Insert(ctx, tk)
		require.NoError(t, err)

		fields := task.Fields{
			Title:       "Write final report",
			Description: "due Friday",
			Completed:   true,
			UpdatedAt:   contractNow.Add(time.Hour),
		}
		require.NoError(t, repo.Replace(ctx, tk.ID(), fields))

		found, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, fields, found.Fields())
		assert.Equal(t, tk.CreatedAt(), found.CreatedAt())
		assert.Equal(t, tk.OwnerID(), found.OwnerID())
	})

	t.Run("replace of unknown task is not found", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Replace(context.Background(), uuid.New(), task.Fields{Title: "x", UpdatedAt: contractNow})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := uuid.New()
		tk := newContractTask(t, owner, "Gone soon", 0)
		_, err := repo.Insert(ctx, tk)
		require.NoError(t, err)

		require.NoError(t, repo.Remove(ctx, tk.ID()))
		require.NoError(t, repo.Remove(ctx, tk.ID()))
		require.NoError(t, repo.Remove(ctx, uuid.New()))

		_, err = repo.FindByID(ctx, tk.ID())
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
		tasks, err := repo.FindByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.ErrorIs(t, repo.Replace(ctx, tk.ID(), tk.Fields()), task.ErrTaskNotFound)
	})

	t.Run("replace after remove is not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		tk := newContractTask(t, uuid.New(), "Deleted", 0)
		_, err := repo.Insert(ctx, tk)
		require.NoError(t, err)
		require.NoError(t, repo.Remove(ctx, tk.ID()))

		err = repo.Replace(ctx, tk.ID(), task.Fields{
			Title:     "Resurrected",
			Completed: true,
			UpdatedAt: contractNow.Add(time.Minute),
		})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)

		_, err = repo.FindByID(ctx, tk.ID())
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("inserting an existing id is rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		tk := newContractTask(t, uuid.New(), "Once", 0)
		_, err := repo.Insert(ctx, tk)
		require.NoError(t, err)

		_, err = repo.Insert(ctx, tk)
		assert.ErrorIs(t, err, task.ErrDuplicateTask)
	})

	t.Run("concurrent replaces leave a whole record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		tk := newContractTask(t, uuid.New(), "Contended", 0)
		_, err := repo.Insert(ctx, tk)
		require.NoError(t, err)

		candidates := []task.Fields{
			{Title: "left", Description: "L", Completed: true, UpdatedAt: contractNow.Add(time.Minute)},
			{Title: "right", Description: "R", Completed: false, UpdatedAt: contractNow.Add(2 * time.Minute)},
		}

		var wg sync.WaitGroup
		for _, f := range candidates {
			wg.Add(1)
			go func(f task.Fields) {
				defer wg.Done()
				assert.NoError(t, repo.Replace(ctx, tk.ID(), f))
			}(f)
		}
		wg.Wait()

		found, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Contains(t, candidates, found.Fields())
	})
}
