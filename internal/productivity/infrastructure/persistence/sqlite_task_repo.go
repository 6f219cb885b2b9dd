package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteTaskRepository implements task.Repository using SQLite.
// Timestamps are stored as unix nanoseconds.
type SQLiteTaskRepository struct {
	conn database.Connection
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(conn database.Connection) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

const sqliteTaskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

func (r *SQLiteTaskRepository) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	s := t.Snapshot()
	_, err := r.conn.Exec(ctx,
		`INSERT INTO tasks (`+sqliteTaskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(),
		s.OwnerID.String(),
		s.Title,
		s.Description,
		boolToInt(s.Completed),
		s.CreatedAt.UnixNano(),
		s.UpdatedAt.UnixNano(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return uuid.Nil, task.ErrDuplicateTask
		}
		return uuid.Nil, task.Unavailable(err)
	}
	return s.ID, nil
}

func (r *SQLiteTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID.String(),
	)
	if err != nil {
		return nil, task.Unavailable(err)
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, task.Unavailable(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, task.Unavailable(err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+sqliteTaskColumns+` FROM tasks WHERE id = ?`,
		id.String(),
	)
	t, err := scanSQLiteTask(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, task.Unavailable(err)
	}
	return t, nil
}

func (r *SQLiteTaskRepository) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	result, err := r.conn.Exec(ctx,
		`UPDATE tasks SET title = ?, description = ?, completed = ?, updated_at = ? WHERE id = ?`,
		fields.Title,
		fields.Description,
		boolToInt(fields.Completed),
		fields.UpdatedAt.UnixNano(),
		id.String(),
	)
	if err != nil {
		return task.Unavailable(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return task.Unavailable(err)
	}
	if affected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *SQLiteTaskRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String()); err != nil {
		return task.Unavailable(err)
	}
	return nil
}

func scanSQLiteTask(row database.Row) (*task.Task, error) {
	var (
		id, ownerID          string
		title, description   string
		completed            int
		createdAt, updatedAt int64
	)
	if err := row.Scan(&id, &ownerID, &title, &description, &completed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}

	return task.Rehydrate(task.Snapshot{
		ID:          taskID,
		OwnerID:     owner,
		Title:       title,
		Description: description,
		Completed:   completed != 0,
		CreatedAt:   time.Unix(0, createdAt).UTC(),
		UpdatedAt:   time.Unix(0, updatedAt).UTC(),
	}), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
