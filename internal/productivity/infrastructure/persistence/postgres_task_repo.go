package persistence

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	conn database.Connection
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(conn database.Connection) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

const postgresTaskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

// taskRow represents a database row for tasks.
type taskRow struct {
	task.Snapshot
}

func (r *PostgresTaskRepository) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	s := t.Snapshot()
	var id uuid.UUID
	err := r.conn.QueryRow(ctx, `
		INSERT INTO tasks (`+postgresTaskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		s.ID, s.OwnerID, s.Title, s.Description, s.Completed, s.CreatedAt, s.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return uuid.Nil, task.ErrDuplicateTask
		}
		return uuid.Nil, task.Unavailable(err)
	}
	return id, nil
}

func (r *PostgresTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+postgresTaskColumns+`
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, task.Unavailable(err)
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		row, err := scanTaskRow(rows)
		if err != nil {
			return nil, task.Unavailable(err)
		}
		tasks = append(tasks, task.Rehydrate(row.Snapshot))
	}
	if err := rows.Err(); err != nil {
		return nil, task.Unavailable(err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	row, err := scanTaskRow(r.conn.QueryRow(ctx, `
		SELECT `+postgresTaskColumns+`
		FROM tasks
		WHERE id = $1
	`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, task.ErrTaskNotFound
		}
		return nil, task.Unavailable(err)
	}
	return task.Rehydrate(row.Snapshot), nil
}

func (r *PostgresTaskRepository) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	result, err := r.conn.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, completed = $4, updated_at = $5
		WHERE id = $1
	`, id, fields.Title, fields.Description, fields.Completed, fields.UpdatedAt)
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

func (r *PostgresTaskRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return task.Unavailable(err)
	}
	return nil
}

func scanTaskRow(row database.Row) (taskRow, error) {
	var r taskRow
	err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Title,
		&r.Description,
		&r.Completed,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, err
}
