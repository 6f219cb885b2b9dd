package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxTxAttempts bounds optimistic retries when a watched key changes
// under a transaction.
const maxTxAttempts = 3

// RedisTaskRepository stores each task as a JSON document with a per-owner
// index set. Keys are namespaced: {prefix}:task:{id}, {prefix}:owner:{owner}:tasks
// and {prefix}:retired for ids that must never be inserted again.
type RedisTaskRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisTaskRepository creates a Redis-backed task store. An empty prefix
// defaults to "checklist".
func NewRedisTaskRepository(client *redis.Client, prefix string) *RedisTaskRepository {
	if prefix == "" {
		prefix = "checklist"
	}
	return &RedisTaskRepository{client: client, prefix: prefix}
}

type redisTaskDocument struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func documentFrom(s task.Snapshot) redisTaskDocument {
	return redisTaskDocument(s)
}

func (d redisTaskDocument) snapshot() task.Snapshot {
	s := task.Snapshot(d)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s
}

func (r *RedisTaskRepository) taskKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:task:%s", r.prefix, id)
}

func (r *RedisTaskRepository) ownerKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s:owner:%s:tasks", r.prefix, ownerID)
}

func (r *RedisTaskRepository) retiredKey() string {
	return r.prefix + ":retired"
}

func (r *RedisTaskRepository) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	s := t.Snapshot()
	body, err := json.Marshal(documentFrom(s))
	if err != nil {
		return uuid.Nil, task.Unavailable(err)
	}

	key := r.taskKey(s.ID)
	err = r.watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		retired, err := tx.SIsMember(ctx, r.retiredKey(), s.ID.String()).Result()
		if err != nil {
			return err
		}
		if exists > 0 || retired {
			return task.ErrDuplicateTask
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, 0)
			pipe.SAdd(ctx, r.ownerKey(s.OwnerID), s.ID.String())
			return nil
		})
		return err
	}, key, r.retiredKey())
	if err != nil {
		return uuid.Nil, err
	}
	return s.ID, nil
}

func (r *RedisTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	ids, err := r.client.SMembers(ctx, r.ownerKey(ownerID)).Result()
	if err != nil {
		return nil, task.Unavailable(err)
	}

	tasks := make([]*task.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.prefix+":task:"+id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, task.Unavailable(err)
	}
	for _, v := range values {
		// A nil entry is an index member whose document is already gone.
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var doc redisTaskDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, task.Unavailable(err)
		}
		if doc.OwnerID != ownerID {
			continue
		}
		tasks = append(tasks, task.Rehydrate(doc.snapshot()))
	}
	return tasks, nil
}

func (r *RedisTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	doc, err := r.load(ctx, r.client, id)
	if err != nil {
		return nil, err
	}
	return task.Rehydrate(doc.snapshot()), nil
}

// Replace rewrites the document inside a WATCH transaction so a concurrent
// Remove can never be resurrected by a late write.
func (r *RedisTaskRepository) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	key := r.taskKey(id)
	return r.watch(ctx, func(tx *redis.Tx) error {
		doc, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		doc.Title = fields.Title
		doc.Description = fields.Description
		doc.Completed = fields.Completed
		doc.UpdatedAt = fields.UpdatedAt

		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, 0)
			return nil
		})
		return err
	}, key)
}

func (r *RedisTaskRepository) Remove(ctx context.Context, id uuid.UUID) error {
	key := r.taskKey(id)
	return r.watch(ctx, func(tx *redis.Tx) error {
		doc, err := r.load(ctx, tx, id)
		if errors.Is(err, task.ErrTaskNotFound) {
			return tx.SAdd(ctx, r.retiredKey(), id.String()).Err()
		}
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.SRem(ctx, r.ownerKey(doc.OwnerID), id.String())
			pipe.SAdd(ctx, r.retiredKey(), id.String())
			return nil
		})
		return err
	}, key)
}

// Ping verifies the Redis connection.
func (r *RedisTaskRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisTaskRepository) load(ctx context.Context, c stringGetter, id uuid.UUID) (redisTaskDocument, error) {
	raw, err := c.Get(ctx, r.taskKey(id)).Bytes()
	if err == redis.Nil {
		return redisTaskDocument{}, task.ErrTaskNotFound
	}
	if err != nil {
		return redisTaskDocument{}, task.Unavailable(err)
	}

	var doc redisTaskDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return redisTaskDocument{}, task.Unavailable(err)
	}
	return doc, nil
}

// watch runs fn under WATCH on keys, retrying when another client changed
// them first. Domain errors pass through; everything else is unavailability.
func (r *RedisTaskRepository) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = r.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrDuplicateTask),
		errors.Is(err, task.ErrStoreUnavailable):
		return err
	default:
		return task.Unavailable(err)
	}
}
