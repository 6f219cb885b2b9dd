package persistence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the store circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive store failures that opens the circuit.
	FailureThreshold uint32
	// Timeout is how long the circuit stays open before a trial request is let through.
	Timeout time.Duration
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerConfig returns the default breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerTaskRepository fails fast with task.ErrStoreUnavailable while the
// wrapped store keeps failing. Only unavailability counts as a failure;
// not-found and duplicate answers are healthy responses.
type BreakerTaskRepository struct {
	next    task.Repository
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerTaskRepository wraps next with a circuit breaker.
func NewBreakerTaskRepository(next task.Repository, cfg BreakerConfig, logger *slog.Logger) *BreakerTaskRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        "task-store",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, task.ErrStoreUnavailable)
		},
	}

	return &BreakerTaskRepository{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// State returns the breaker state: closed, half-open or open.
func (r *BreakerTaskRepository) State() string {
	return r.breaker.State().String()
}

func (r *BreakerTaskRepository) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	result, err := r.execute(func() (any, error) {
		return r.next.Insert(ctx, t)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return result.(uuid.UUID), nil
}

func (r *BreakerTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	result, err := r.execute(func() (any, error) {
		return r.next.FindByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*task.Task), nil
}

func (r *BreakerTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	result, err := r.execute(func() (any, error) {
		return r.next.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*task.Task), nil
}

func (r *BreakerTaskRepository) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	_, err := r.execute(func() (any, error) {
		return nil, r.next.Replace(ctx, id, fields)
	})
	return err
}

func (r *BreakerTaskRepository) Remove(ctx context.Context, id uuid.UUID) error {
	_, err := r.execute(func() (any, error) {
		return nil, r.next.Remove(ctx, id)
	})
	return err
}

func (r *BreakerTaskRepository) execute(fn func() (any, error)) (any, error) {
	result, err := r.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, task.Unavailable(err)
	}
	return result, err
}
