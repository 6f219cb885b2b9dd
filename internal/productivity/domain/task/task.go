package task

import (
	"strings"
	"time"

	"github.com/felixgeelhaar/checklist/internal/shared/domain"
	"github.com/google/uuid"
)

// Task is a single to-do record owned by exactly one identity.
type Task struct {
	domain.BaseAggregateRoot
	ownerID     uuid.UUID
	title       string
	description string
	completed   bool
}

// Fields is the mutable part of a task, replaced as one unit by the store.
type Fields struct {
	Title       string
	Description string
	Completed   bool
	UpdatedAt   time.Time
}

// Snapshot is the flat persisted form of a task.
type Snapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates a pending task for ownerID stamped at now.
func NewTask(ownerID uuid.UUID, title, description string, now time.Time) (*Task, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(stamp(now)),
		ownerID:           ownerID,
		title:             title,
		description:       strings.TrimSpace(description),
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.ownerID, t.title, t.description))

	return t, nil
}

// ValidateTitle trims title and rejects it when nothing is left.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

// Rehydrate rebuilds a task from persisted state. No events are recorded.
func Rehydrate(s Snapshot) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(
			domain.RehydrateBaseEntity(s.ID, s.CreatedAt, s.UpdatedAt),
		),
		ownerID:     s.OwnerID,
		title:       s.Title,
		description: s.Description,
		completed:   s.Completed,
	}
}

func (t *Task) OwnerID() uuid.UUID  { return t.ownerID }
func (t *Task) Title() string       { return t.title }
func (t *Task) Description() string { return t.description }
func (t *Task) IsCompleted() bool   { return t.completed }

// OwnedBy reports whether id is the task's owner.
func (t *Task) OwnedBy(id uuid.UUID) bool { return t.ownerID == id }

// Fields returns the current mutable state, ready for Repository.Replace.
func (t *Task) Fields() Fields {
	return Fields{
		Title:       t.title,
		Description: t.description,
		Completed:   t.completed,
		UpdatedAt:   t.UpdatedAt(),
	}
}

// Snapshot returns the persisted form of the task.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:          t.ID(),
		OwnerID:     t.ownerID,
		Title:       t.title,
		Description: t.description,
		Completed:   t.completed,
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// Toggle flips the completion flag.
func (t *Task) Toggle(at time.Time) {
	t.completed = !t.completed
	t.Touch(stamp(at))
	t.AddDomainEvent(NewTaskToggled(t.ID(), t.completed))
}

// Apply replaces title, description and completed together.
// The title is validated first; on error the task is left untouched.
func (t *Task) Apply(f Fields) error {
	title, err := ValidateTitle(f.Title)
	if err != nil {
		return err
	}

	at := f.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}

	t.title = title
	t.description = strings.TrimSpace(f.Description)
	t.completed = f.Completed
	t.Touch(stamp(at))

	t.AddDomainEvent(NewTaskUpdated(t.ID(), t.title, t.description, t.completed))

	return nil
}

// MarkDeleted records the deletion. The store removes the record.
func (t *Task) MarkDeleted() {
	t.AddDomainEvent(NewTaskDeleted(t.ID()))
}

// stamp normalises a timestamp to UTC at microsecond precision, the finest
// resolution every store keeps.
func stamp(at time.Time) time.Time {
	return at.UTC().Truncate(time.Microsecond)
}
