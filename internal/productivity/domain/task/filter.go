package task

import "strings"

// Filter selects a read-only view of an owner's tasks.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter accepts all, pending or completed, case-insensitively.
// An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", ErrUnknownFilter
	}
}

func (f Filter) String() string { return string(f) }

// Matches reports whether t belongs in the view.
func (f Filter) Matches(t *Task) bool {
	switch f {
	case FilterPending:
		return !t.IsCompleted()
	case FilterCompleted:
		return t.IsCompleted()
	default:
		return true
	}
}

// Apply returns the matching tasks in their original order.
// The input slice is never modified.
func (f Filter) Apply(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
