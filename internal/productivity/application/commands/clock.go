package commands

import "time"

// Clock returns the instant a handler stamps on a task.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
