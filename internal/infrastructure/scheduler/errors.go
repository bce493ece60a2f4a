package scheduler

import "errors"

var (
	// ErrSchedulerRunning is returned when adding a task after Start
	ErrSchedulerRunning = errors.New("scheduler is already running")

	// ErrInvalidTask is returned for a task without name, interval or function
	ErrInvalidTask = errors.New("invalid scheduled task")
)
