package mkdb

import (
	"context"
	"fmt"
)

// TaskStatus is the state of a background task.
type TaskStatus int

const (
	TaskNotStarted TaskStatus = iota
	TaskInProgress
	TaskSucceeded
	TaskFailed
)

// String returns the status name.
func (s TaskStatus) String() string {
	switch s {
	case TaskNotStarted:
		return "NotStarted"
	case TaskInProgress:
		return "InProgress"
	case TaskSucceeded:
		return "Succeeded"
	case TaskFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsTerminal reports whether no further transitions are expected.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskSucceeded || s == TaskFailed
}

// TaskInfo describes a background operation.
type TaskInfo struct {
	DisplayName  string
	Description  string
	Connection   *Connection
	IsCancelable bool
}

// Task is the handle an operation uses to record its progress.
type Task interface {
	ID() string
	UpdateStatus(status TaskStatus, message string)
}

// TaskTracker runs a named operation and tracks its status timeline.
type TaskTracker interface {
	// Run executes op as a tracked task and waits for it to finish.
	// When info.IsCancelable is false, op's context ignores cancellation of ctx.
	Run(ctx context.Context, info TaskInfo, op func(ctx context.Context, task Task)) error
}
