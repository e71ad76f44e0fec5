// Package task runs operations as tracked, optionally non-cancelable tasks and
// renders their status timeline on the console.
package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Record is one entry of a task's status timeline.
type Record struct {
	At      time.Time
	Status  mkdb.TaskStatus
	Message string
}

// Task is the tracker's mkdb.Task implementation. Safe for concurrent use.
type Task struct {
	id   string
	info mkdb.TaskInfo

	mu       sync.Mutex
	status   mkdb.TaskStatus
	timeline []Record

	now      func() time.Time
	onUpdate func(t *Task, r Record)
}

func newTask(info mkdb.TaskInfo, now func() time.Time, onUpdate func(*Task, Record)) *Task {
	return &Task{
		id:       uuid.NewString(),
		info:     info,
		status:   mkdb.TaskNotStarted,
		now:      now,
		onUpdate: onUpdate,
	}
}

// ID returns the task's random UUID.
func (t *Task) ID() string {
	return t.id
}

// Info returns the description the task was started with.
func (t *Task) Info() mkdb.TaskInfo {
	return t.info
}

// UpdateStatus records a transition. Updates after a terminal status are ignored.
func (t *Task) UpdateStatus(status mkdb.TaskStatus, message string) {
	t.mu.Lock()
	if t.status.IsTerminal() {
		t.mu.Unlock()
		return
	}
	r := Record{At: t.now(), Status: status, Message: message}
	t.status = status
	t.timeline = append(t.timeline, r)
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(t, r)
	}
}

// Status returns the current status.
func (t *Task) Status() mkdb.TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Timeline returns a copy of the recorded transitions in order.
func (t *Task) Timeline() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Record, len(t.timeline))
	copy(out, t.timeline)
	return out
}

var _ mkdb.Task = (*Task)(nil)
