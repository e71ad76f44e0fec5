package task

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vvka-141/mkdb/internal/tui"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// ConsoleTracker implements mkdb.TaskTracker, printing one line per status
// transition:
//
//	◐ Creating Database Sales: Connecting to database
//	✓ Creating Database Sales: Database Sales created. Refresh the Databases node to see it
type ConsoleTracker struct {
	out    io.Writer
	logger mkdb.Logger
	now    func() time.Time

	mu    sync.Mutex
	tasks []*Task
}

// NewConsoleTracker creates a tracker rendering to stdout.
func NewConsoleTracker(logger mkdb.Logger) *ConsoleTracker {
	return NewConsoleTrackerTo(os.Stdout, logger)
}

// NewConsoleTrackerTo creates a tracker rendering to out. Panics if logger is nil.
func NewConsoleTrackerTo(out io.Writer, logger mkdb.Logger) *ConsoleTracker {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if out == nil {
		out = io.Discard
	}
	return &ConsoleTracker{out: out, logger: logger, now: time.Now}
}

// Run executes op on its own goroutine and waits for it. When the task is
// not cancelable, op's context does not observe cancellation of ctx.
// A panic in op marks the task Failed and is returned as an error.
func (c *ConsoleTracker) Run(ctx context.Context, info mkdb.TaskInfo, op func(ctx context.Context, task mkdb.Task)) error {
	t := newTask(info, c.now, c.render)
	c.mu.Lock()
	c.tasks = append(c.tasks, t)
	c.mu.Unlock()

	opCtx := ctx
	if !info.IsCancelable {
		opCtx = context.WithoutCancel(ctx)
	}

	c.logger.Verbose("Task %s started: %s", t.ID(), info.DisplayName)
	t.UpdateStatus(mkdb.TaskInProgress, "")

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.UpdateStatus(mkdb.TaskFailed, fmt.Sprint(r))
				done <- fmt.Errorf("task %q panicked: %v", info.DisplayName, r)
			}
		}()
		op(opCtx, t)
		done <- nil
	}()

	err := <-done
	c.logger.Verbose("Task %s finished with status %s", t.ID(), t.Status())
	return err
}

// Tasks returns every task started by this tracker, oldest first.
func (c *ConsoleTracker) Tasks() []*Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *ConsoleTracker) render(t *Task, r Record) {
	symbol := tui.SymbolSpinner
	switch r.Status {
	case mkdb.TaskSucceeded:
		symbol = tui.SymbolCheck
	case mkdb.TaskFailed:
		symbol = tui.SymbolCross
	}

	line := t.info.DisplayName
	if r.Message != "" {
		line += ": " + r.Message
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", symbol, line)
}

var _ mkdb.TaskTracker = (*ConsoleTracker)(nil)
