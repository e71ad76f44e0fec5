// Package reporter turns creation outcomes into user messages and task status.
package reporter

import (
	"fmt"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// User-visible messages.
const (
	MsgConnectFailed      = "Failed to connect, canceling create database operation"
	MsgExecErrorPrefix    = "Error adding database: "
	MsgNoActiveConnection = "Cannot create database as no active connection could be found"
	MsgNoResult           = "the create database task finished without a result"
)

// SuccessMessage is shown after a database was created.
func SuccessMessage(dbName string) string {
	return fmt.Sprintf("Database %s created. Refresh the Databases node to see it", dbName)
}

// Reporter shows one message per outcome and moves the task to a terminal status.
type Reporter struct {
	notifier mkdb.Notifier
	logger   mkdb.Logger
}

// New creates a Reporter. Panics if any dependency is nil.
func New(notifier mkdb.Notifier, logger mkdb.Logger) *Reporter {
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Reporter{notifier: notifier, logger: logger}
}

// Report displays the message for outcome and sets the terminal status on
// task. task may be nil.
func (r *Reporter) Report(outcome mkdb.Outcome, task mkdb.Task) {
	switch outcome.Kind {
	case mkdb.OutcomeExecOK:
		msg := SuccessMessage(outcome.DatabaseName)
		updateStatus(task, mkdb.TaskSucceeded, msg)
		r.notifier.ShowInfo(msg)
	case mkdb.OutcomeConnectFailed:
		if outcome.Err != nil {
			r.logger.Error("Connect to %s failed: %v", outcome.Server, outcome.Err)
		}
		updateStatus(task, mkdb.TaskFailed, MsgConnectFailed)
		r.notifier.ShowError(MsgConnectFailed)
	case mkdb.OutcomeUnknown:
		msg := MsgExecErrorPrefix + MsgNoResult
		updateStatus(task, mkdb.TaskFailed, msg)
		r.notifier.ShowError(msg)
	default:
		msg := MsgExecErrorPrefix + outcome.Message
		updateStatus(task, mkdb.TaskFailed, msg)
		r.notifier.ShowError(msg)
	}
}

// ReportAbort tells the user no connection was available. No task is involved.
func (r *Reporter) ReportAbort() {
	r.notifier.ShowInfo(MsgNoActiveConnection)
}

func updateStatus(task mkdb.Task, status mkdb.TaskStatus, message string) {
	if task != nil {
		task.UpdateStatus(status, message)
	}
}
