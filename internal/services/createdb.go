package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// Task status texts.
const (
	StatusConnecting = "Connecting to database"
	StatusExecuting  = "Executing create database query"
)

// NamePrompt is the prompt shown when asking for the database name.
func NamePrompt(server string) string {
	return fmt.Sprintf("Name of database to create on server %s", server)
}

// TaskDisplayName is the display name of the creation task.
func TaskDisplayName(dbName string) string {
	return fmt.Sprintf("Creating Database %s", dbName)
}

// CreateDatabaseService implements mkdb.DatabaseCreationService.
// Stateless between calls; concurrent calls are safe when the injected
// collaborators are.
type CreateDatabaseService struct {
	resolver mkdb.ConnectionResolver
	prompter mkdb.NamePrompter
	creator  mkdb.DatabaseCreator
	reporter mkdb.ResultReporter
	tracker  mkdb.TaskTracker
	logger   mkdb.Logger
}

// NewCreateDatabaseService creates a CreateDatabaseService with all
// dependencies injected. Panics on nil dependencies: these are wiring
// mistakes and should fail at startup.
func NewCreateDatabaseService(
	resolver mkdb.ConnectionResolver,
	prompter mkdb.NamePrompter,
	creator mkdb.DatabaseCreator,
	reporter mkdb.ResultReporter,
	tracker mkdb.TaskTracker,
	logger mkdb.Logger,
) *CreateDatabaseService {
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	if prompter == nil {
		panic("prompter cannot be nil")
	}
	if creator == nil {
		panic("creator cannot be nil")
	}
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CreateDatabaseService{
		resolver: resolver,
		prompter: prompter,
		creator:  creator,
		reporter: reporter,
		tracker:  tracker,
		logger:   logger,
	}
}

// CreateDatabase resolves a connection, obtains a name, and creates the
// database inside a non-cancelable tracked task.
//
// The returned error mirrors what the user was shown, so callers can map it
// to an exit code. Messages have already been displayed by the reporter.
func (s *CreateDatabaseService) CreateDatabase(ctx context.Context, opts mkdb.CreateOptions) error {
	if opts.DatabaseName != "" {
		if err := mkdb.ValidateDatabaseName(opts.DatabaseName); err != nil {
			return err
		}
	}

	conn, err := s.resolver.Resolve(ctx, opts.Connection)
	switch {
	case errors.Is(err, mkdb.ErrNoActiveConnection):
		s.reporter.ReportAbort()
		return err
	case errors.Is(err, mkdb.ErrConfirmationDeclined):
		s.logger.Verbose("Create database declined by user")
		return err
	case err != nil:
		return err
	}

	name, err := s.databaseName(ctx, conn, opts.DatabaseName)
	if err != nil {
		return err
	}

	req, err := mkdb.NewCreationRequest(name, conn)
	if err != nil {
		return err
	}

	return s.runCreation(ctx, req)
}

func (s *CreateDatabaseService) databaseName(ctx context.Context, conn *mkdb.Connection, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}

	name, err := s.prompter.PromptDatabaseName(ctx, NamePrompt(conn.Server()), mkdb.DatabaseNameValidationMessage)
	if err != nil {
		return "", fmt.Errorf("failed to read database name: %w", err)
	}
	if name == "" {
		s.logger.Verbose("Database name prompt dismissed")
		return "", mkdb.ErrPromptCancelled
	}
	return name, nil
}

func (s *CreateDatabaseService) runCreation(ctx context.Context, req *mkdb.CreationRequest) error {
	info := mkdb.TaskInfo{
		DisplayName:  TaskDisplayName(req.DatabaseName),
		Description:  "",
		Connection:   req.Connection,
		IsCancelable: false,
	}

	var outcome mkdb.Outcome
	reported := false
	runErr := s.tracker.Run(ctx, info, func(ctx context.Context, task mkdb.Task) {
		ctx = mkdb.WithCreateTrace(ctx, &mkdb.CreateTrace{
			Connecting: func() { task.UpdateStatus(mkdb.TaskInProgress, StatusConnecting) },
			Executing:  func() { task.UpdateStatus(mkdb.TaskInProgress, StatusExecuting) },
		})
		outcome = s.creator.Create(ctx, req.Connection, req.DatabaseName)
		s.reporter.Report(outcome, task)
		reported = true
	})

	if runErr != nil {
		if !reported {
			outcome = mkdb.Outcome{
				Kind:         mkdb.OutcomeExecError,
				DatabaseName: req.DatabaseName,
				Server:       req.Connection.Server(),
				Message:      runErr.Error(),
				Err:          runErr,
			}
			s.reporter.Report(outcome, nil)
		}
		s.logger.Error("Create database task failed: %v", runErr)
		return fmt.Errorf("%w: %w", mkdb.ErrExecutionFailed, runErr)
	}

	if !reported {
		outcome.DatabaseName = req.DatabaseName
		outcome.Server = req.Connection.Server()
		s.reporter.Report(outcome, nil)
	}

	s.logger.Verbose("Create database %q finished: %s", req.DatabaseName, outcome.Kind)
	return outcome.AsError()
}

var _ mkdb.DatabaseCreationService = (*CreateDatabaseService)(nil)
