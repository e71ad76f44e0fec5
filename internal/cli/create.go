package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/mkdb/internal/config"
	"github.com/vvka-141/mkdb/internal/creator"
	"github.com/vvka-141/mkdb/internal/credentials"
	"github.com/vvka-141/mkdb/internal/db"
	"github.com/vvka-141/mkdb/internal/logging"
	"github.com/vvka-141/mkdb/internal/reporter"
	"github.com/vvka-141/mkdb/internal/resolver"
	"github.com/vvka-141/mkdb/internal/services"
	"github.com/vvka-141/mkdb/internal/task"
	"github.com/vvka-141/mkdb/internal/tui"
	"github.com/vvka-141/mkdb/internal/ui"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new database",
	Long: `Create a new database on a configured connection.

Without --connection the active profile is used. For MSSQL profiles stored
credentials are merged in and you are asked to confirm the target server.

Examples:
  mkdb create
  mkdb create --name Sales
  mkdb create --connection local-pg --name analytics
  mkdb create --name Sales --yes`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

type createFlagValues struct {
	connection string
	name       string
	yes        bool
	configDir  string
}

var createFlags createFlagValues

func resetCreateFlags() {
	createFlags = createFlagValues{}
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createFlags.connection, "connection", "",
		"Connection profile id (skips the confirmation prompt)")
	createCmd.Flags().StringVar(&createFlags.name, "name", "",
		"Database name (skips the name prompt)")
	createCmd.Flags().BoolVar(&createFlags.yes, "yes", false,
		"Confirm the target server without asking")
	createCmd.Flags().StringVar(&createFlags.configDir, "config-dir", "",
		"Directory containing mkdb.yaml (default: current directory, then $MKDB_CONFIG_DIR)")
}

// streams are the terminal endpoints a create run talks to.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// interactiveMode is replaced in tests to force line-based prompts.
var interactiveMode = tui.IsInteractive

func runCreate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	s := streams{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	return executeCreate(ctx, createFlags, verbose, s, interactiveMode())
}

// executeCreate wires the workflow for one invocation and runs it.
func executeCreate(ctx context.Context, flags createFlagValues, verbose bool, s streams, interactive bool) error {
	logger := logging.NewConsoleLoggerTo(s.errOut, verbose)
	configDir := config.FindDir(flags.configDir)
	profiles := config.NewProfileSource(configDir)

	var explicit *mkdb.Connection
	if flags.connection != "" {
		conn, err := profiles.Connection(flags.connection)
		if err != nil {
			return err
		}
		explicit = conn
	}

	console := ui.NewConsoleIO(s.in, s.out, s.errOut)
	var (
		confirmer mkdb.Confirmer    = console
		prompter  mkdb.NamePrompter = console
	)
	if interactive {
		p := tui.NewPrompter(s.in, s.out)
		confirmer, prompter = p, p
	}
	if flags.yes {
		confirmer = ui.NewAssumeYesConfirmerTo(s.out)
	}

	store := credentials.Chain{
		credentials.NewEnvStore(),
		credentials.NewFileStore(configDir, logger),
	}

	svc := services.NewCreateDatabaseService(
		resolver.New(profiles, store, confirmer, logger),
		prompter,
		creator.New(db.NewRegistry(logger), logger),
		reporter.New(console, logger),
		task.NewConsoleTrackerTo(s.out, logger),
		logger,
	)

	return svc.CreateDatabase(ctx, mkdb.CreateOptions{
		Connection:   explicit,
		DatabaseName: flags.name,
	})
}
