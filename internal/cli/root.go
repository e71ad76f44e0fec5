package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/mkdb/pkg/mkdb"
)

var rootCmd = &cobra.Command{
	Use:   "mkdb",
	Short: "Create a database on a configured server",
	Long: `mkdb creates a new database on a MSSQL, PostgreSQL, MySQL or Cassandra
server described by a connection profile in mkdb.yaml.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or unsupported provider
  11 - Failed to connect to the server
  12 - Confirmation declined or prompt dismissed
  13 - Server rejected CREATE DATABASE
  14 - No active connection
  15 - Invalid database name`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is the common case.
		_ = godotenv.Load()
	},
}

// Execute runs the root command. Errors the user has already been shown
// are returned without printing them again.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	err := rootCmd.Execute()
	if err != nil && !alreadyReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// alreadyReported reports whether err ends a run the user has already seen
// the result of: a reported outcome, a reported abort, or a silent decline.
func alreadyReported(err error) bool {
	return errors.Is(err, mkdb.ErrConfirmationDeclined) ||
		errors.Is(err, mkdb.ErrPromptCancelled) ||
		errors.Is(err, mkdb.ErrNoActiveConnection) ||
		errors.Is(err, mkdb.ErrConnectionFailed) ||
		errors.Is(err, mkdb.ErrExecutionFailed)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
