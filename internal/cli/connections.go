package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vvka-141/mkdb/internal/config"
)

var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "List connection profiles",
	Long: `List the connection profiles in mkdb.yaml. The active profile is marked
with '*'. $MKDB_ACTIVE_CONNECTION overrides the file's active entry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("config-dir")
		return listConnections(cmd.OutOrStdout(), config.FindDir(dir), os.Getenv(config.EnvActiveConnection))
	},
}

func init() {
	rootCmd.AddCommand(connectionsCmd)
	connectionsCmd.Flags().String("config-dir", "",
		"Directory containing mkdb.yaml (default: current directory, then $MKDB_CONFIG_DIR)")
}

func listConnections(w io.Writer, dir, activeOverride string) error {
	cfg, err := config.Load(dir)
	if errors.Is(err, config.ErrConfigNotFound) {
		fmt.Fprintf(w, "No %s found in %s\n", config.ConfigFileName, dir)
		return nil
	}
	if err != nil {
		return err
	}

	active := cfg.Active
	if activeOverride != "" {
		active = activeOverride
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tPROVIDER\tSERVER")
	for _, id := range cfg.IDs() {
		conn, _ := cfg.Lookup(id)
		marker := ""
		if id == active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, conn.ID, conn.ProviderName, conn.Server())
	}
	return tw.Flush()
}
