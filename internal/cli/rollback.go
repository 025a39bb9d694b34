package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [n]",
	Short: "Rollback schema migrations",
	Long:  "Rolls back the last N schema migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cfg := mustLoadConfig(cmd)

		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				printError(out, "Invalid number: %s", args[0])
				os.Exit(1)
			}
		}

		session, err := openSchemaSession(cmd.Context(), cfg, nil)
		if err != nil {
			printError(out, "Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer session.Close()

		applied, err := session.runner.Applied(cmd.Context())
		if err != nil {
			printError(out, "Failed to get applied migrations: %v", err)
			os.Exit(1)
		}

		if len(applied) == 0 {
			printWarning(out, "No migrations to rollback")
			return
		}

		printInfo(out, "Rolling back %d migration(s)...", min(n, len(applied)))

		done, err := session.runner.Rollback(cmd.Context(), n)
		if err != nil {
			printError(out, "Failed to rollback: %v", err)
			os.Exit(1)
		}

		printSuccess(out, "Rolled back %d migration(s)", done)
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
