package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long:  "Creates the products table and any later schema changes that haven't been applied yet",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cfg := mustLoadConfig(cmd)

		session, err := openSchemaSession(cmd.Context(), cfg, nil)
		if err != nil {
			printError(out, "Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer session.Close()

		pending, err := session.runner.Pending(cmd.Context())
		if err != nil {
			printError(out, "Failed to get pending migrations: %v", err)
			os.Exit(1)
		}

		if len(pending) == 0 {
			printSuccess(out, "No pending migrations")
			return
		}

		printInfo(out, "Applying %d migration(s)...", len(pending))

		n, err := session.runner.Migrate(cmd.Context())
		if err != nil {
			printError(out, "Failed to apply migrations: %v", err)
			os.Exit(1)
		}

		printSuccess(out, "Applied %d migration(s)", n)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
