package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show schema migration status",
	Long:  "Shows all applied and pending schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cfg := mustLoadConfig(cmd)

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

		pending, err := session.runner.Pending(cmd.Context())
		if err != nil {
			printError(out, "Failed to get pending migrations: %v", err)
			os.Exit(1)
		}

		fmt.Fprintln(out, "\n"+strings.Repeat("=", 60))
		fmt.Fprintln(out, "Migration Status")
		fmt.Fprintln(out, strings.Repeat("=", 60))

		if len(applied) > 0 {
			fmt.Fprintln(out, "\n✓ Applied Migrations:")
			for _, m := range applied {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n✓ Applied Migrations: (none)")
		}

		if len(pending) > 0 {
			fmt.Fprintln(out, "\n○ Pending Migrations:")
			for _, m := range pending {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n○ Pending Migrations: (none)")
		}

		fmt.Fprintln(out)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
