package cli

import (
	"os"

	"github.com/pankajredekar/productapi/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Creates a productapi.yml configuration file (or the path given by --config)",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if config.FileExists(configPath) {
			printWarning(out, "%s already exists", configPath)
			return
		}

		if err := config.Default().Save(configPath); err != nil {
			printError(out, "%v", err)
			os.Exit(1)
		}

		printSuccess(out, "Initialized productapi project")
		printInfo(out, "Created %s", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
