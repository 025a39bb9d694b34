package cli

import (
	"github.com/pankajredekar/productapi/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "productapi",
	Short: "HTTP CRUD service for products",
	Long:  "productapi serves a products table over a JSON HTTP API and manages its schema",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the config file")
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}
