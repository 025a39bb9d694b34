package cli

import (
	"context"
	"os"

	"github.com/pankajredekar/productapi"
	"github.com/pankajredekar/productapi/internal/config"
	"github.com/pankajredekar/productapi/internal/database"
	"github.com/pankajredekar/productapi/internal/migrate"
	_ "github.com/pankajredekar/productapi/internal/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mustLoadConfig loads and validates the config named by --config, exiting on failure
func mustLoadConfig(cmd *cobra.Command) *config.Config {
	out := cmd.OutOrStdout()
	if !config.FileExists(configPath) {
		printError(out, "%s not found. Run 'productapi init' first", configPath)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		printError(out, "Failed to load config: %v", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		printError(out, "Invalid config: %v", err)
		os.Exit(1)
	}
	return cfg
}

// schemaSession is a migration runner bound to one open connection
type schemaSession struct {
	conn   *database.Conn
	runner *migrate.Runner
}

func (s *schemaSession) Close() error {
	return s.conn.Close()
}

// openSchemaSession connects to the configured database and prepares the tracking table
func openSchemaSession(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*schemaSession, error) {
	factory, err := database.NewConnectionFactory(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	conn, err := factory.Open(ctx)
	if err != nil {
		return nil, err
	}

	tracker := migrate.NewTracker(conn.DB, cfg.MigrationTable)
	if err := tracker.Initialize(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &schemaSession{
		conn:   conn,
		runner: migrate.NewRunner(conn.DB, productapi.GetGlobalRegistry(), tracker, logger),
	}, nil
}
