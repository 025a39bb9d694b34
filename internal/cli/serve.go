package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pankajredekar/productapi/internal/api"
	"github.com/pankajredekar/productapi/internal/database"
	"github.com/pankajredekar/productapi/internal/logging"
	"github.com/pankajredekar/productapi/internal/product"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Serves the product API until SIGINT or SIGTERM",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cfg := mustLoadConfig(cmd)

		logger, err := logging.New(cfg.Logger)
		if err != nil {
			printError(out, "Failed to initialize logger: %v", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveMigrate {
			session, err := openSchemaSession(ctx, cfg, logger)
			if err != nil {
				logger.Fatal("failed to connect to database", zap.Error(err))
			}
			_, err = session.runner.Migrate(ctx)
			session.Close()
			if err != nil {
				logger.Fatal("schema migration failed", zap.Error(err))
			}
		}

		factory, err := database.NewConnectionFactory(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("invalid database configuration", zap.Error(err))
		}
		logger.Info("using database", zap.String("dialect", factory.Dialect()))

		srv := api.NewServer(cfg.HTTP, product.NewRepository(factory), logger)
		if err := srv.Run(ctx); err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
		logger.Info("server stopped")
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending schema migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
