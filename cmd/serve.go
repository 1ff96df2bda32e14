package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/shufflegrid/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page grid over HTTP",
	Long: `Serve fetches the feed and project sources once, assembles the grid and
serves it. Shuffles and drags from the page reorder the grid in memory for
as long as the server runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			listen = cfg.Listen
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g := loadGrid(ctx, cfg, logger)
		srv := web.NewServer(web.ServerConfig{
			Title:      cfg.Title,
			RevealStep: cfg.RevealStep(),
		}, g, logger)

		if err := srv.ListenAndServe(ctx, listen); err != nil {
			logger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "Address to listen on (overrides the config)")
}
