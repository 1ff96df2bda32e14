package cmd

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/shufflegrid/internal/bootstrap"
	"github.com/arcanaland/shufflegrid/internal/config"
	"github.com/arcanaland/shufflegrid/internal/grid"
	"github.com/arcanaland/shufflegrid/internal/logging"
	"github.com/arcanaland/shufflegrid/internal/source"
)

var (
	configPath string
	debug      bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shufflegrid",
	Short: "Serve a shuffleable landing page card grid",
	Long: `Shufflegrid builds a personal landing page grid from an intro card, recent
feed posts, social links and projects, and lets visitors reorder it by
dragging cards or shuffling the whole grid.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			config.SetConfigFilePath(configPath)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default $XDG_CONFIG_HOME/shufflegrid/config.toml)")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// setup loads the config and builds the logger every command shares
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadGrid fetches the sources and assembles the grid
func loadGrid(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...grid.Option) *grid.Grid {
	client := &http.Client{}
	return bootstrap.Load(ctx, bootstrap.Options{
		Intro:        cfg.IntroCard(),
		Social:       cfg.SocialCards(),
		Feed:         source.Feed{URL: cfg.FeedURL, Client: client},
		Projects:     source.Projects{Location: cfg.Projects, Client: client},
		FetchTimeout: cfg.FetchTimeout,
		Grid:         append([]grid.Option{grid.WithPinnedIntro(cfg.PinIntro)}, opts...),
		Logger:       logger,
	})
}
