package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/wire"
	"movie-watchlist/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

// rootCmd serves the watch list when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "movie-watchlist",
	Short: "Personal movie watch list",
	Long: `Keep a list of movies to watch, with status, rating and cover art.

Without a subcommand the HTTP server starts, same as 'serve'.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to the env config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps is what every command needs before it can touch the list
type deps struct {
	config *utils.Config
	logger *zap.Logger
	repo   *repository.Repository
	close  func()
}

func bootstrap(ctx context.Context) (*deps, error) {
	// Load config
	config, err := utils.LoadConfigFrom(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	snapshot, closeStore, err := wire.OpenSnapshotStore(ctx, config, logger)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("open %s storage: %w", config.Storage.Driver, err)
	}

	repo := repository.NewRepository(snapshot, logger)
	if err := repo.Movie.Load(ctx); err != nil {
		closeStore()
		logger.Sync()
		return nil, fmt.Errorf("load movies: %w", err)
	}

	return &deps{
		config: config,
		logger: logger,
		repo:   repo,
		close: func() {
			closeStore()
			logger.Sync()
		},
	}, nil
}
