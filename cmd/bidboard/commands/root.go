package commands

import (
	"bidboard/internal/board"
	"bidboard/internal/cache"
	"bidboard/internal/config"
	"bidboard/internal/feed"
	"bidboard/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	boardClient board.Client
	feedStore   feed.Store
	cacheStore  *cache.Store
)

var rootCmd = &cobra.Command{
	Use:   "bidboard",
	Short: "Bidboard computes dashboard analytics over synced board work items",
	Long: `Bidboard aggregates the activity feeds behind the work-item dashboard
(analyses, proposal reviews, FOIA requests, chat sessions, board audit logs)
into cached time series, lifecycle breakdowns, and rankings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		boardClient = board.NewClient(cfg.Board)
		feedStore = feed.NewStore(cfg.Feed)

		cacheStore, err = cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Bidboard starting")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cacheStore != nil {
			_ = cacheStore.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(clearCacheCmd)
}
