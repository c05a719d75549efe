package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/serenity-circle/serenity/internal/config"
	"github.com/serenity-circle/serenity/internal/logging"
	"github.com/serenity-circle/serenity/internal/store"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "serenity",
	Short: "Peer mental-wellness community",
	Long: "Serenity matches members to peer support groups with a short questionnaire and\n" +
		"hosts their group chat, mood, habit and emotion trackers and journal.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c

		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(cfg.Log.Level, cfg.Log.Development, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SERENITY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the configured database, falling back to the default
// data directory.
func openStore() (*store.Store, error) {
	path := cfg.DB
	var err error
	if path == "" {
		path, err = store.DefaultDBPath()
	} else {
		err = store.EnsureDir(path)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("database opened", zap.String("path", path))
	return st, nil
}
