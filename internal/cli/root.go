package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trading-bot-store-go/internal/config"
	"trading-bot-store-go/internal/database"
	"trading-bot-store-go/internal/logger"
)

var (
	cfgDir string
	dsn    string

	log   *zap.Logger
	store *database.Store
)

var rootCmd = &cobra.Command{
	Use:   "tradestore",
	Short: "Record and query trading bot activity in a local SQLite store",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgDir)
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}

		log, err = logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
		if err != nil {
			return fmt.Errorf("could not build logger: %w", err)
		}

		if dsn == "" {
			dsn = cfg.Database.DSN
		}

		store, err = database.Open(dsn, log)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
		}
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "./configs", "Directory containing config.yml")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Path to the SQLite store (overrides config)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tradesCmd)
	rootCmd.AddCommand(versionCmd)
}

// parseDateFlag accepts an RFC3339 timestamp or a plain date. A plain date
// used as a range end is widened to the end of that day so the range stays
// inclusive.
func parseDateFlag(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want RFC3339 or YYYY-MM-DD)", value)
	}
	if endOfDay {
		ts = ts.Add(24*time.Hour - time.Second)
	}
	return ts.UTC(), nil
}
