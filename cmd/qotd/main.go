package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/stake-plus/qotd/src/actions"
	"github.com/stake-plus/qotd/src/cache"
	"github.com/stake-plus/qotd/src/config"
	"github.com/stake-plus/qotd/src/data"
	"github.com/stake-plus/qotd/src/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	logLevel string
	seedFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "qotd",
	Short:         "Question and poll of the day bot for Discord",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		var err error
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Migrate the schema and run the enabled modules until interrupted",
	RunE:  runBot,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := data.Migrate(db); err != nil {
			return err
		}
		logger.Info("schema migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load curated questions and polls from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := data.LoadSeedFile(seedFile)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := data.Migrate(db); err != nil {
			return err
		}
		res, err := data.Seed(cmd.Context(), db, f)
		if err != nil {
			return err
		}
		logger.Info("seed complete",
			zap.Int("questions_added", res.QuestionsAdded),
			zap.Int("questions_skipped", res.QuestionsSkipped),
			zap.Int("polls_added", res.PollsAdded),
			zap.Int("polls_skipped", res.PollsSkipped),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "curated.yaml", "seed file")
	rootCmd.AddCommand(runCmd, migrateCmd, seedCmd)
}

func openDB() (*gorm.DB, error) {
	dsn, err := data.DSNFromEnv()
	if err != nil {
		return nil, err
	}
	return data.ConnectMySQL(dsn, logger)
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB()
	if err != nil {
		return err
	}
	if err := data.Migrate(db); err != nil {
		return err
	}

	base, err := config.LoadBase(ctx, db)
	if err != nil {
		logger.Warn("settings table unavailable, using environment", zap.Error(err))
	}

	var rdb *redis.Client
	if base.RedisURL != "" {
		rdb, err = cache.NewRedis(ctx, base.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	mgr, err := actions.StartAll(ctx, actions.Runtime{DB: db, Redis: rdb, Log: logger})
	if err != nil {
		return err
	}
	logger.Info("qotd running", zap.Strings("modules", mgr.Names()))

	<-ctx.Done()
	logger.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mgr.Stop(stopCtx)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
