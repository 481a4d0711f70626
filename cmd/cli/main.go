package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rswalker/academy-scheduler/cmd/cli/commands"
	"github.com/rswalker/academy-scheduler/internal/config"
	"github.com/rswalker/academy-scheduler/pkg/directory"
	"github.com/rswalker/academy-scheduler/pkg/memstore"
	"github.com/rswalker/academy-scheduler/pkg/postgres"
	"github.com/rswalker/academy-scheduler/pkg/utils/logging"
)

var (
	cfgPath string
	orgID   string
	local   bool
	verbose bool
	app     *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Academy Scheduler CLI - Manage staff shift schedules",
		Long:  `A CLI tool for creating shifts, resolving board drops, claiming open shifts, and publishing schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (default: search for scheduler_config.yaml)")
	rootCmd.PersistentFlags().StringVar(&orgID, "org", "", "Organization ID (required)")
	rootCmd.PersistentFlags().BoolVar(&local, "local", false, "Use an in-memory store instead of PostgreSQL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("org")

	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.CreateShiftCmd(app))
	rootCmd.AddCommand(commands.DropCmd(app))
	rootCmd.AddCommand(commands.ClaimCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.ListShiftsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, directory, and store
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.OrgID = orgID

	app.Logger, err = logging.InitLogger("scheduler", verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	if cfgPath != "" {
		app.Cfg, err = config.LoadFromPath(cfgPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Loading directory", zap.String("path", app.Cfg.DirectoryFile))
	app.Directory, err = directory.LoadFromPath(app.Cfg.DirectoryFile)
	if err != nil {
		return fmt.Errorf("failed to load directory: %w", err)
	}

	if _, err := app.Directory.Organization(orgID); err != nil {
		return fmt.Errorf("unknown organization %s: %w", orgID, err)
	}

	if local || app.Cfg.DatabaseURL == "" {
		app.Logger.Info("Using in-memory store")
		app.Store = memstore.NewStore()
		return nil
	}

	app.Logger.Debug("Connecting to database")
	db, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Store = db
	app.Logger.Info("Database initialized successfully")

	return nil
}
