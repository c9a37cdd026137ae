// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/llbbl/gitstory/internal/config"
	"github.com/llbbl/gitstory/internal/db"
	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/logging"
	"github.com/llbbl/gitstory/internal/store"
)

// Version is set at build time with -ldflags
var Version = "dev"

// Flag variables
var (
	owner string
)

// cfg is loaded before any command runs.
var cfg *config.Config

// newClient builds the GitHub client used by commands.
var newClient = github.NewDefaultClient

var rootCmd = &cobra.Command{
	Use:   "gitstory",
	Short: "Your year on GitHub, scored and classified",
	Long: `gitstory turns a GitHub user's yearly activity into a story: ranked
repositories, ranked languages, a productivity profile and a coding archetype.
Running gitstory without a subcommand prints the story.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
		logging.SetupLogger(cfg.LogLevel, cfg.LogFormat)
		logger().Debug("configuration loaded",
			"db_path", cfg.DBPath,
			"period_start", cfg.PeriodStart.Format("2006-01-02"),
			"sync_interval", cfg.SyncInterval,
		)
		return nil
	},
	RunE: runStory,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gitstory version %s\n", Version)
	},
}

func init() {
	// Define flags on root command
	rootCmd.PersistentFlags().StringVarP(&owner, "owner", "o", "", "GitHub username to tell the story of")
	addStoryFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(activityCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logger returns the command logger. It is built per call so that it picks
// up the handler installed by PersistentPreRunE.
func logger() *slog.Logger {
	return logging.WithComponent("cmd")
}

// resolveOwner returns --owner or, when unset, the authenticated gh user.
func resolveOwner(client *github.Client) (string, error) {
	if owner != "" {
		return owner, nil
	}

	logger().Debug("no owner specified, getting authenticated user")
	user, err := client.GetAuthenticatedUser()
	if err != nil {
		logger().Error("failed to get authenticated user", "error", err)
		if errors.Is(err, github.ErrNotAuthenticated) {
			return "", fmt.Errorf("failed to get authenticated user: %w\nMake sure you're logged in with 'gh auth login'", err)
		}
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	logger().Debug("using authenticated user", "owner", user)
	return user, nil
}

// openStore opens the configured database, migrates it and wraps it in a Store.
// The caller must close the returned database.
func openStore() (*sql.DB, *store.Store, error) {
	dbPath, err := db.ResolvePath(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("getting database path: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		logger().Error("failed to open database", "path", dbPath, "error", err)
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.RunMigrations(database); err != nil {
		db.Close(database)
		logger().Error("migration failed", "error", err)
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return database, store.New(database), nil
}
