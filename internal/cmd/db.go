// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llbbl/gitstory/internal/db"
	"github.com/llbbl/gitstory/internal/store"
)

var (
	forceReset bool
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
	Long: `Commands for managing the gitstory SQLite cache.
The location comes from GITSTORY_DB_PATH, defaulting to ~/.gitstory/gitstory.db.`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(dbPath string, database *sql.DB) error {
			versionBefore, _ := db.GetMigrationVersion(database)

			if err := db.RunMigrations(database); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			versionAfter, err := db.GetMigrationVersion(database)
			if err != nil {
				return fmt.Errorf("getting migration version: %w", err)
			}

			out := cmd.OutOrStdout()
			if versionBefore == versionAfter {
				fmt.Fprintf(out, "Database is already at version %d (no migrations needed)\n", versionAfter)
			} else {
				fmt.Fprintf(out, "Migrations complete: version %d -> %d\n", versionBefore, versionAfter)
			}
			return nil
		})
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database status and statistics",
	Long:  `Display database location, migration version, cached repositories and last sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := db.ResolvePath(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("getting database path: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database path: %s\n", dbPath)

		if !databaseExists(dbPath) {
			fmt.Fprintln(out, "Status: Database does not exist (run 'gitstory db migrate' to create)")
			return nil
		}

		return withDatabase(func(_ string, database *sql.DB) error {
			st := store.New(database)

			printStat(out, "Migration version", func() (any, error) { return db.GetMigrationVersion(database) })
			printStat(out, "Repository count", func() (any, error) { return st.CountRepositories() })
			printStat(out, "Last sync", func() (any, error) { return lastSyncLabel(database) })
			return nil
		})
	},
}

var dbPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print database file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := db.ResolvePath(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("getting database path: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), dbPath)
		return nil
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset database (destructive)",
	Long: `Delete the database file and recreate it with fresh migrations.
All cached repositories and community stats are lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := db.ResolvePath(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("getting database path: %w", err)
		}
		out := cmd.OutOrStdout()

		if !databaseExists(dbPath) {
			fmt.Fprintln(out, "Database does not exist, creating fresh database...")
		} else {
			if !forceReset && !confirm(cmd, fmt.Sprintf("WARNING: This will delete all data in %s\nType 'yes' to confirm: ", dbPath)) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("deleting database: %w", err)
			}
			fmt.Fprintf(out, "Deleted: %s\n", dbPath)
		}

		return withDatabase(func(_ string, database *sql.DB) error {
			if err := db.RunMigrations(database); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			version, err := db.GetMigrationVersion(database)
			if err != nil {
				return fmt.Errorf("getting migration version: %w", err)
			}
			fmt.Fprintf(out, "Created fresh database at version %d\n", version)
			return nil
		})
	},
}

func init() {
	dbResetCmd.Flags().BoolVar(&forceReset, "force", false, "Skip confirmation prompt")

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbPathCmd)
	dbCmd.AddCommand(dbResetCmd)
}

// withDatabase opens the configured database without migrating it and
// closes it once fn returns.
func withDatabase(fn func(dbPath string, database *sql.DB) error) error {
	dbPath, err := db.ResolvePath(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("getting database path: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close(database)

	return fn(dbPath, database)
}

// databaseExists reports whether a database file is present. The in-memory
// database always counts as missing.
func databaseExists(dbPath string) bool {
	if dbPath == db.MemoryPath {
		return false
	}
	_, err := os.Stat(dbPath)
	return err == nil
}

// confirm prints prompt and reports whether the user typed "yes".
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}

// printStat prints one status line, reporting lookup errors inline.
func printStat(out io.Writer, label string, lookup func() (any, error)) {
	value, err := lookup()
	if err != nil {
		fmt.Fprintf(out, "%s: unknown (error: %v)\n", label, err)
		return
	}
	fmt.Fprintf(out, "%s: %v\n", label, value)
}

// lastSyncLabel returns the most recent synced_at across all owners, or "never".
func lastSyncLabel(database *sql.DB) (string, error) {
	var lastSync sql.NullString
	if err := database.QueryRow("SELECT MAX(synced_at) FROM repositories").Scan(&lastSync); err != nil {
		return "", err
	}
	if !lastSync.Valid || lastSync.String == "" {
		return "never", nil
	}
	return lastSync.String, nil
}
