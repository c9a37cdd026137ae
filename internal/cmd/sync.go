// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llbbl/gitstory/internal/db"
	reposync "github.com/llbbl/gitstory/internal/sync"
)

var watch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync repositories and community stats from GitHub to the database",
	Long: `Fetch repositories and follower counts from GitHub and store them in the
local database. Repositories that no longer exist upstream are removed.
If --owner is not specified, uses the authenticated GitHub user.
With --watch, keeps syncing every GITSTORY_SYNC_INTERVAL until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		targetOwner, err := resolveOwner(client)
		if err != nil {
			return err
		}

		database, st, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close(database)

		syncer := reposync.New(st, client, targetOwner, cfg.SyncInterval)
		out := cmd.OutOrStdout()

		if !watch {
			fmt.Fprintf(out, "Fetching repositories for %s...\n", targetOwner)
			result := syncer.SyncOnce(cmd.Context())
			if result.Error != nil {
				logger().Error("sync failed", "owner", targetOwner, "error", result.Error)
				return fmt.Errorf("syncing %s: %w", targetOwner, result.Error)
			}
			printSyncResult(cmd, result)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(out, "Watching %s every %s (Ctrl+C to stop)\n", targetOwner, cfg.SyncInterval)
		for msg := range syncer.Start(ctx) {
			switch msg.Type {
			case reposync.SyncStarted:
				fmt.Fprintf(out, "Fetching repositories for %s...\n", targetOwner)
			case reposync.SyncCompleted:
				printSyncResult(cmd, msg.Result)
			case reposync.SyncError:
				fmt.Fprintf(cmd.ErrOrStderr(), "Sync failed: %v\n", msg.Result.Error)
			}
		}
		fmt.Fprintln(out, "Stopped watching")
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep syncing periodically until interrupted")
}

func printSyncResult(cmd *cobra.Command, result reposync.SyncResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "Sync complete: %d repositories, %d followers, %d removed\n",
		len(result.Repos), result.Community.Followers, result.Deleted)
}
