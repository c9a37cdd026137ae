// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llbbl/gitstory/internal/activity"
	"github.com/llbbl/gitstory/internal/db"
	"github.com/llbbl/gitstory/internal/export"
	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/render"
	"github.com/llbbl/gitstory/internal/scoring"
	"github.com/llbbl/gitstory/internal/store"
	"github.com/llbbl/gitstory/internal/story"
	reposync "github.com/llbbl/gitstory/internal/sync"
)

// exportTimestamped is the --export value meaning "pick a timestamped file name".
const exportTimestamped = "auto"

// errOwnerRequired is returned when no owner can be determined offline.
var errOwnerRequired = errors.New("--owner is required with --offline unless the activity file names a login")

// Flag variables shared by story and score
var (
	activityPath string
	exportPath   string
	jsonOutput   bool
	offline      bool
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Print the yearly story for a user",
	Long: `Score the user's repositories, rank their languages and classify their
coding archetype. Repositories come from the local cache, which is refreshed
from GitHub first when it is older than GITSTORY_SYNC_INTERVAL. Contribution
activity (hour and weekday histograms, contribution counts) is read from
the file given with --activity.`,
	RunE: runStory,
}

func init() {
	addStoryFlags(storyCmd)
}

// addStoryFlags registers the story flags on a command.
func addStoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&activityPath, "activity", "a", "", "Path to a pre-aggregated activity JSON file")
	addOutputFlags(cmd)
}

// addOutputFlags registers the flags shared by every reporting command.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&exportPath, "export", "", "Write JSON to this path (bare --export picks a timestamped name)")
	cmd.Flags().Lookup("export").NoOptDefVal = exportTimestamped
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of formatted output")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use cached data only; never call GitHub")
}

func runStory(cmd *cobra.Command, args []string) error {
	act, err := loadActivity()
	if err != nil {
		return err
	}

	client := newClient()
	login, err := storyOwner(client, act)
	if err != nil {
		return err
	}

	database, st, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close(database)

	repos, community, err := loadCached(cmd.Context(), st, client, login)
	if err != nil {
		return err
	}

	s := story.Build(scoring.DefaultConfig(), story.Input{
		Login:     login,
		Repos:     repos,
		Community: community,
		Activity:  act,
		Period:    currentPeriod(),
	}, story.Options{
		TopRepos:     cfg.TopRepos,
		TopLanguages: cfg.TopLanguages,
	})
	logger().Debug("story built",
		"owner", login,
		"repos", s.Summary.Repos,
		"archetype", s.Archetype.Name,
	)

	if exportPath != "" {
		filename, err := export.Story(s, exportTarget())
		if err != nil {
			return fmt.Errorf("exporting story: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported story to %s\n", filename)
	}

	if jsonOutput {
		return writeJSON(cmd, s)
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Story(s, render.DefaultStyles()))
	return nil
}

// loadActivity reads --activity, or returns empty activity when unset.
func loadActivity() (activity.Activity, error) {
	if activityPath == "" {
		logger().Info("no activity file given; productivity and archetype use defaults")
		return activity.Activity{}, nil
	}
	act, err := activity.Load(activityPath)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("loading activity: %w", err)
	}
	return act, nil
}

// storyOwner picks the login: --owner, then the activity file when offline,
// then the authenticated gh user.
func storyOwner(client *github.Client, act activity.Activity) (string, error) {
	if owner != "" {
		return owner, nil
	}
	if offline {
		if act.Login != "" {
			return act.Login, nil
		}
		return "", errOwnerRequired
	}
	return resolveOwner(client)
}

// loadCached refreshes a stale cache unless --offline is set, then reads the
// owner's repositories and community stats from the store. A failed refresh
// falls back to cached data when there is any.
func loadCached(ctx context.Context, st *store.Store, client *github.Client, login string) ([]github.Repository, github.Community, error) {
	if !offline {
		syncer := reposync.New(st, client, login, cfg.SyncInterval)
		if result, synced := syncer.SyncIfStale(ctx); synced && result.Error != nil {
			cached, err := st.GetRepositories(login)
			if err != nil || len(cached) == 0 {
				return nil, github.Community{}, fmt.Errorf("syncing %s: %w", login, result.Error)
			}
			logger().Warn("sync failed, using cached data", "owner", login, "error", result.Error)
		}
	}

	repos, err := st.GetRepositories(login)
	if err != nil {
		return nil, github.Community{}, fmt.Errorf("loading repositories: %w", err)
	}

	community, err := st.GetCommunity(login)
	if errors.Is(err, store.ErrNotFound) {
		logger().Debug("no cached community stats", "owner", login)
		community = github.Community{Login: login}
	} else if err != nil {
		return nil, github.Community{}, fmt.Errorf("loading community: %w", err)
	}

	return repos, community, nil
}

// currentPeriod is the recent window from the configured start until now.
func currentPeriod() scoring.Period {
	return scoring.Period{Start: cfg.PeriodStart, Now: time.Now().UTC()}
}

// exportTarget maps --export to a path, empty meaning timestamped.
func exportTarget() string {
	if exportPath == exportTimestamped {
		return ""
	}
	return exportPath
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
