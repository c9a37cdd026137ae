// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llbbl/gitstory/internal/db"
	"github.com/llbbl/gitstory/internal/export"
	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/render"
	"github.com/llbbl/gitstory/internal/scoring"
	"github.com/llbbl/gitstory/internal/store"
	"github.com/llbbl/gitstory/internal/story"
)

var scoreCmd = &cobra.Command{
	Use:   "score [repo-name]...",
	Short: "Print every repository's score breakdown",
	Long: `Score every repository owned by the user and print the full breakdown,
highest total first. Collaborator and organization repositories are skipped.
Name repositories to score only those.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if offline && owner == "" {
			return errOwnerRequired
		}

		client := newClient()
		login, err := resolveOwner(client)
		if err != nil {
			return err
		}

		database, st, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close(database)

		repos, _, err := loadCached(cmd.Context(), st, client, login)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if repos, err = namedRepos(st, login, args); err != nil {
				return err
			}
		}

		period := currentPeriod()
		ranked := scoring.RankRepositories(scoring.DefaultConfig().Repo, story.OwnedRepos(login, repos), period)

		if exportPath != "" {
			filename, err := export.Scores(login, ranked, exportTarget())
			if err != nil {
				return fmt.Errorf("exporting scores: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported scores to %s\n", filename)
		}

		if jsonOutput {
			return writeJSON(cmd, export.NewScoresExport(login, ranked))
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Scores(login, ranked, period.Now, render.DefaultStyles()))
		return nil
	},
}

func init() {
	addOutputFlags(scoreCmd)
}

// namedRepos reads the named repositories of login from the cache.
func namedRepos(st *store.Store, login string, names []string) ([]github.Repository, error) {
	repos := make([]github.Repository, 0, len(names))
	for _, name := range names {
		repo, err := st.GetRepository(login, name)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("repository %s/%s is not cached; run 'gitstory sync' first", login, name)
		}
		if err != nil {
			return nil, err
		}
		repos = append(repos, *repo)
	}
	return repos, nil
}
