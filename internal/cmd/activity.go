// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llbbl/gitstory/internal/activity"
)

var (
	scanAuthors []string
	scanSince   string
	scanOutput  string
)

var activityCmd = &cobra.Command{
	Use:   "activity <repo-path>...",
	Short: "Build an activity file from local git clones",
	Long: `Walk the history of each local clone and count commits by hour of day
and day of week, in the author's own time zone. The result is the activity
JSON read by 'gitstory story --activity'. Only commits are counted, so pull
request, issue and review counts stay zero.

Commits are counted from --since (default: GITSTORY_PERIOD_START) and can be
limited to the given --author emails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		since := cfg.PeriodStart
		if scanSince != "" {
			parsed, err := time.Parse("2006-01-02", scanSince)
			if err != nil {
				return fmt.Errorf("invalid --since %q: must be YYYY-MM-DD", scanSince)
			}
			since = parsed
		}

		act, err := activity.Scan(cmd.Context(), args, activity.ScanOptions{
			Login:   owner,
			Authors: scanAuthors,
			Since:   since,
		})
		if err != nil {
			return err
		}
		logger().Debug("activity scanned", "repos", len(args), "commits", act.TotalCommits)

		if scanOutput == "" {
			return act.Write(cmd.OutOrStdout())
		}
		if err := act.Save(scanOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Counted %d commits across %d repositories: %s\n",
			act.TotalCommits, len(args), scanOutput)
		return nil
	},
}

func init() {
	activityCmd.Flags().StringSliceVar(&scanAuthors, "author", nil, "Only count commits by these author emails (repeatable)")
	activityCmd.Flags().StringVar(&scanSince, "since", "", "Count commits from this date, YYYY-MM-DD")
	activityCmd.Flags().StringVarP(&scanOutput, "output", "O", "", "Write the activity file here instead of stdout")
}
