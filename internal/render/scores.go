// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/scoring"
)

// scoreColumns are the breakdown factors in display order.
var scoreColumns = []struct {
	title string
	value func(scoring.Breakdown) float64
}{
	{"STAR", func(b scoring.Breakdown) float64 { return b.Stars }},
	{"FORK", func(b scoring.Breakdown) float64 { return b.Forks }},
	{"RECENT", func(b scoring.Breakdown) float64 { return b.Recency }},
	{"ORIG", func(b scoring.Breakdown) float64 { return b.OriginalWork }},
	{"DESC", func(b scoring.Breakdown) float64 { return b.Description }},
	{"TOPIC", func(b scoring.Breakdown) float64 { return b.Topics }},
	{"LANG", func(b scoring.Breakdown) float64 { return b.Language }},
	{"WATCH", func(b scoring.Breakdown) float64 { return b.Watchers }},
	{"ARCH", func(b scoring.Breakdown) float64 { return b.Archived }},
	{"SIZE", func(b scoring.Breakdown) float64 { return b.Size }},
	{"ISSUE", func(b scoring.Breakdown) float64 { return b.OpenIssues }},
	{"NEW", func(b scoring.Breakdown) float64 { return b.CreatedRecently }},
}

const (
	colWidthFactor = 6
	colWidthPushed = 7
)

// Scores renders every ranked repository with its full breakdown and the
// days between its last push and now.
func Scores(owner string, ranked []scoring.ScoredRepository, now time.Time, styles Styles) string {
	var b strings.Builder

	b.WriteString(styles.Header.Render(
		styles.HeaderTitle.Render("Repository scores: "+owner) +
			styles.HeaderInfo.Render(fmt.Sprintf("  %d repos", len(ranked))),
	))
	b.WriteString("\n")

	if len(ranked) == 0 {
		b.WriteString(styles.Muted.Render("No repositories to display"))
		return b.String()
	}

	header := fmt.Sprintf("%*s %-*s", colWidthRank, "#", colWidthName, "NAME")
	for _, col := range scoreColumns {
		header += fmt.Sprintf(" %*s", colWidthFactor, col.title)
	}
	header += fmt.Sprintf(" %*s %*s", colWidthScore, "TOTAL", colWidthPushed, "PUSHED")
	b.WriteString(styles.TableHeader.Render(header))

	for i, sr := range ranked {
		row := fmt.Sprintf("%*d %-*s", colWidthRank, i+1,
			colWidthName, truncateWithEllipsis(sr.Repository.FullName(), colWidthName))
		for _, col := range scoreColumns {
			row += " " + formatFactor(col.value(sr.Breakdown), styles)
		}
		row += fmt.Sprintf(" %*.1f %*s", colWidthScore, sr.Breakdown.Total, colWidthPushed, pushedAgo(sr.Repository, now))

		b.WriteString("\n")
		b.WriteString(styles.TableRow.Render(row))
	}

	return b.String()
}

// formatFactor pads a factor to its column and colors penalties.
func formatFactor(v float64, styles Styles) string {
	s := fmt.Sprintf("%*.1f", colWidthFactor, v)
	switch {
	case v < 0:
		return styles.Negative.Render(s)
	case v == 0:
		return styles.Muted.Render(s)
	default:
		return s
	}
}

// pushedAgo formats the days since the last push, or "-" when never pushed.
func pushedAgo(repo github.Repository, now time.Time) string {
	if repo.PushedAt.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%dd", repo.DaysSincePush(now))
}
