// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llbbl/gitstory/internal/story"
)

// Column widths for the top repository table.
const (
	colWidthRank  = 3
	colWidthName  = 32
	colWidthStars = 7
	colWidthLang  = 12
	colWidthScore = 7
)

// weightBarWidth is the width of the longest language bar.
const weightBarWidth = 20

// Story renders a complete story.
func Story(s story.Story, styles Styles) string {
	sections := []string{
		renderHeader(s, styles),
		styles.Section.Render("Top repositories"),
		renderTopRepos(s.TopRepos, styles),
		styles.Section.Render("Languages"),
		renderLanguages(s, styles),
		styles.Section.Render("Rhythm"),
		renderRhythm(s, styles),
		renderArchetype(s, styles),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(s story.Story, styles Styles) string {
	title := styles.HeaderTitle.Render(fmt.Sprintf("gitstory: %s", s.Login))
	info := styles.HeaderInfo.Render(fmt.Sprintf("  since %s", s.PeriodStart.Format("2006-01-02")))
	return styles.Header.Render(title + info)
}

func renderTopRepos(entries []story.RepoEntry, styles Styles) string {
	if len(entries) == 0 {
		return styles.Muted.Render("No repositories to display")
	}

	var b strings.Builder
	b.WriteString(styles.TableHeader.Render(fmt.Sprintf("%*s %-*s %*s %-*s %*s",
		colWidthRank, "#",
		colWidthName, "NAME",
		colWidthStars, "STARS",
		colWidthLang, "LANG",
		colWidthScore, "SCORE",
	)))

	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(styles.TableRow.Render(fmt.Sprintf("%*d %-*s %*d %-*s %*.1f",
			colWidthRank, e.Rank,
			colWidthName, truncateWithEllipsis(e.FullName, colWidthName),
			colWidthStars, e.Stars,
			colWidthLang, truncateWithEllipsis(e.Language, colWidthLang),
			colWidthScore, e.Score.Total,
		)))
	}

	return b.String()
}

func renderLanguages(s story.Story, styles Styles) string {
	if len(s.TopLanguages) == 0 {
		return styles.Muted.Render("No languages detected")
	}

	maxWeight := s.TopLanguages[0].Weight
	lines := make([]string, 0, len(s.TopLanguages))
	for i, l := range s.TopLanguages {
		bar := ""
		if maxWeight > 0 {
			bar = strings.Repeat("█", max(1, int(l.Weight/maxWeight*weightBarWidth)))
		}
		lines = append(lines, fmt.Sprintf(" %d. %-*s %s %s",
			i+1,
			colWidthLang, truncateWithEllipsis(l.Name, colWidthLang),
			styles.Stars.Render(bar),
			styles.Muted.Render(fmt.Sprintf("%.1f (%d repos, %d recent)", l.Weight, l.RepoCount, l.RecentCount)),
		))
	}
	return strings.Join(lines, "\n")
}

func renderRhythm(s story.Story, styles Styles) string {
	c := s.Contributions
	lines := []string{
		fmt.Sprintf(" Peak hour   %02d:00 (%s)", s.Productivity.PeakHour, s.Productivity.TimeOfDay),
		fmt.Sprintf(" Commits     %d", s.TotalCommits),
		fmt.Sprintf(" Activity    %d commits, %d PRs, %d issues, %d reviews", c.Commits, c.PRs, c.Issues, c.Reviews),
		fmt.Sprintf(" Streak      %d days longest (%s), %d current", s.Streak.Longest, s.Streak.Tier, s.Streak.Current),
		fmt.Sprintf(" Community   %d followers, %s across %d public repos",
			s.Community.Followers,
			styles.Stars.Render(fmt.Sprintf("%d stars", s.Community.TotalStars)),
			s.Community.PublicRepos,
		),
		styles.Muted.Render(fmt.Sprintf(" Scores      mean %.1f, median %.1f, max %.1f over %d repos",
			s.Summary.Mean, s.Summary.Median, s.Summary.Max, s.Summary.Repos)),
	}
	return strings.Join(lines, "\n")
}

func renderArchetype(s story.Story, styles Styles) string {
	traits := make([]string, 0, len(s.Archetype.Traits))
	for _, t := range s.Archetype.Traits {
		traits = append(traits, styles.Trait.Render(t))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitle.Render(string(s.Archetype.Name)),
		styles.CardTagline.Render(s.Archetype.Tagline),
		"",
		strings.Join(traits, " · "),
	)
	return styles.Card.Render(content)
}

// truncateWithEllipsis truncates a string to max runes, adding an ellipsis
// if truncation occurs.
func truncateWithEllipsis(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
