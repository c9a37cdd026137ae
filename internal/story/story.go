// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package story composes repository scores, language rankings, the
// productivity profile and the archetype into a single yearly summary.
package story

import (
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/llbbl/gitstory/internal/activity"
	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/scoring"
)

// Defaults for the number of entries kept in each ranking.
const (
	DefaultTopRepos     = 5
	DefaultTopLanguages = 3
)

// Options controls how many ranked entries a story keeps.
type Options struct {
	TopRepos     int
	TopLanguages int
}

// Input is everything a story is built from.
type Input struct {
	Login     string
	Repos     []github.Repository
	Community github.Community
	Activity  activity.Activity
	Period    scoring.Period
}

// RepoEntry is a ranked repository as shown in a story.
type RepoEntry struct {
	Rank        int               `json:"rank"`
	FullName    string            `json:"full_name"`
	Description string            `json:"description,omitempty"`
	Language    string            `json:"language,omitempty"`
	Stars       int               `json:"stars"`
	Forks       int               `json:"forks"`
	Score       scoring.Breakdown `json:"score"`
}

// ArchetypeEntry is the classified archetype with its persona text.
type ArchetypeEntry struct {
	Name scoring.Archetype `json:"name"`
	Persona
}

// Summary describes the distribution of repository totals.
type Summary struct {
	Repos  int     `json:"repos"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Story is the full yearly summary for one user.
type Story struct {
	Login         string                        `json:"login"`
	PeriodStart   time.Time                     `json:"period_start"`
	GeneratedAt   time.Time                     `json:"generated_at"`
	TopRepos      []RepoEntry                   `json:"top_repos"`
	TopLanguages  []scoring.LanguageScore       `json:"top_languages"`
	Productivity  scoring.Profile               `json:"productivity"`
	Archetype     ArchetypeEntry                `json:"archetype"`
	Contributions scoring.ContributionBreakdown `json:"contributions"`
	TotalCommits  int                           `json:"total_commits"`
	Streak        Streak                        `json:"streak"`
	Community     scoring.CommunityStats        `json:"community"`
	Summary       Summary                       `json:"summary"`
}

// Build scores and classifies the input. Only repositories owned by the
// login take part; collaborator and organization repositories are skipped.
func Build(cfg scoring.Config, in Input, opts Options) Story {
	owned := OwnedRepos(in.Login, in.Repos)

	ranked := scoring.RankRepositories(cfg.Repo, owned, in.Period)
	languages := scoring.AggregateLanguages(cfg.Language, owned, in.Period)
	profile := in.Activity.Productivity()
	community := communityStats(in.Community, owned)

	archetype := scoring.Classify(
		in.Activity.Breakdown,
		community,
		in.Activity.TotalCommits,
		profile,
		in.Activity.WeekdayCounts,
	)

	return Story{
		Login:         in.Login,
		PeriodStart:   in.Period.Start,
		GeneratedAt:   in.Period.Now,
		TopRepos:      topRepos(ranked, opts.TopRepos),
		TopLanguages:  scoring.TopLanguages(languages, opts.TopLanguages),
		Productivity:  profile,
		Archetype:     ArchetypeEntry{Name: archetype, Persona: PersonaFor(archetype)},
		Contributions: in.Activity.Breakdown,
		TotalCommits:  in.Activity.TotalCommits,
		Streak:        newStreak(in.Activity.LongestStreak, in.Activity.CurrentStreak),
		Community:     community,
		Summary:       summarize(ranked),
	}
}

// OwnedRepos keeps repositories whose owner matches login, case-insensitively.
// An empty login keeps everything.
func OwnedRepos(login string, repos []github.Repository) []github.Repository {
	if login == "" {
		return repos
	}
	owned := make([]github.Repository, 0, len(repos))
	for _, r := range repos {
		if strings.EqualFold(r.Owner, login) {
			owned = append(owned, r)
		}
	}
	return owned
}

// communityStats converts the profile counters and sums stars across repos.
func communityStats(c github.Community, repos []github.Repository) scoring.CommunityStats {
	stars := 0
	for _, r := range repos {
		stars += r.StargazerCount
	}
	publicRepos := c.PublicRepos
	if publicRepos == 0 {
		for _, r := range repos {
			if !r.IsPrivate {
				publicRepos++
			}
		}
	}
	return scoring.CommunityStats{
		Followers:   c.Followers,
		Following:   c.Following,
		TotalStars:  stars,
		PublicRepos: publicRepos,
	}
}

func topRepos(ranked []scoring.ScoredRepository, n int) []RepoEntry {
	if n <= 0 {
		return []RepoEntry{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	entries := make([]RepoEntry, 0, n)
	for i, sr := range ranked[:n] {
		entries = append(entries, RepoEntry{
			Rank:        i + 1,
			FullName:    sr.Repository.FullName(),
			Description: sr.Repository.Description,
			Language:    sr.Repository.PrimaryLanguage,
			Stars:       sr.Repository.StargazerCount,
			Forks:       sr.Repository.ForkCount,
			Score:       sr.Breakdown,
		})
	}
	return entries
}

// summarize reports the distribution of totals; an empty ranking yields zeros.
func summarize(ranked []scoring.ScoredRepository) Summary {
	if len(ranked) == 0 {
		return Summary{}
	}

	totals := make(stats.Float64Data, 0, len(ranked))
	for _, sr := range ranked {
		totals = append(totals, sr.Breakdown.Total)
	}

	// Errors only occur on empty input, which is handled above.
	mean, _ := stats.Mean(totals)
	median, _ := stats.Median(totals)
	maxTotal, _ := stats.Max(totals)

	return Summary{
		Repos:  len(ranked),
		Mean:   round2(mean),
		Median: round2(median),
		Max:    round2(maxTotal),
	}
}

func round2(v float64) float64 {
	r, _ := stats.Round(v, 2)
	return r
}
