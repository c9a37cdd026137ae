// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package scoring

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/llbbl/gitstory/internal/github"
)

// Breakdown is a repository score split into its named factors.
// Total is always the sum of the other twelve fields.
type Breakdown struct {
	Stars           float64 `json:"stars"`
	Forks           float64 `json:"forks"`
	Recency         float64 `json:"recency"`
	OriginalWork    float64 `json:"original_work"`
	Description     float64 `json:"description"`
	Topics          float64 `json:"topics"`
	Language        float64 `json:"language"`
	Watchers        float64 `json:"watchers"`
	Archived        float64 `json:"archived"`
	Size            float64 `json:"size"`
	OpenIssues      float64 `json:"open_issues"`
	CreatedRecently float64 `json:"created_recently"`
	Total           float64 `json:"total"`
}

// Sum adds up the twelve factors.
func (b Breakdown) Sum() float64 {
	return b.Stars + b.Forks + b.Recency + b.OriginalWork + b.Description +
		b.Topics + b.Language + b.Watchers + b.Archived + b.Size +
		b.OpenIssues + b.CreatedRecently
}

// ScoredRepository pairs a repository with its score breakdown.
type ScoredRepository struct {
	Repository github.Repository `json:"-"`
	Breakdown  Breakdown         `json:"breakdown"`
}

// ScoreRepository computes the score breakdown for a single repository.
// Missing optional fields contribute zero.
func ScoreRepository(cfg RepoConfig, repo github.Repository, period Period) Breakdown {
	var b Breakdown

	b.Stars = logCapped(repo.StargazerCount+1, cfg.StarsLogMultiplier, cfg.StarsMaxPoints)
	b.Forks = logCapped(repo.ForkCount+1, cfg.ForksLogMultiplier, cfg.ForksMaxPoints)

	if period.Contains(repo.PushedAt) {
		b.Recency = recency(cfg, period.daysSince(repo.PushedAt))
	}

	if !repo.IsFork {
		b.OriginalWork = cfg.OriginalWorkBonus
	}

	if utf8.RuneCountInString(strings.TrimSpace(repo.Description)) > cfg.MinDescriptionLength {
		b.Description = cfg.DescriptionBonus
	}

	if len(repo.Topics) > 0 {
		b.Topics = cfg.TopicsBonus
	}

	if repo.PrimaryLanguage != "" {
		b.Language = cfg.LanguageBonus
	}

	b.Watchers = math.Min(float64(repo.WatcherCount)*cfg.WatchersMultiplier, cfg.WatchersMaxPoints)

	if repo.IsArchived {
		b.Archived = cfg.ArchivedPenalty
	}

	// Size has no +1 offset, so zero must be skipped explicitly.
	if repo.DiskUsage > 0 {
		b.Size = logCapped(repo.DiskUsage, cfg.SizeLogMultiplier, cfg.SizeMaxPoints)
	}

	if repo.OpenIssueCount > 0 {
		b.OpenIssues = logCapped(repo.OpenIssueCount+1, cfg.OpenIssuesLogMultiplier, cfg.OpenIssuesMaxPoints)
	}

	if period.Contains(repo.CreatedAt) {
		b.CreatedRecently = cfg.CreatedRecentlyBonus
	}

	b.Total = b.Sum()
	return b
}

// RankRepositories scores every repository and orders them by total,
// highest first. Equal totals keep their input order.
func RankRepositories(cfg RepoConfig, repos []github.Repository, period Period) []ScoredRepository {
	scored := make([]ScoredRepository, 0, len(repos))
	for _, repo := range repos {
		scored = append(scored, ScoredRepository{
			Repository: repo,
			Breakdown:  ScoreRepository(cfg, repo, period),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Breakdown.Total > scored[j].Breakdown.Total
	})

	return scored
}

// logCapped returns min(log10(n) * multiplier, maxPoints) for n >= 1 and 0 otherwise.
func logCapped(n int, multiplier, maxPoints float64) float64 {
	if n < 1 {
		return 0
	}
	return math.Min(math.Log10(float64(n))*multiplier, maxPoints)
}

// recency decays linearly from RecencyMaxPoints, never going below zero.
func recency(cfg RepoConfig, daysSincePush float64) float64 {
	if cfg.RecencyDecayDays <= 0 {
		return math.Max(0, cfg.RecencyMaxPoints)
	}
	return math.Max(0, cfg.RecencyMaxPoints-daysSincePush/cfg.RecencyDecayDays)
}
