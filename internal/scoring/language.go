// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package scoring

import (
	"sort"

	"github.com/llbbl/gitstory/internal/github"
)

// LanguageScore is the accumulated weight of one primary language.
type LanguageScore struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	RepoCount   int     `json:"repo_count"`
	RecentCount int     `json:"recent_count"`
}

// AggregateLanguages weights each primary language by the repositories using it.
// Forks and repositories without a language are skipped. Languages used by at
// least DiversityThreshold repositories earn DiversityBonus for every
// repository beyond the threshold.
func AggregateLanguages(cfg LanguageConfig, repos []github.Repository, period Period) map[string]LanguageScore {
	scores := make(map[string]LanguageScore)

	for _, repo := range repos {
		if repo.IsFork || repo.PrimaryLanguage == "" {
			continue
		}

		score := scores[repo.PrimaryLanguage]
		score.Name = repo.PrimaryLanguage
		score.RepoCount++
		score.Weight += cfg.BaseWeight

		if period.Contains(repo.PushedAt) {
			score.RecentCount++
			score.Weight += cfg.RecentActivityBonus
		}

		scores[repo.PrimaryLanguage] = score
	}

	for name, score := range scores {
		if score.RepoCount >= cfg.DiversityThreshold {
			extra := score.RepoCount - cfg.DiversityThreshold
			score.Weight += float64(extra) * cfg.DiversityBonus
			scores[name] = score
		}
	}

	return scores
}

// TopLanguages returns at most n languages ordered by weight, highest first.
// Equal weights are ordered by name, not by first appearance among the
// repositories, since scores is a map and keeps no insertion order.
func TopLanguages(scores map[string]LanguageScore, n int) []LanguageScore {
	if n <= 0 {
		return []LanguageScore{}
	}

	ranked := make([]LanguageScore, 0, len(scores))
	for _, score := range scores {
		ranked = append(ranked, score)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
