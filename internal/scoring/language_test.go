// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llbbl/gitstory/internal/github"
	"github.com/llbbl/gitstory/internal/testutil"
)

// oldRepo returns a repository pushed before the test period.
func oldRepo(lang string) github.Repository {
	return testutil.NewTestRepo(
		testutil.WithLanguage(lang),
		testutil.WithPushedAt(testutil.PeriodStart.AddDate(0, -1, 0)),
	)
}

func TestAggregateLanguages_SkipsForksAndMissingLanguage(t *testing.T) {
	cfg := DefaultConfig().Language
	repos := []github.Repository{
		testutil.NewTestRepo(testutil.WithLanguage("Go")),
		testutil.NewTestRepo(testutil.WithLanguage("Rust"), testutil.WithFork(true), testutil.WithStars(9000)),
		testutil.NewTestRepo(testutil.WithLanguage("")),
		testutil.NewTestRepo(testutil.WithLanguage(""), testutil.WithFork(true)),
	}

	scores := AggregateLanguages(cfg, repos, testPeriod())

	require.Len(t, scores, 1)
	assert.Contains(t, scores, "Go")
	assert.NotContains(t, scores, "Rust")
	assert.NotContains(t, scores, "")
}

func TestAggregateLanguages_RecentActivityBonus(t *testing.T) {
	cfg := DefaultConfig().Language
	repos := []github.Repository{
		testutil.NewTestRepo(testutil.WithLanguage("Go")),
		oldRepo("Go"),
		oldRepo("Python"),
	}

	scores := AggregateLanguages(cfg, repos, testPeriod())

	assert.Equal(t, LanguageScore{Name: "Go", Weight: 3, RepoCount: 2, RecentCount: 1}, scores["Go"])
	assert.Equal(t, LanguageScore{Name: "Python", Weight: 1, RepoCount: 1, RecentCount: 0}, scores["Python"])
}

func TestAggregateLanguages_DiversityBonus(t *testing.T) {
	cfg := DefaultConfig().Language

	tests := []struct {
		name       string
		repoCount  int
		wantWeight float64
	}{
		{"below threshold", cfg.DiversityThreshold - 1, float64(cfg.DiversityThreshold - 1)},
		{"at threshold gets no bonus", cfg.DiversityThreshold, float64(cfg.DiversityThreshold)},
		{"one above threshold", cfg.DiversityThreshold + 1, float64(cfg.DiversityThreshold+1) + cfg.DiversityBonus},
		{"two above threshold", cfg.DiversityThreshold + 2, float64(cfg.DiversityThreshold+2) + 2*cfg.DiversityBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := make([]github.Repository, 0, tt.repoCount)
			for i := 0; i < tt.repoCount; i++ {
				repos = append(repos, oldRepo("TypeScript"))
			}

			scores := AggregateLanguages(cfg, repos, testPeriod())

			assert.InDelta(t, tt.wantWeight, scores["TypeScript"].Weight, 1e-9)
			assert.Equal(t, tt.repoCount, scores["TypeScript"].RepoCount)
		})
	}
}

func TestAggregateLanguages_Empty(t *testing.T) {
	scores := AggregateLanguages(DefaultConfig().Language, nil, testPeriod())

	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestAggregateLanguages_OrderIndependent(t *testing.T) {
	cfg := DefaultConfig().Language
	repos := []github.Repository{
		oldRepo("Go"), testutil.NewTestRepo(testutil.WithLanguage("Go")), oldRepo("Go"), oldRepo("Go"),
		oldRepo("C"), testutil.NewTestRepo(testutil.WithLanguage("C")),
	}
	reversed := make([]github.Repository, len(repos))
	for i, repo := range repos {
		reversed[len(repos)-1-i] = repo
	}

	assert.Equal(t,
		AggregateLanguages(cfg, repos, testPeriod()),
		AggregateLanguages(cfg, reversed, testPeriod()),
	)
}

func TestTopLanguages(t *testing.T) {
	scores := map[string]LanguageScore{
		"Go":         {Name: "Go", Weight: 7},
		"Rust":       {Name: "Rust", Weight: 2},
		"Python":     {Name: "Python", Weight: 4.5},
		"TypeScript": {Name: "TypeScript", Weight: 4.5},
		"Shell":      {Name: "Shell", Weight: 1},
	}

	top := TopLanguages(scores, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "Go", top[0].Name)
	assert.Equal(t, "Python", top[1].Name)
	assert.Equal(t, "TypeScript", top[2].Name)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Weight, top[i].Weight)
	}
}

func TestTopLanguages_Bounds(t *testing.T) {
	scores := map[string]LanguageScore{
		"Go":   {Name: "Go", Weight: 1},
		"Rust": {Name: "Rust", Weight: 2},
	}

	assert.Len(t, TopLanguages(scores, 10), 2)
	assert.Empty(t, TopLanguages(scores, 0))
	assert.Empty(t, TopLanguages(scores, -1))
	assert.Empty(t, TopLanguages(nil, 3))
}
