// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scoring ranks repositories and languages and classifies a user's
// coding profile. Every function is pure: results depend only on the
// arguments, including the caller-supplied Period.
package scoring

import "time"

// Config holds every tunable weight used by the scoring functions.
type Config struct {
	Repo     RepoConfig
	Language LanguageConfig
}

// RepoConfig weights the twelve repository scoring factors.
type RepoConfig struct {
	StarsLogMultiplier float64
	StarsMaxPoints     float64
	ForksLogMultiplier float64
	ForksMaxPoints     float64

	RecencyMaxPoints float64
	RecencyDecayDays float64 // days it takes to lose one recency point

	OriginalWorkBonus    float64
	DescriptionBonus     float64
	MinDescriptionLength int // trimmed length must exceed this
	TopicsBonus          float64
	LanguageBonus        float64

	WatchersMultiplier float64
	WatchersMaxPoints  float64

	ArchivedPenalty float64 // negative

	SizeLogMultiplier       float64
	SizeMaxPoints           float64
	OpenIssuesLogMultiplier float64
	OpenIssuesMaxPoints     float64

	CreatedRecentlyBonus float64
}

// LanguageConfig weights language aggregation.
type LanguageConfig struct {
	BaseWeight          float64
	RecentActivityBonus float64
	DiversityThreshold  int
	DiversityBonus      float64 // per repository above DiversityThreshold
}

// DefaultConfig returns the baseline weights.
func DefaultConfig() Config {
	return Config{
		Repo: RepoConfig{
			StarsLogMultiplier:      10,
			StarsMaxPoints:          30,
			ForksLogMultiplier:      5,
			ForksMaxPoints:          15,
			RecencyMaxPoints:        25,
			RecencyDecayDays:        15,
			OriginalWorkBonus:       15,
			DescriptionBonus:        5,
			MinDescriptionLength:    10,
			TopicsBonus:             5,
			LanguageBonus:           3,
			WatchersMultiplier:      0.5,
			WatchersMaxPoints:       5,
			ArchivedPenalty:         -20,
			SizeLogMultiplier:       3,
			SizeMaxPoints:           15,
			OpenIssuesLogMultiplier: 4,
			OpenIssuesMaxPoints:     8,
			CreatedRecentlyBonus:    10,
		},
		Language: LanguageConfig{
			BaseWeight:          1,
			RecentActivityBonus: 1,
			DiversityThreshold:  3,
			DiversityBonus:      0.5,
		},
	}
}

// Period is the recent reference window: from Start through Now.
type Period struct {
	Start time.Time
	Now   time.Time
}

// YearToDate returns the period from January 1st of now's year (UTC) to now.
func YearToDate(now time.Time) Period {
	return Period{
		Start: time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		Now:   now,
	}
}

// Contains reports whether t is on or after the period start.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(p.Start)
}

// daysSince returns the fractional days between t and Now, floored at zero.
func (p Period) daysSince(t time.Time) float64 {
	days := p.Now.Sub(t).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
