// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package activity loads pre-aggregated contribution activity for a user,
// or builds it from local git clones.
//
// The file comes from an upstream fetcher or from Scan and holds the contribution
// breakdown, the yearly commit total, the hour and weekday histograms and the
// daily contribution streaks:
//
//	{
//	  "login": "octocat",
//	  "breakdown": {"commits": 812, "prs": 40, "issues": 12, "reviews": 9},
//	  "total_commits": 812,
//	  "hour_counts": {"9": 31, "14": 77},
//	  "weekday_counts": [3, 120, 140, 133, 128, 101, 7],
//	  "longest_streak": 21,
//	  "current_streak": 4
//	}
//
// When total_commits is absent it defaults to breakdown.commits. An explicit
// 0 is kept.
package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/llbbl/gitstory/internal/scoring"
)

// ErrInvalid is returned when an activity file holds impossible values.
var ErrInvalid = errors.New("invalid activity data")

// Activity is the pre-aggregated contribution data for one user.
type Activity struct {
	Login         string                        `json:"login,omitempty"`
	Breakdown     scoring.ContributionBreakdown `json:"breakdown"`
	TotalCommits  int                           `json:"total_commits"`
	HourCounts    map[int]int                   `json:"hour_counts"`
	WeekdayCounts [7]int                        `json:"weekday_counts"`
	LongestStreak int                           `json:"longest_streak"`
	CurrentStreak int                           `json:"current_streak"`
}

// Load reads and validates an activity file.
func Load(path string) (Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return Activity{}, fmt.Errorf("opening activity file: %w", err)
	}
	defer f.Close()

	a, err := Parse(f)
	if err != nil {
		return Activity{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return a, nil
}

// Parse decodes and validates activity JSON.
// A missing total_commits falls back to the commit count of the breakdown.
func Parse(r io.Reader) (Activity, error) {
	type file Activity
	var a Activity
	doc := struct {
		*file
		TotalCommits *int `json:"total_commits"`
	}{file: (*file)(&a)}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Activity{}, fmt.Errorf("decoding activity: %w", err)
	}

	a.TotalCommits = a.Breakdown.Commits
	if doc.TotalCommits != nil {
		a.TotalCommits = *doc.TotalCommits
	}

	if err := a.validate(); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (a Activity) validate() error {
	b := a.Breakdown
	if b.Commits < 0 || b.PRs < 0 || b.Issues < 0 || b.Reviews < 0 {
		return fmt.Errorf("%w: negative contribution count", ErrInvalid)
	}
	if a.TotalCommits < 0 {
		return fmt.Errorf("%w: negative total_commits", ErrInvalid)
	}
	if a.LongestStreak < 0 || a.CurrentStreak < 0 {
		return fmt.Errorf("%w: negative streak", ErrInvalid)
	}
	for hour, count := range a.HourCounts {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("%w: hour %d out of range", ErrInvalid, hour)
		}
		if count < 0 {
			return fmt.Errorf("%w: negative count for hour %d", ErrInvalid, hour)
		}
	}
	for day, count := range a.WeekdayCounts {
		if count < 0 {
			return fmt.Errorf("%w: negative count for weekday %d", ErrInvalid, day)
		}
	}
	return nil
}

// Productivity derives the productivity profile from the hour histogram.
func (a Activity) Productivity() scoring.Profile {
	return scoring.DeriveProductivity(a.HourCounts)
}
