// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package activity

import (
	"slices"
	"time"
)

// day truncates t to its calendar date in t's own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streaks returns the longest run of consecutive active days and the run
// ending on today's date. A today without activity has a current streak of 0.
// Active days are compared by calendar date in each time's own location.
func Streaks(active []time.Time, today time.Time) (longest, current int) {
	set := make(map[time.Time]bool, len(active))
	for _, t := range active {
		set[day(t)] = true
	}
	if len(set) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	for d := day(today); set[d]; d = d.AddDate(0, 0, -1) {
		current++
	}
	return longest, current
}
