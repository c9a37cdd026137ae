// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package scoring

import (
	"maps"
	"slices"
)

// TimeOfDay labels the part of the day a peak hour falls in.
type TimeOfDay string

// Time-of-day labels.
const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
	LateNight TimeOfDay = "Late Night"
)

// DefaultPeakHour is used when the hour histogram has no activity.
const DefaultPeakHour = 14

// Profile describes when a user commits most.
type Profile struct {
	PeakHour  int       `json:"peak_hour"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
}

// DeriveProductivity finds the busiest hour in an hour-of-day histogram.
// Ties go to the lowest hour. Keys outside 0-23 are ignored.
func DeriveProductivity(hourCounts map[int]int) Profile {
	peakHour := DefaultPeakHour
	maxCount := 0

	for _, hour := range slices.Sorted(maps.Keys(hourCounts)) {
		if hour < 0 || hour > 23 {
			continue
		}
		if count := hourCounts[hour]; count > maxCount {
			maxCount = count
			peakHour = hour
		}
	}

	return Profile{
		PeakHour:  peakHour,
		TimeOfDay: TimeOfDayForHour(peakHour),
	}
}

// TimeOfDayForHour maps an hour to its label.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return LateNight
	}
}
