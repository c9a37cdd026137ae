// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package story

// StreakTier ranks the longest daily contribution streak.
type StreakTier string

const (
	Legendary StreakTier = "Legendary"
	Epic      StreakTier = "Epic"
	Rare      StreakTier = "Rare"
	Uncommon  StreakTier = "Uncommon"
	Common    StreakTier = "Common"
)

// tierFloors lists each tier with the fewest days it needs, highest first.
var tierFloors = []struct {
	days int
	tier StreakTier
}{
	{100, Legendary},
	{50, Epic},
	{30, Rare},
	{14, Uncommon},
}

// Streak summarizes daily contribution streaks.
type Streak struct {
	Longest int        `json:"longest"`
	Current int        `json:"current"`
	Tier    StreakTier `json:"tier"`
}

// TierFor returns the tier earned by a streak of days.
func TierFor(days int) StreakTier {
	for _, f := range tierFloors {
		if days >= f.days {
			return f.tier
		}
	}
	return Common
}

func newStreak(longest, current int) Streak {
	return Streak{Longest: longest, Current: current, Tier: TierFor(longest)}
}
