// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package scoring

// Archetype is a coding persona label.
type Archetype string

// Archetypes in the order Classify checks them.
const (
	CollaborationMaestro Archetype = "The Collaboration Maestro"
	QualityGuardian      Archetype = "The Quality Guardian"
	MidnightArchitect    Archetype = "The Midnight Architect"
	DawnCoder            Archetype = "The Dawn Coder"
	PassionProgrammer    Archetype = "The Passion Programmer"
	RelentlessBuilder    Archetype = "The Relentless Builder"
	SteadyCraftsman      Archetype = "The Steady Craftsman"
	VisionaryPlanner     Archetype = "The Visionary Planner"
	OpenSourceStar       Archetype = "The Open Source Star"
	CuriousExplorer      Archetype = "The Curious Explorer"
)

// Archetypes lists every label, fallback last.
var Archetypes = []Archetype{
	CollaborationMaestro,
	QualityGuardian,
	MidnightArchitect,
	DawnCoder,
	PassionProgrammer,
	RelentlessBuilder,
	SteadyCraftsman,
	VisionaryPlanner,
	OpenSourceStar,
	CuriousExplorer,
}

// ContributionBreakdown counts a user's contributions by type.
type ContributionBreakdown struct {
	Commits int `json:"commits"`
	PRs     int `json:"prs"`
	Issues  int `json:"issues"`
	Reviews int `json:"reviews"`
}

// Total returns the sum of all contribution types.
func (c ContributionBreakdown) Total() int {
	return c.Commits + c.PRs + c.Issues + c.Reviews
}

// CommunityStats holds a user's social counters.
type CommunityStats struct {
	Followers   int `json:"followers"`
	Following   int `json:"following"`
	TotalStars  int `json:"total_stars"`
	PublicRepos int `json:"public_repos"`
}

// Weekday histogram indexes.
const (
	Sunday   = 0
	Saturday = 6
)

// Classify picks the first archetype whose rule matches. Rules are checked
// in a fixed order and are not weighed against each other.
func Classify(
	breakdown ContributionBreakdown,
	community CommunityStats,
	totalCommits int,
	productivity Profile,
	weekdayCounts [7]int,
) Archetype {
	totalActivity := breakdown.Total()
	prPercentage := percentage(breakdown.PRs, totalActivity)
	reviewPercentage := percentage(breakdown.Reviews, totalActivity)
	issuePercentage := percentage(breakdown.Issues, totalActivity)

	weekTotal := 0
	for _, count := range weekdayCounts {
		weekTotal += count
	}
	weekendPercentage := percentage(weekdayCounts[Sunday]+weekdayCounts[Saturday], weekTotal)

	peak := productivity.PeakHour

	switch {
	case prPercentage > 20:
		return CollaborationMaestro
	case reviewPercentage > 10:
		return QualityGuardian
	case peak >= 22 || peak <= 4:
		return MidnightArchitect
	case peak >= 5 && peak <= 11:
		return DawnCoder
	case weekendPercentage > 35:
		return PassionProgrammer
	case totalCommits >= 1200:
		return RelentlessBuilder
	case totalCommits >= 400:
		return SteadyCraftsman
	case issuePercentage > 15:
		return VisionaryPlanner
	case community.Followers >= 500 || community.TotalStars >= 1000:
		return OpenSourceStar
	default:
		return CuriousExplorer
	}
}

// percentage returns part/whole*100, or 0 when whole is not positive.
func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
