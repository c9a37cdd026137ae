// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

package story

import "github.com/llbbl/gitstory/internal/scoring"

// Persona is the display text attached to an archetype.
type Persona struct {
	Tagline string   `json:"tagline"`
	Traits  []string `json:"traits"`
}

var personas = map[scoring.Archetype]Persona{
	scoring.CollaborationMaestro: {"Building bridges through pull requests", []string{"Collaborative", "Communicative", "Team Player"}},
	scoring.QualityGuardian:      {"Protecting codebases, one review at a time", []string{"Meticulous", "Thorough", "Reliable"}},
	scoring.MidnightArchitect:    {"When the world sleeps, you create", []string{"Focused", "Independent", "Creative"}},
	scoring.DawnCoder:            {"First light, first commit", []string{"Disciplined", "Productive", "Organized"}},
	scoring.PassionProgrammer:    {"Weekends are for side quests", []string{"Passionate", "Dedicated", "Driven"}},
	scoring.RelentlessBuilder:    {"Building the future, one commit at a time", []string{"Prolific", "Unstoppable", "Visionary"}},
	scoring.SteadyCraftsman:      {"Consistency is your superpower", []string{"Persistent", "Reliable", "Steady"}},
	scoring.VisionaryPlanner:     {"Seeing problems before they arise", []string{"Strategic", "Thoughtful", "Proactive"}},
	scoring.OpenSourceStar:       {"Making the world a better place through code", []string{"Influential", "Community-driven", "Impactful"}},
	scoring.CuriousExplorer:      {"Every repository is a new adventure", []string{"Curious", "Adventurous", "Versatile"}},
}

var defaultPersona = Persona{
	Tagline: "Code is your canvas",
	Traits:  []string{"Creative", "Dedicated", "Innovative"},
}

// PersonaFor returns the display text for an archetype.
// Unknown labels get a generic persona.
func PersonaFor(a scoring.Archetype) Persona {
	p, ok := personas[a]
	if !ok {
		p = defaultPersona
	}
	// Callers may append to Traits; never hand out the shared backing array.
	p.Traits = append([]string(nil), p.Traits...)
	return p
}
