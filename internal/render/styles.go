// SPDX-FileCopyrightText: 2026 Logan Lindquist Land
// SPDX-License-Identifier: FSL-1.1-MIT

// Package render draws stories and score tables for the terminal.
package render

import "github.com/charmbracelet/lipgloss"

// Palette names the colors a Styles set is built from.
type Palette struct {
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Star     lipgloss.Color
}

// DefaultPalette is purple accents on light text.
var DefaultPalette = Palette{
	Accent:   lipgloss.Color("#7D56F4"),
	Text:     lipgloss.Color("#FFFDF5"),
	Muted:    lipgloss.Color("#626262"),
	Border:   lipgloss.Color("#383838"),
	Positive: lipgloss.Color("#00FF00"),
	Negative: lipgloss.Color("#FF4500"),
	Star:     lipgloss.Color("#FFFF00"),
}

// Styles holds every lipgloss style the renderers use.
type Styles struct {
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderInfo  lipgloss.Style
	Section     lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style

	Muted    lipgloss.Style
	Stars    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style

	// Archetype card.
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardTagline lipgloss.Style
	Trait       lipgloss.Style
}

// DefaultStyles returns NewStyles(DefaultPalette).
func DefaultStyles() Styles {
	return NewStyles(DefaultPalette)
}

// NewStyles builds the style set from p.
func NewStyles(p Palette) Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	underlined := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		BorderBottom(true).
		Padding(0, 1)

	return Styles{
		Header:      underlined,
		HeaderTitle: fg(p.Accent).Bold(true),
		HeaderInfo:  fg(p.Muted),
		Section:     fg(p.Accent).Bold(true).MarginTop(1),

		TableHeader: underlined.Foreground(p.Text).Bold(true),
		TableRow:    fg(p.Text).Padding(0, 1),

		Muted:    fg(p.Muted),
		Stars:    fg(p.Star),
		Positive: fg(p.Positive).Bold(true),
		Negative: fg(p.Negative).Bold(true),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2).
			MarginTop(1),
		CardTitle:   fg(p.Accent).Bold(true),
		CardTagline: fg(p.Text).Italic(true),
		Trait:       fg(p.Star),
	}
}
