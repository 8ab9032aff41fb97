package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: volcanic earth tones with lava highlights
var (
	Primary   = lipgloss.Color("#E25822") // Flame
	Secondary = lipgloss.Color("#00ACC1") // Pacific Teal
	Accent    = lipgloss.Color("#FFB300") // Magma Amber
	Success   = lipgloss.Color("#43A047") // Green
	Error     = lipgloss.Color("#E53935") // Red
	Text      = lipgloss.Color("#FAFAF9") // Warm White
	TextDim   = lipgloss.Color("#A8A29E") // Ash Grey
	BgDark    = lipgloss.Color("#1C1917") // Obsidian
	BgCard    = lipgloss.Color("#292524") // Basalt
	Border    = lipgloss.Color("#44403C") // Stone
)

// Achievement tiers
var (
	TierBronze = lipgloss.Color("#CD7F32")
	TierSilver = lipgloss.Color("#C0C0C0")
	TierGold   = lipgloss.Color("#FFD700")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
