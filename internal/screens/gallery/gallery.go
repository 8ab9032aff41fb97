package gallery

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/achievements"
	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// rowsPerEntry is the rendered height of one achievement block.
const rowsPerEntry = 3

// GalleryScreen lists every achievement definition with its earned state.
// Earned state is recomputed from the live snapshot on each render, so a
// game finished one screen away shows up immediately.
type GalleryScreen struct {
	prog *progress.Store
	ach  *achievements.Service

	scrollOffset int
}

var _ screen.Screen = (*GalleryScreen)(nil)
var _ screen.KeyHintProvider = (*GalleryScreen)(nil)

// New creates a GalleryScreen.
func New(prog *progress.Store, ach *achievements.Service) *GalleryScreen {
	return &GalleryScreen{prog: prog, ach: ach}
}

func (s *GalleryScreen) Init() tea.Cmd {
	return nil
}

func (s *GalleryScreen) Title() string {
	return "Achievements"
}

func (s *GalleryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GalleryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.ach.Defs())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *GalleryScreen) View(width, height int) string {
	defs := s.ach.Defs()
	snapshot := s.prog.Snapshot()

	earned := make(map[string]bool)
	for _, a := range s.ach.Earned(snapshot) {
		earned[a.ID] = true
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("★ %d/%d earned", len(earned), len(defs))))
	b.WriteString("\n\n")

	maxVisible := (height - 4) / rowsPerEntry
	if maxVisible < 1 {
		maxVisible = 1
	}
	start := s.scrollOffset
	if start > len(defs)-maxVisible {
		start = len(defs) - maxVisible
	}
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > len(defs) {
		end = len(defs)
	}

	lineW := min(width-8, 68)
	for _, a := range defs[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			s.renderEntry(a, earned[a.ID], lineW)))
		b.WriteString("\n")
	}

	if end < len(defs) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("… %d more below", len(defs)-end)))
	}

	return b.String()
}

// renderEntry renders one achievement as a title line, a description line,
// and a spacer.
func (s *GalleryScreen) renderEntry(a catalog.Achievement, isEarned bool, lineW int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if isEarned {
		titleStyle = lipgloss.NewStyle().Foreground(tierColor(a.Tier)).Bold(true)
		descStyle = lipgloss.NewStyle().Foreground(theme.Text)
	}

	countStr := s.progressText(a)
	title := titleStyle.Render(fmt.Sprintf("%s %s", a.Tier.Icon(), a.Title))
	gap := lineW - lipgloss.Width(title) - lipgloss.Width(countStr)
	if gap < 1 {
		gap = 1
	}
	line1 := title + strings.Repeat(" ", gap) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(countStr)

	line2 := descStyle.Render(truncate(a.Description, lineW-4))

	return lipgloss.NewStyle().Width(lineW).Render(line1 + "\n  " + line2 + "\n")
}

// progressText shows games done toward the requirement, e.g. "3/4 games".
func (s *GalleryScreen) progressText(a catalog.Achievement) string {
	done := 0
	if a.Global() {
		done, _ = s.prog.Counts()
	} else if vp, ok := s.prog.Volcano(a.Volcano); ok {
		done = vp.CompletedCount()
	}
	if done > a.RequiredGames {
		done = a.RequiredGames
	}
	return fmt.Sprintf("%d/%d games", done, a.RequiredGames)
}

// tierColor returns the theme color for an achievement tier.
func tierColor(t catalog.Tier) color.Color {
	switch t {
	case catalog.TierBronze:
		return theme.TierBronze
	case catalog.TierSilver:
		return theme.TierSilver
	case catalog.TierGold:
		return theme.TierGold
	default:
		return theme.Text
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
