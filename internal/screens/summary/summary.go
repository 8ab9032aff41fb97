package summary

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// Data holds everything the completion screen shows: the run's numbers
// plus whatever the progress update triggered (unlock, achievement).
type Data struct {
	VolcanoName string
	GameTitle   string
	GameType    catalog.GameType
	Score       int
	Total       int
	ScoreLabel  string // unit for the score line, e.g. "correct" or "pairs"
	Detail      string // optional extra stat line
	Duration    time.Duration
	Result      progress.Result
}

// SummaryScreen displays the post-game summary.
type SummaryScreen struct {
	data   Data
	button components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(data Data) *SummaryScreen {
	s := &SummaryScreen{data: data}
	s.button = components.NewButton("Continue", true, func() tea.Cmd {
		return backToVolcano()
	})
	return s
}

// backToVolcano pops both the summary and the game screen beneath it.
func backToVolcano() tea.Cmd {
	pop := func() tea.Msg { return router.PopScreenMsg{} }
	return tea.Sequence(pop, pop)
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, backToVolcano()
		default:
			var cmd tea.Cmd
			s.button, cmd = s.button.Update(kmsg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("%s Game complete!", d.GameType.Icon())))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", d.GameTitle, d.VolcanoName)))
	b.WriteString("\n\n")

	// Score and duration.
	scoreLine := fmt.Sprintf("Score: %d/%d %s", d.Score, d.Total, d.ScoreLabel)
	if d.Duration > 0 {
		mins := int(d.Duration.Minutes())
		secs := int(d.Duration.Seconds()) % 60
		scoreLine += fmt.Sprintf("        Time: %d:%02d", mins, secs)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(scoreLine))
	b.WriteString("\n")

	if d.Detail != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(d.Detail))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cw := components.ContentWidth(width)

	// Progress banners, in the order things happened: the volcano
	// finishing, the next one opening, then any achievement.
	if d.Result.VolcanoCompleted {
		banner := lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render(fmt.Sprintf("🌋 %s complete!", d.VolcanoName))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(banner, cw)))
		b.WriteString("\n")
	}

	if d.Result.Unlocked != "" {
		banner := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("🔓 %s is now unlocked!", d.Result.Unlocked))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(banner, cw)))
		b.WriteString("\n")
	}

	if a := d.Result.Achievement; a != nil {
		title := lipgloss.NewStyle().
			Foreground(tierColor(a.Tier)).
			Bold(true).
			Render(fmt.Sprintf("%s Achievement unlocked!", a.Tier.Icon()))
		body := lipgloss.NewStyle().
			Foreground(theme.Text).
			Render(a.Title)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Card(title+"\n"+body, cw)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.button.View()))

	return b.String()
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
