package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

type historyLoadedMsg struct {
	Plays        []store.PlayEventRecord
	Achievements []store.AchievementEventRecord
	Err          error
}

// tab selects which event list is shown.
type tab int

const (
	tabPlays tab = iota
	tabAchievements
)

// HistoryScreen displays past plays and surfaced achievements.
type HistoryScreen struct {
	eventRepo    store.EventRepo
	plays        []store.PlayEventRecord
	achievements []store.AchievementEventRecord
	active       tab
	selected     int
	spinner      components.Spinner
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		spinner:   components.NewSpinner(),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		ctx := context.Background()

		plays, err := s.eventRepo.QueryPlays(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		achievements, err := s.eventRepo.QueryAchievements(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Plays: plays}
		}

		return historyLoadedMsg{Plays: plays, Achievements: achievements}
	}
	return tea.Batch(load, s.spinner.Init())
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Plays/Achievements"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.plays = msg.Plays
			s.achievements = msg.Achievements
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if s.active == tabPlays {
				s.active = tabAchievements
			} else {
				s.active = tabPlays
			}
			s.selected = 0
			return s, nil
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < s.activeLen()-1 {
				s.selected++
			}
			return s, nil
		}

	default:
		// Keep the spinner ticking until the load lands.
		if !s.loaded {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

func (s *HistoryScreen) activeLen() int {
	if s.active == tabAchievements {
		return len(s.achievements)
	}
	return len(s.plays)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.spinner.View() + " Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	if s.active == tabAchievements {
		s.renderAchievements(&b, width, height)
	} else {
		s.renderPlays(&b, width, height)
	}

	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	activeStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	idleStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	plays := idleStyle.Render("PLAYS")
	achievements := idleStyle.Render("ACHIEVEMENTS")
	if s.active == tabPlays {
		plays = activeStyle.Render("PLAYS")
	} else {
		achievements = activeStyle.Render("ACHIEVEMENTS")
	}
	return plays + idleStyle.Render("  ·  ") + achievements
}

// visibleRange windows the list so the cursor stays on screen.
func (s *HistoryScreen) visibleRange(total, height int) (int, int) {
	maxVisible := height - 6
	if maxVisible < 1 {
		maxVisible = 1
	}
	start := 0
	if s.selected >= maxVisible {
		start = s.selected - maxVisible + 1
	}
	end := start + maxVisible
	if end > total {
		end = total
	}
	return start, end
}

func (s *HistoryScreen) renderPlays(b *strings.Builder, width, height int) {
	if len(s.plays) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n  No plays yet. Pick a volcano and dive in!"))
		return
	}

	start, end := s.visibleRange(len(s.plays), height)
	for i := start; i < end; i++ {
		p := s.plays[i]
		dateStr := p.Timestamp.Format("Jan 02, 2006")
		mins := p.DurationSecs / 60
		secs := p.DurationSecs % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		mark := ""
		if !p.Completed {
			mark = "  left early"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s %-14s %-26s %d/%d  %s%s",
			prefix, dateStr,
			catalog.GameType(p.GameType).Icon(),
			p.Volcano,
			truncate(p.GameTitle, 26),
			p.Score, p.Total,
			durationStr, mark)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !p.Completed {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}
}

func (s *HistoryScreen) renderAchievements(b *strings.Builder, width, height int) {
	if len(s.achievements) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n  No achievements surfaced yet. Keep playing!"))
		return
	}

	start, end := s.visibleRange(len(s.achievements), height)
	for i := start; i < end; i++ {
		a := s.achievements[i]
		dateStr := a.Timestamp.Format("Jan 02, 2006")
		tier := catalog.Tier(a.Tier)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s %s", prefix, dateStr, tier.Icon(), a.Title)

		style := lipgloss.NewStyle().Foreground(tierColor(tier))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}
}

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
