package volcano

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/screens/builder"
	"github.com/tectonhq/tecton/internal/screens/match"
	puzzlescreen "github.com/tectonhq/tecton/internal/screens/puzzle"
	quizscreen "github.com/tectonhq/tecton/internal/screens/quiz"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// VolcanoScreen shows one volcano's facts and its games menu.
type VolcanoScreen struct {
	volcano   catalog.Volcano
	prog      *progress.Store
	eventRepo store.EventRepo
	cursor    int
}

var _ screen.Screen = (*VolcanoScreen)(nil)
var _ screen.KeyHintProvider = (*VolcanoScreen)(nil)

// New creates a new VolcanoScreen.
func New(v catalog.Volcano, prog *progress.Store, eventRepo store.EventRepo) *VolcanoScreen {
	return &VolcanoScreen{
		volcano:   v,
		prog:      prog,
		eventRepo: eventRepo,
	}
}

func (s *VolcanoScreen) Init() tea.Cmd {
	return nil
}

func (s *VolcanoScreen) Title() string {
	return s.volcano.Name
}

func (s *VolcanoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VolcanoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.volcano.Games)-1 {
				s.cursor++
			}
		case "enter":
			return s, s.launchGame(s.volcano.Games[s.cursor])
		}
	}
	return s, nil
}

// launchGame pushes the screen for the selected game. Completed games can
// be replayed; only the first completion mutates progress.
func (s *VolcanoScreen) launchGame(g catalog.GameDef) tea.Cmd {
	var gameScreen screen.Screen
	switch g.Type {
	case catalog.GameQuiz:
		gameScreen = quizscreen.New(s.volcano.Name, g, s.prog, s.eventRepo)
	case catalog.GameWordMatch:
		gameScreen = match.New(s.volcano.Name, g, s.prog, s.eventRepo)
	case catalog.GamePuzzle:
		gameScreen = puzzlescreen.New(s.volcano.Name, g, s.prog, s.eventRepo)
	case catalog.GameVolcanoBuilder:
		gameScreen = builder.New(s.volcano.Name, g, s.prog, s.eventRepo)
	default:
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: gameScreen}
	}
}

func (s *VolcanoScreen) View(width, height int) string {
	v := s.volcano

	var b strings.Builder
	b.WriteString("\n")

	// Profile line.
	profile := fmt.Sprintf("%s  ·  %d m  ·  %s", v.Kind, v.ElevationMeters, v.Location)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(profile))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("3D model: %s", v.ModelAsset)))
	b.WriteString("\n\n")

	// Summary.
	summaryStyle := lipgloss.NewStyle().
		Width(minInt(width-8, 70)).
		Foreground(theme.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, summaryStyle.Render(v.Summary)))
	b.WriteString("\n\n")

	// Facts.
	b.WriteString(sectionHeader("Facts", width))
	for _, f := range v.Facts {
		line := fmt.Sprintf("  • %s", f.Title)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%-40s", line))))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("read them all under Flashcards")))
	b.WriteString("\n\n")

	// Games.
	b.WriteString(sectionHeader("Games", width))
	for i, g := range v.Games {
		done := s.isCompleted(g.Type)

		prefix := "  "
		if i == s.cursor {
			prefix = "▸ "
		}

		mark := "          "
		if done {
			mark = "  ✓ done  "
		}

		label := fmt.Sprintf("%s%s %-16s %-28s%s", prefix, g.Type.Icon(), g.Type.DisplayName(), g.Title, mark)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if done {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		if i == s.cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(label)))
		b.WriteString("\n")
	}

	return b.String()
}

// isCompleted reads live progress so finishing a game updates the mark.
func (s *VolcanoScreen) isCompleted(t catalog.GameType) bool {
	vp, ok := s.prog.Volcano(s.volcano.Name)
	if !ok {
		return false
	}
	for _, g := range vp.Games {
		if g.Type == t {
			return g.Completed
		}
	}
	return false
}

func sectionHeader(name string, width int) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", minInt(width-8, 60)))
	header := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(name)) +
		"\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) +
		"\n"
	return header
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
