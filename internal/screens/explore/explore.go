package explore

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/screens/volcano"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// ExploreScreen lists every volcano with its unlock and completion state.
type ExploreScreen struct {
	cat       *catalog.Catalog
	prog      *progress.Store
	eventRepo store.EventRepo
	cursor    int
}

var _ screen.Screen = (*ExploreScreen)(nil)
var _ screen.KeyHintProvider = (*ExploreScreen)(nil)

// New creates a new ExploreScreen.
func New(cat *catalog.Catalog, prog *progress.Store, eventRepo store.EventRepo) *ExploreScreen {
	return &ExploreScreen{
		cat:       cat,
		prog:      prog,
		eventRepo: eventRepo,
	}
}

func (s *ExploreScreen) Init() tea.Cmd {
	return nil
}

func (s *ExploreScreen) Title() string {
	return "Explore Volcanoes"
}

func (s *ExploreScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Visit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ExploreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	volcanoes := s.cat.Volcanoes()

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(volcanoes)-1 {
				s.cursor++
			}
		case "enter":
			v := volcanoes[s.cursor]
			vp, ok := s.prog.Volcano(v.Name)
			if !ok || !vp.Unlocked {
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: volcano.New(v, s.prog, s.eventRepo)}
			}
		}
	}
	return s, nil
}

func (s *ExploreScreen) View(width, height int) string {
	volcanoes := s.cat.Volcanoes()
	if len(volcanoes) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, v := range volcanoes {
		vp, _ := s.prog.Volcano(v.Name)

		icon := "🔒"
		switch {
		case vp.AllCompleted():
			icon = "✅"
		case vp.Unlocked:
			icon = "🔓"
		}

		prefix := "  "
		if i == s.cursor {
			prefix = "▸ "
		}

		name := fmt.Sprintf("%-18s", v.Name)
		location := fmt.Sprintf("%-16s", v.Location)
		count := fmt.Sprintf("%d/%d games", vp.CompletedCount(), len(vp.Games))

		nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
		countStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
		if !vp.Unlocked {
			nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
			countStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		if i == s.cursor {
			nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s %s %s %s",
			prefix,
			icon,
			nameStyle.Render(name),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(location),
			countStyle.Render(count),
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	// Detail line for the selected volcano.
	b.WriteString("\n")
	sel := volcanoes[s.cursor]
	vp, _ := s.prog.Volcano(sel.Name)
	detail := sel.Summary
	if !vp.Unlocked {
		detail = "Locked. Finish every game on the volcano before it to open this one."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render(truncate(detail, width-8)))

	return b.String()
}

func truncate(s string, max int) string {
	if max < 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
