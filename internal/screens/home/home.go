package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/achievements"
	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/screens/explore"
	cardscreen "github.com/tectonhq/tecton/internal/screens/flashcards"
	"github.com/tectonhq/tecton/internal/screens/gallery"
	"github.com/tectonhq/tecton/internal/screens/history"
	settingsscreen "github.com/tectonhq/tecton/internal/screens/settings"
	"github.com/tectonhq/tecton/internal/settings"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	cat        *catalog.Catalog
	prog       *progress.Store
	ach        *achievements.Service
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(cat *catalog.Catalog, prog *progress.Store, ach *achievements.Service, settingsMgr *settings.Manager, eventRepo store.EventRepo) *HomeScreen {
	menuLabels := []string{"EXPLORE VOLCANOES", "FLASHCARDS", "ACHIEVEMENTS", "HISTORY", "SETTINGS", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: explore.New(cat, prog, eventRepo)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: cardscreen.New(cat)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: gallery.New(prog, ach)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settingsscreen.New(settingsMgr, prog)}
			}
		}},
		{Label: menuLabels[5], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		cat:        cat,
		prog:       prog,
		ach:        ach,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	// Stats are read live so returning from a game refreshes them.
	snapshot := h.prog.Snapshot()
	gamesDone, gamesTotal := h.prog.Counts()
	earned := h.ach.EarnedCount(snapshot)
	unlocked := 0
	for _, v := range snapshot {
		if v.Unlocked {
			unlocked++
		}
	}

	variant := PeakDormant
	switch {
	case gamesTotal > 0 && gamesDone == gamesTotal:
		variant = PeakErupting
	case gamesDone > 0:
		variant = PeakActive
	}

	var sections []string

	// 1. Title
	sections = append(sections, renderTitle(cw, compact))

	// 2. Volcano art (full mode only)
	if !compact {
		sections = append(sections, renderPeakBox(variant, cw))
	}

	// 3. Stats bar (double-bordered, same width)
	sections = append(sections, renderStatsBar(
		unlocked, len(snapshot), gamesDone, gamesTotal, earned, cw, compact))

	// 4. Overall progress bar
	var pct float64
	if gamesTotal > 0 {
		pct = float64(gamesDone) / float64(gamesTotal)
	}
	bar := components.NewProgressBar("", pct, true, cw-4).View()
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, bar))

	// 5. Menu (same width)
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	content := strings.Join(sections, "\n\n")

	// Wrap in the double-border panel, centered in the full area
	return components.Panel(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
