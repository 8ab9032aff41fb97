package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/achievements"
	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	"github.com/tectonhq/tecton/internal/screens/home"
	"github.com/tectonhq/tecton/internal/screens/welcome"
	"github.com/tectonhq/tecton/internal/settings"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/layout"
)

// Options carries the shared services the screens depend on.
type Options struct {
	Catalog      *catalog.Catalog
	Progress     *progress.Store
	Achievements *achievements.Service
	Settings     *settings.Manager
	EventRepo    store.EventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Catalog, opts.Progress, opts.Achievements, opts.Settings, opts.EventRepo)
	}
	return AppModel{
		opts:   opts,
		router: router.New(welcome.New(homeFactory)),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens with in-flight state confirm before leaving.
			if ei, ok := m.router.Active().(screen.EscInterceptor); ok && ei.InterceptEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	gamesDone, gamesTotal := m.opts.Progress.Counts()
	earned := m.opts.Achievements.EarnedCount(m.opts.Progress.Snapshot())
	achTotal := len(m.opts.Achievements.Defs())
	header := layout.RenderHeader(title, gamesDone, gamesTotal, earned, achTotal, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and flushes any pending progress
// save once it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if opts.Progress != nil {
		opts.Progress.Flush()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
