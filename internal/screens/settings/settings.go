package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/screen"
	appsettings "github.com/tectonhq/tecton/internal/settings"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// Row indices in display order. Reset sits last, below the toggles.
const (
	rowNotifications = iota
	rowSound
	rowNarration
	rowReset
	rowCount
)

// SettingsScreen hosts the three toggles and the progress reset.
type SettingsScreen struct {
	mgr  *appsettings.Manager
	prog *progress.Store

	cursor          int
	confirmingReset bool
	resetDone       bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscInterceptor = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(mgr *appsettings.Manager, prog *progress.Store) *SettingsScreen {
	return &SettingsScreen{mgr: mgr, prog: prog}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.confirmingReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

// InterceptEsc holds esc while the reset confirmation is up so it cancels
// the dialog instead of leaving the screen.
func (s *SettingsScreen) InterceptEsc() bool {
	return s.confirmingReset
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirmingReset {
		switch kmsg.String() {
		case "y", "Y":
			s.prog.ResetAll()
			s.confirmingReset = false
			s.resetDone = true
		case "n", "N", "esc":
			s.confirmingReset = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < rowCount-1 {
			s.cursor++
		}
	case "enter", "space":
		s.activate()
	}
	return s, nil
}

func (s *SettingsScreen) activate() {
	switch s.cursor {
	case rowNotifications:
		s.mgr.SetNotificationsEnabled(!s.mgr.NotificationsEnabled())
	case rowSound:
		s.mgr.SetSoundEnabled(!s.mgr.SoundEnabled())
	case rowNarration:
		s.mgr.SetNarrationEnabled(!s.mgr.NarrationEnabled())
	case rowReset:
		s.confirmingReset = true
		s.resetDone = false
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if s.confirmingReset {
		return renderResetConfirm(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(s.renderToggle(width, rowNotifications, "Achievement notifications", s.mgr.NotificationsEnabled()))
	b.WriteString(s.renderToggle(width, rowSound, "Sound effects", s.mgr.SoundEnabled()))
	b.WriteString(s.renderToggle(width, rowNarration, "Narration", s.mgr.NarrationEnabled()))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	resetLabel := "Reset all progress"
	resetStyle := lipgloss.NewStyle().Foreground(theme.Error)
	prefix := "  "
	if s.cursor == rowReset {
		prefix = "> "
		resetStyle = resetStyle.Bold(true)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		resetStyle.Render(prefix+resetLabel)))
	b.WriteString("\n")

	if s.resetDone {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Progress reset. Only the first volcano is open again."))
	}

	return b.String()
}

func (s *SettingsScreen) renderToggle(width, row int, label string, enabled bool) string {
	state := lipgloss.NewStyle().Foreground(theme.TextDim).Render("OFF")
	if enabled {
		state = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("ON ")
	}

	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if s.cursor == row {
		prefix = "> "
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	line := fmt.Sprintf("%s%-28s %s", prefix, label, state)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n"
}

// renderResetConfirm renders the destructive-action dialog.
func renderResetConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Reset all progress?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Every volcano locks again except the first, and achievements start over."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, reset everything"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep my progress"))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
