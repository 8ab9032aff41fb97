package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/ui/theme"
)

// Spinner wraps bubbles/spinner with Tecton styling, shown while a
// screen loads data asynchronously.
type Spinner struct {
	Model spinner.Model
}

// NewSpinner creates a new styled spinner.
func NewSpinner() Spinner {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)
	return Spinner{Model: sp}
}

// Init returns the command that starts the spinner ticking.
func (s Spinner) Init() tea.Cmd {
	return s.Model.Tick
}

// Update advances the spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner frame.
func (s Spinner) View() string {
	return s.Model.View()
}
