package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirmingQuit {
		return components.RenderQuitConfirm(width)
	}
	if s.finished {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Quiz complete!")
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question with the choice list.
func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Volcano: %s", s.volcanoName))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			s.game.Index()+1,
			s.game.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.game.Score(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	choice := lipgloss.NewStyle().Width(min(width-8, 70)).Render(s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choice))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Select (1-4) or use arrows + Enter"))

	return b.String()
}

// renderFeedback renders the post-answer overlay.
func (s *QuizScreen) renderFeedback(width int) string {
	q, ok := s.game.Current()

	var b strings.Builder
	b.WriteString("\n\n")

	if s.choice.IsCorrect() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		if ok && q.Answer >= 0 && q.Answer < len(q.Choices) {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", q.Choices[q.Answer])))
		}
	}

	b.WriteString("\n\n")

	if ok && q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		exp := expStyle.Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
