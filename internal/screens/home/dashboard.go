package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleFull = ` ████████╗███████╗ ██████╗████████╗ ██████╗ ███╗   ██╗
 ╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝██╔═══██╗████╗  ██║
    ██║   █████╗  ██║        ██║   ██║   ██║██╔██╗ ██║
    ██║   ██╔══╝  ██║        ██║   ██║   ██║██║╚██╗██║
    ██║   ███████╗╚██████╗   ██║   ╚██████╔╝██║ ╚████║
    ╚═╝   ╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═══╝`

const titleCompact = "T · E · C · T · O · N"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(titleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(titleFull))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(unlocked, volcanoes, gamesDone, gamesTotal, earned, cw int, compact bool) string {
	unlockStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	gameStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	earnedStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			unlockStyle.Render(fmt.Sprintf("▲%d/%d", unlocked, volcanoes)),
			gameStyle.Render(fmt.Sprintf("●%d/%d", gamesDone, gamesTotal)),
			earnedStyle.Render(fmt.Sprintf("★%d", earned)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			unlockStyle.Render(fmt.Sprintf("▲ %d/%d UNLOCKED", unlocked, volcanoes)),
			gameStyle.Render(fmt.Sprintf("● %d/%d GAMES", gamesDone, gamesTotal)),
			earnedStyle.Render(fmt.Sprintf("★ %d EARNED", earned)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders menu items as highlight lines centered at content width.
func renderMenu(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderPeakBox renders the volcano art centered at content width.
func renderPeakBox(variant PeakVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderPeak(variant))
}
