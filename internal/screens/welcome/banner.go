package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/ui/theme"
)

const bannerArt = `
 ████████╗███████╗ ██████╗████████╗ ██████╗ ███╗   ██╗
 ╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝██╔═══██╗████╗  ██║
    ██║   █████╗  ██║        ██║   ██║   ██║██╔██╗ ██║
    ██║   ██╔══╝  ██║        ██║   ██║   ██║██║╚██╗██║
    ██║   ███████╗╚██████╗   ██║   ╚██████╔╝██║ ╚████║
    ╚═╝   ╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═══╝`

const bannerCompact = "T E C T O N"

// RenderBanner returns the TECTON banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
