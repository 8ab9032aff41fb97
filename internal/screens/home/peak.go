package home

import (
	"charm.land/lipgloss/v2"

	"github.com/tectonhq/tecton/internal/ui/theme"
)

// PeakVariant selects which volcano art to display.
type PeakVariant int

const (
	PeakDormant  PeakVariant = iota // Grey, quiet crater: nothing completed yet
	PeakActive                      // Smoking: progress under way
	PeakErupting                    // Sparks flying: every game completed
)

const peakDormant = `    _/^\_
   /     \
  /       \
 /_________\`

const peakActive = `     ( )
    _/^\_
   /     \
  /       \
 /_________\`

const peakErupting = `   ✸ ✦ ✸
    _/^\_
   /  ~  \
  / ~   ~ \
 /_________\`

// RenderPeak returns the volcano ASCII art for the given variant.
func RenderPeak(variant ...PeakVariant) string {
	v := PeakDormant
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.TextDim

	switch v {
	case PeakActive:
		art = peakActive
		fg = theme.Primary
	case PeakErupting:
		art = peakErupting
		fg = theme.Accent
	default:
		art = peakDormant
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
