package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizly/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗██╗  ██╗   ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██║  ╚██╗ ██╔╝
 ██║   ██║██║   ██║██║  ███╔╝ ██║   ╚████╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██║    ╚██╔╝
 ╚██████╔╝╚██████╔╝██║███████╗███████╗██║
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝╚═╝`

const bannerCompact = "Q U I Z L Y"

// RenderBanner returns the QUIZLY banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
