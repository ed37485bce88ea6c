package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/quizforge/quizforge/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗███████╗ ██████╗ ██████╗  ██████╗ ███████╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██╔════╝██╔═══██╗██╔══██╗██╔════╝ ██╔════╝
 ██║   ██║██║   ██║██║  ███╔╝ █████╗  ██║   ██║██████╔╝██║  ███╗█████╗
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██╔══╝  ██║   ██║██╔══██╗██║   ██║██╔══╝
 ╚██████╔╝╚██████╔╝██║███████╗██║     ╚██████╔╝██║  ██║╚██████╔╝███████╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝`

const bannerCompact = "Q U I Z F O R G E"

var bannerStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

// renderBanner draws the block-letter logo, or the spaced-out name when the
// window is too narrow for it.
func renderBanner(width int) string {
	if width < lipgloss.Width(bannerArt)+2 {
		return bannerStyle.Render(bannerCompact)
	}
	return bannerStyle.Render(bannerArt)
}
