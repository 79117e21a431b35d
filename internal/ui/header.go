package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const headerGap = "  ·  "

// headerBar renders the one-line title bar across width. Each segment and
// each gap is styled with the surface background on its own, since a reset
// inside a styled run drops the background for whatever follows it.
func headerBar(theme Theme, styles Styles, width int) string {
	bg := lipgloss.Color(theme.Surface)
	fill := lipgloss.NewStyle().Background(bg)

	segments := []string{
		styles.Logo.Background(bg).Render(appTitle),
		styles.MutedText.Background(bg).Render(theme.Name),
	}
	line := fill.Render(" ") + strings.Join(segments, fill.Render(headerGap))
	return fill.Width(width).MaxHeight(1).Render(line)
}
