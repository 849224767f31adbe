package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and plan information on the right.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Drop the right side before clipping hints.
		right = ""
		padding = max(0, width-lipgloss.Width(left))
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
