package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

// ColorForProgress returns the bar color for progress toward a target.
func ColorForProgress(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Gain
	case pct >= 0.5:
		return t.Accent
	default:
		return t.Warn
	}
}

// ProgressBar renders pct (0..1, clamped) as a bar followed by a percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active

	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 1 {
		shown = 1
	}

	color := ColorForProgress(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(4, width)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(shown) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
