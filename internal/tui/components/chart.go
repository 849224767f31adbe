package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/lifeplan/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. Negative values draw
// as the lowest block.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders yen values as vertical bars with a y-axis in 万/億 units
// and optional x-axis labels (one per value).
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 20 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	step := tickStep(peak)
	intervals := max(2, height/2)
	for int(math.Ceil(peak/step)) > intervals {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	numIntervals := max(1, int(math.Round(ceiling/step)))
	rowsPerTick := max(2, height/numIntervals)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(5, lipgloss.Width(AxisLabel(ceiling))+1)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = AxisLabel(step * float64(i))
	}

	n := len(values)
	chartW := max(5, width-yLabelW-1)
	barW := max(1, (chartW-(n-1))/n)
	barW = min(barW, 4)
	if (chartW-(n-1))/n < 1 {
		// Too many values for the width: keep an evenly spaced subset.
		keep := max(2, (chartW+1)/2)
		values, labels = sample(values, labels, keep)
		n = len(values)
	}
	axisLen := n*barW + (n - 1)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(padLeft(tickLabels[row], yLabelW)))
		b.WriteString(axisStyle.Render("│"))
		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(partial[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(padLeft("0", yLabelW)))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		line := []rune(strings.Repeat(" ", axisLen))
		lastEnd := -1
		for i, lbl := range labels {
			pos := i * (barW + 1)
			end := pos + len([]rune(lbl))
			if pos <= lastEnd || end > axisLen {
				continue
			}
			copy(line[pos:end], []rune(lbl))
			lastEnd = end
		}
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(line), " ")))
	}

	return b.String()
}

// padLeft right-aligns s in w display columns; 万 and 億 are two columns wide.
func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(0, w-lipgloss.Width(s))) + s
}

func sample(values []float64, labels []string, keep int) ([]float64, []string) {
	n := len(values)
	if keep >= n {
		return values, labels
	}
	outV := make([]float64, keep)
	var outL []string
	if len(labels) == n {
		outL = make([]string, keep)
	}
	for i := range outV {
		src := i * (n - 1) / (keep - 1)
		outV[i] = values[src]
		if outL != nil {
			outL[i] = labels[src]
		}
	}
	return outV, outL
}

// tickStep computes a round tick interval targeting about five ticks.
func tickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// AxisLabel formats a yen amount for a chart axis.
// e.g., 150000000 -> "1.5億", 20000000 -> "2000万", 5000 -> "5000"
func AxisLabel(v float64) string {
	switch {
	case v >= 1e8:
		if v == math.Trunc(v/1e8)*1e8 {
			return fmt.Sprintf("%.0f億", v/1e8)
		}
		return fmt.Sprintf("%.1f億", v/1e8)
	case v >= 1e4:
		return fmt.Sprintf("%.0f万", v/1e4)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
