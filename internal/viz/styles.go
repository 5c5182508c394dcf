package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values scaled to [lo, hi] without color.
func Sparkline(values []float64, width int, lo, hi float64) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	rng := hi - lo
	if rng <= 0 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		sb.WriteRune(sparkChars[sparkIndex((v-lo)/rng)])
	}
	return sb.String()
}

// SparklineChart is Sparkline colored by level.
func SparklineChart(values []float64, width int, lo, hi float64) string {
	plain := []rune(Sparkline(values, width, lo, hi))
	var sb strings.Builder
	for _, c := range plain {
		switch {
		case c >= '▆':
			sb.WriteString(SparkHigh.Render(string(c)))
		case c >= '▃':
			sb.WriteString(SparkMid.Render(string(c)))
		default:
			sb.WriteString(SparkLow.Render(string(c)))
		}
	}
	return sb.String()
}

func sparkIndex(norm float64) int {
	idx := int(norm * float64(len(sparkChars)-1))
	return max(0, min(idx, len(sparkChars)-1))
}

// VoltageBar draws v on a bipolar meter of ±rail volts, centre marked.
func VoltageBar(v, rail float64, width int) string {
	if width < 3 {
		width = 3
	}
	half := width / 2
	pos := half + int(v/rail*float64(half))
	pos = max(0, min(pos, width-1))

	bar := []rune(strings.Repeat("─", width))
	bar[half] = '┼'
	bar[pos] = '█'
	return string(bar)
}
