package components

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRatio returns the band color for value/limit, where reaching the
// limit is the bad direction.
func ColorForRatio(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio >= 1:
		return t.Bad
	case ratio >= 0.85:
		return t.Warn
	default:
		return t.Good
	}
}

// ThresholdBar renders a labeled gauge of value against limit, such as a
// dish's food cost % against the configured ceiling. The bar spans 0..scale.
func ThresholdBar(label string, value, limit, scale float64, labelW, barWidth int) string {
	t := theme.Active

	if scale <= 0 {
		scale = 100
	}
	pct := value / scale
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	ratio := 0.0
	if limit > 0 {
		ratio = value / limit
	}
	color := ColorForRatio(ratio)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	limitStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		valueStyle.Render(fmt.Sprintf("%5.1f%%", value)) +
		limitStyle.Render(fmt.Sprintf(" / %.0f%%", limit))
}
