package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one row of a horizontal bar list.
type Bar struct {
	Label   string
	Value   float64
	Display string // right-hand text; defaults to the value with one decimal
	Color   lipgloss.Color
}

// HBars renders a list of labeled horizontal bars scaled to the largest value.
// Negative values render as empty bars.
func HBars(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	dispW := 0
	peak := 0.0
	for i, b := range bars {
		if b.Display == "" {
			bars[i].Display = fmt.Sprintf("%.1f", b.Value)
		}
		if w := lipgloss.Width(b.Label); w > labelW {
			labelW = w
		}
		if w := lipgloss.Width(bars[i].Display); w > dispW {
			dispW = w
		}
		if b.Value > peak {
			peak = b.Value
		}
	}
	if labelW > width/3 {
		labelW = width / 3
	}
	barMax := width - labelW - dispW - 2
	if barMax < 1 {
		barMax = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dispStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := 0
		if peak > 0 && b.Value > 0 {
			n = int(b.Value / peak * float64(barMax))
		}
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

		label := truncate(b.Label, labelW)
		lines = append(lines, labelStyle.Render(label)+
			space.Render(strings.Repeat(" ", labelW-lipgloss.Width(label)+1))+
			barStyle.Render(strings.Repeat("█", n))+
			space.Render(strings.Repeat(" ", barMax-n+1))+
			dispStyle.Render(fmt.Sprintf("%*s", dispW, b.Display)))
	}
	return strings.Join(lines, "\n")
}

// Quadrant renders the menu-engineering matrix: margin on the vertical axis,
// volume on the horizontal, one cell per classification with its dish count.
func Quadrant(counts map[model.Classification]int, width int) string {
	t := theme.Active

	cellW := (width - 3) / 2
	if cellW < 14 {
		cellW = 14
	}

	cell := func(c model.Classification) string {
		style := lipgloss.NewStyle().
			Width(cellW).
			Align(lipgloss.Center).
			Foreground(t.Class(c)).
			Background(t.SurfaceHover).
			Bold(true)
		return style.Render(fmt.Sprintf("%s %d", c, counts[c]))
	}

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	sep := axis.Render(" ")

	top := axis.Render("▲") + sep + cell(model.Rompecabezas) + sep + cell(model.Estrella)
	bottom := axis.Render("│") + sep + cell(model.Perro) + sep + cell(model.Caballo)
	foot := axis.Render("└" + strings.Repeat("─", 2*cellW+2) + "▶")
	legend := axis.Render(fmt.Sprintf("  %-*s%s", 2*cellW-7, "margen ↑", "volumen →"))

	return strings.Join([]string{top, bottom, foot, legend}, "\n")
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
