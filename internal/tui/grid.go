package tui

import (
	"strings"

	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// column describes one grid column. A zero width column absorbs the space
// left over by the fixed ones.
type column struct {
	title string
	width int
	right bool
}

// cell is one rendered grid value. A zero color uses the primary text color.
type cell struct {
	text  string
	color lipgloss.Color
}

func plain(s string) cell { return cell{text: s} }

// renderGrid lays rows out in fixed-width columns on the card surface.
// selected highlights one row index; pass -1 for none.
func renderGrid(cols []column, rows [][]cell, selected, innerW int) string {
	t := theme.Active

	fixed := len(cols) - 1
	flex := -1
	for i, c := range cols {
		if c.width == 0 && flex < 0 {
			flex = i
			continue
		}
		fixed += c.width
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = c.width
	}
	if flex >= 0 {
		widths[flex] = innerW - fixed
		if widths[flex] < 8 {
			widths[flex] = 8
		}
	}
	total := len(cols) - 1
	for _, w := range widths {
		total += w
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	format := func(s string, w int, right bool) string {
		s = truncStr(s, w)
		gap := strings.Repeat(" ", w-lipgloss.Width(s))
		if right {
			return gap + s
		}
		return s + gap
	}

	var b strings.Builder
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = format(c.title, widths[i], c.right)
	}
	b.WriteString(headerStyle.Render(strings.Join(headers, " ")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", total)))

	for r, row := range rows {
		bg := t.Surface
		if r == selected {
			bg = t.SurfaceHover
		}
		sep := lipgloss.NewStyle().Background(bg).Render(" ")

		b.WriteString("\n")
		parts := make([]string, len(cols))
		for i := range cols {
			var c cell
			if i < len(row) {
				c = row[i]
			}
			fg := c.color
			if fg == "" {
				fg = t.TextPrimary
			}
			style := lipgloss.NewStyle().Foreground(fg).Background(bg)
			if r == selected {
				style = style.Bold(true)
			}
			parts[i] = style.Render(format(c.text, widths[i], cols[i].right))
		}
		b.WriteString(strings.Join(parts, sep))
	}
	return b.String()
}

// scrollRows returns rows[offset:offset+h], clamping offset so the last
// page stays full.
func scrollRows[T any](rows []T, offset, h int) []T {
	if h < 1 {
		h = 1
	}
	if offset > len(rows)-h {
		offset = len(rows) - h
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + h
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func muted(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(s)
}
