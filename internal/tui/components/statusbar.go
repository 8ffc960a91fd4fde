package components

import (
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. scope names the client
// in view, info is right-aligned (data age or a transient message).
func RenderStatusBar(width int, scope, info string, busy bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	scopeStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	left := " " + keyStyle.Render("[?]") + textStyle.Render("ayuda  ") +
		keyStyle.Render("[ ]") + textStyle.Render("cliente  ") +
		keyStyle.Render("[r]") + textStyle.Render("recalcular  ") +
		keyStyle.Render("[q]") + textStyle.Render("salir  ") +
		scopeStyle.Render(scope)

	right := info
	if busy {
		right = "recalculando…"
	}
	if right != "" {
		right = textStyle.Render(right + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Render(left + lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("") + right)
}
