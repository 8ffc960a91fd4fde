package components

import (
	"strings"

	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Resumen", Key: '1'},
	{Name: "Carta", Key: '2'},
	{Name: "Escandallo", Key: '3'},
	{Name: "Precios", Key: '4'},
	{Name: "Alertas", Key: '5'},
}

const tabGap = "  "

// TabVisualWidth returns the rendered width of the tab label at idx,
// including its "[n]" shortcut prefix when inactive.
func TabVisualWidth(idx int, activeIdx int) int {
	tab := Tabs[idx]
	if idx == activeIdx {
		return lipgloss.Width(" " + tab.Name + " ")
	}
	return lipgloss.Width("[" + string(tab.Key) + "]" + tab.Name)
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background)

	gap := lipgloss.NewStyle().Background(t.Background).Render(tabGap)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(" "+tab.Name+" "))
			continue
		}
		parts = append(parts, dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Key))+
			dimKeyStyle.Render("]")+inactiveStyle.Render(tab.Name))
	}

	row := " " + strings.Join(parts, gap)
	return lipgloss.NewStyle().Background(t.Background).Width(width).Render(row)
}

// TabAtX returns the tab under column x of the tab bar, or -1.
func TabAtX(x int, activeIdx int) int {
	pos := 1
	for i := range Tabs {
		w := TabVisualWidth(i, activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + len(tabGap)
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
