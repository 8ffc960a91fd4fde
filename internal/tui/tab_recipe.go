package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/tui/components"
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderRecipeTab(cw int) string {
	t := theme.Active
	th := a.svc.Thresholds()

	d, ok := a.selected()
	if !ok {
		return components.ContentCard("Escandallo", muted("Selecciona un plato en la carta."), cw)
	}

	var b strings.Builder

	// Row 1: dish metrics
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "PVP", Value: cli.FormatMoney(d.SalePrice), Delta: d.ClientName},
		{Label: "Coste", Value: cli.FormatMoney(d.TotalCost), Delta: fmt.Sprintf("%d ingredientes", len(a.lines))},
		{
			Label: "Margen",
			Value: cli.FormatMoney(d.MarginAmount),
			Delta: cli.FormatPct(d.MarginPct),
			Color: t.Margin(d.MarginPct, th.MarginFloorPct),
		},
		{
			Label: "Clasificación",
			Value: string(d.Classification),
			Delta: "precio recomendado " + cli.FormatMoney(d.RecommendedPrice),
			Color: t.Class(d.Classification),
		},
	}, cw))
	b.WriteString("\n")

	// Row 2: recipe lines
	innerW := components.CardInnerWidth(cw)
	title := fmt.Sprintf("Escandallo  %s", d.Name)
	if len(a.lines) == 0 {
		b.WriteString(components.ContentCard(title, muted("Sin escandallo: el coste es manual."), cw))
	} else {
		cols := []column{
			{title: "Ingrediente"},
			{title: "Cantidad", width: 12, right: true},
			{title: "Coste unit.", width: 14, right: true},
			{title: "Coste línea", width: 11, right: true},
			{title: "% plato", width: 7, right: true},
		}
		if !a.isCompactLayout() {
			cols = append(cols, column{title: "Proveedor", width: 18})
		}

		rows := make([][]cell, 0, len(a.lines))
		bars := make([]components.Bar, 0, len(a.lines))
		for _, l := range a.lines {
			row := []cell{
				plain(l.IngredientName),
				plain(cli.FormatQty(l.Quantity, l.Unit)),
				cell{text: cli.FormatUnitPrice(l.UnitCost, l.Unit), color: t.TextMuted},
				plain(cli.FormatMoney(l.LineCost)),
				plain(cli.FormatPct(l.PctOfDish)),
			}
			if !a.isCompactLayout() {
				row = append(row, cell{text: l.Supplier, color: t.TextMuted})
			}
			rows = append(rows, row)
			bars = append(bars, components.Bar{
				Label:   l.IngredientName,
				Value:   l.PctOfDish.InexactFloat64(),
				Display: cli.FormatPct(l.PctOfDish),
			})
		}
		b.WriteString(components.ContentCard(title, renderGrid(cols, rows, -1, innerW), cw))
		b.WriteString("\n")

		halves := components.LayoutRow(cw, 2)
		share := components.ContentCard("Peso en el coste",
			components.HBars(bars, components.CardInnerWidth(halves[0])), halves[0])
		b.WriteString(components.CardRow([]string{share, a.renderGauges(halves[1])}))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(a.renderGauges(cw))
	return b.String()
}

// renderGauges shows the selected dish's margin and food cost against
// the configured thresholds.
func (a App) renderGauges(w int) string {
	t := theme.Active
	th := a.svc.Thresholds()
	d, _ := a.selected()

	innerW := components.CardInnerWidth(w)
	labelW := 10
	barW := innerW - labelW - 16
	if barW < 10 {
		barW = 10
	}

	food := components.ThresholdBar("Food cost", d.FoodCostPct.InexactFloat64(),
		th.FoodCostCeilingPct.InexactFloat64(), 100, labelW, barW)

	marginStyle := lipgloss.NewStyle().Foreground(t.Margin(d.MarginPct, th.MarginFloorPct)).Background(t.Surface).Bold(true)
	margin := muted(fmt.Sprintf("%-*s ", labelW, "Margen")) +
		marginStyle.Render(cli.FormatPct(d.MarginPct)) +
		muted(fmt.Sprintf("  mínimo %s", cli.FormatPct(th.MarginFloorPct)))

	body := food + "\n" + margin
	if d.Notes != "" {
		body += "\n\n" + muted(d.Notes)
	}
	return components.ContentCard("Umbrales", body, w)
}
