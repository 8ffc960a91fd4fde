package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/tui/components"
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAlertsTab(cw, h int) string {
	t := theme.Active
	al := a.dash.Alerts
	th := a.svc.Thresholds()
	innerW := components.CardInnerWidth(cw)

	if al.Count() == 0 {
		return components.ContentCard("Alertas",
			lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).Render("Sin alertas. Todo dentro de umbral."), cw)
	}

	var b strings.Builder

	if len(al.Price) > 0 {
		rows := make([][]cell, 0, len(al.Price))
		for _, p := range al.Price {
			rows = append(rows, []cell{
				plain(p.Ingredient),
				plain(cli.FormatMoney(p.Paid)),
				cell{text: cli.FormatMoney(p.Reference), color: t.TextMuted},
				cell{text: cli.FormatSignedPct(p.DeviationPct), color: t.Bad},
				cell{text: cli.FormatMoney(p.PotentialSavings), color: t.Good},
			})
		}
		title := fmt.Sprintf("Precio de compra > %s  ahorro potencial %s",
			cli.FormatSignedPct(th.PriceDeviationPct), cli.FormatMoney(al.Savings))
		b.WriteString(components.ContentCard(title, renderGrid([]column{
			{title: "Ingrediente"},
			{title: "Pagado", width: 12, right: true},
			{title: "Mercado", width: 12, right: true},
			{title: "Desviación", width: 10, right: true},
			{title: "Ahorro", width: 12, right: true},
		}, rows, -1, innerW), cw))
		b.WriteString("\n")
	}

	if len(al.Margin) > 0 {
		rows := make([][]cell, 0, len(al.Margin))
		for _, m := range al.Margin {
			rows = append(rows, []cell{
				plain(m.Dish),
				cell{text: m.Client, color: t.TextMuted},
				plain(cli.FormatMoney(m.SalePrice)),
				plain(cli.FormatMoney(m.Cost)),
				cell{text: cli.FormatPct(m.MarginPct), color: t.Bad},
			})
		}
		b.WriteString(components.ContentCard("Margen < "+cli.FormatPct(th.MarginFloorPct), renderGrid([]column{
			{title: "Plato"},
			{title: "Cliente", width: 16},
			{title: "PVP", width: 10, right: true},
			{title: "Coste", width: 10, right: true},
			{title: "Margen", width: 8, right: true},
		}, rows, -1, innerW), cw))
		b.WriteString("\n")
	}

	if len(al.FoodCost) > 0 {
		rows := make([][]cell, 0, len(al.FoodCost))
		for _, f := range al.FoodCost {
			rows = append(rows, []cell{
				plain(f.Dish),
				cell{text: f.Client, color: t.TextMuted},
				cell{text: cli.FormatPct(f.FoodCostPct), color: t.Warn},
			})
		}
		b.WriteString(components.ContentCard("Food cost > "+cli.FormatPct(th.FoodCostCeilingPct), renderGrid([]column{
			{title: "Plato"},
			{title: "Cliente", width: 16},
			{title: "Food cost", width: 9, right: true},
		}, rows, -1, innerW), cw))
	}

	lines := strings.Split(b.String(), "\n")
	return strings.Join(scrollRows(lines, a.scroll, h), "\n")
}
