package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/tui/components"
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const summaryBars = 8

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	dash := a.dash
	floor := a.svc.Thresholds().MarginFloorPct
	var b strings.Builder

	// Row 1: metric cards
	cards := []components.Metric{
		{
			Label: "Clientes",
			Value: fmt.Sprintf("%d / %d", dash.Company.ActiveClients, dash.Company.Clients),
			Delta: "MRR " + cli.FormatMoney(dash.Company.MRR),
		},
		{
			Label: "Platos activos",
			Value: fmt.Sprintf("%d", dash.Menu.Active),
			Delta: fmt.Sprintf("%d en carta", dash.Menu.Dishes),
		},
		{
			Label: "Margen medio",
			Value: cli.FormatPct(dash.Menu.AvgMarginPct),
			Delta: fmt.Sprintf("%d estrellas · %d bajo mínimo", dash.Menu.Stars, dash.Menu.LowMargin),
			Color: t.Margin(dash.Menu.AvgMarginPct, floor),
		},
		{
			Label: "Alertas",
			Value: fmt.Sprintf("%d", dash.Alerts.Count()),
			Delta: "ahorro " + cli.FormatMoney(dash.Alerts.Savings),
			Color: alertColor(dash.Alerts.Count()),
		},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: menu-engineering matrix + lowest margins
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	quad := components.ContentCard("Ingeniería de menú",
		components.Quadrant(dash.Menu.ByClass, components.CardInnerWidth(halves[0])), halves[0])

	lowBody := muted("Sin platos activos")
	if bars := lowestMarginBars(a.dishes, floor); len(bars) > 0 {
		lowBody = components.HBars(bars, components.CardInnerWidth(halves[1]))
	}
	low := components.ContentCard("Margen más bajo", lowBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(quad)
		b.WriteString("\n")
		b.WriteString(low)
	} else {
		b.WriteString(components.CardRow([]string{quad, low}))
	}
	b.WriteString("\n")

	// Row 3: price book
	pb := dash.PriceBook
	pbBody := fmt.Sprintf("%s %d   %s %s   %s %s   %s %d",
		muted("Ingredientes"), pb.Ingredients,
		muted("Precio medio"), cli.FormatMoney(pb.AvgPrice),
		muted("Desviación media"), cli.FormatSignedPct(pb.AvgDeviationPct),
		muted("Por encima de mercado"), pb.AboveMarket)
	b.WriteString(components.ContentCard("Tarifa de precios", pbBody, cw))

	return b.String()
}

// lowestMarginBars returns the active dishes with the smallest margin first.
func lowestMarginBars(dishes []model.Dish, floor decimal.Decimal) []components.Bar {
	t := theme.Active

	var active []model.Dish
	for _, d := range dishes {
		if d.Active && d.SalePrice.IsPositive() {
			active = append(active, d)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].MarginPct.LessThan(active[j].MarginPct)
	})
	if len(active) > summaryBars {
		active = active[:summaryBars]
	}

	bars := make([]components.Bar, 0, len(active))
	for _, d := range active {
		bars = append(bars, components.Bar{
			Label:   d.Name,
			Value:   d.MarginPct.InexactFloat64(),
			Display: cli.FormatPct(d.MarginPct),
			Color:   t.Margin(d.MarginPct, floor),
		})
	}
	return bars
}

func alertColor(n int) lipgloss.Color {
	t := theme.Active
	if n == 0 {
		return t.Good
	}
	return t.Warn
}
