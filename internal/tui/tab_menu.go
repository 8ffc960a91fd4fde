package tui

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/tui/components"
	"github.com/theirongolddev/horeca/internal/tui/theme"
)

func (a App) renderMenuTab(cw, h int) string {
	t := theme.Active
	floor := a.svc.Thresholds().MarginFloorPct
	ceiling := a.svc.Thresholds().FoodCostCeilingPct

	if len(a.dishes) == 0 {
		return components.ContentCard("Carta", muted("Sin platos. Pulsa n para crear uno."), cw)
	}

	cols := []column{
		{title: "Plato"},
		{title: "PVP", width: 10, right: true},
		{title: "Coste", width: 10, right: true},
		{title: "Margen", width: 8, right: true},
		{title: "Food cost", width: 9, right: true},
		{title: "Uds/mes", width: 7, right: true},
		{title: "Clase", width: 12},
	}
	if !a.isCompactLayout() {
		cols = append(cols[:1], append([]column{{title: "Categoría", width: 14}}, cols[1:]...)...)
		if a.scope == 0 {
			cols = append(cols[:1], append([]column{{title: "Cliente", width: 16}}, cols[1:]...)...)
		}
	}

	// card border (2) + title (1) + header and rule (2)
	visible := h - 5
	start, end := window(len(a.dishes), a.cursor, 0, visible)

	rows := make([][]cell, 0, end-start)
	for _, d := range a.dishes[start:end] {
		name := d.Name
		if !d.Active {
			name += " (inactivo)"
		}
		foodColor := t.TextPrimary
		if d.FoodCostPct.GreaterThan(ceiling) {
			foodColor = t.Bad
		}
		row := []cell{plain(name)}
		if !a.isCompactLayout() {
			if a.scope == 0 {
				row = append(row, cell{text: d.ClientName, color: t.TextMuted})
			}
			row = append(row, cell{text: d.Category, color: t.TextMuted})
		}
		row = append(row,
			plain(cli.FormatMoney(d.SalePrice)),
			plain(cli.FormatMoney(d.TotalCost)),
			cell{text: cli.FormatPct(d.MarginPct), color: t.Margin(d.MarginPct, floor)},
			cell{text: cli.FormatPct(d.FoodCostPct), color: foodColor},
			plain(cli.FormatNumber(int64(d.MonthlyVolume))),
			cell{text: string(d.Classification), color: t.Class(d.Classification)},
		)
		rows = append(rows, row)
	}

	title := fmt.Sprintf("Carta  %d platos  [%d/%d]", len(a.dishes), a.cursor+1, len(a.dishes))
	body := renderGrid(cols, rows, a.cursor-start, components.CardInnerWidth(cw))
	return components.ContentCard(title, body, cw)
}
