package tui

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/tui/components"
	"github.com/theirongolddev/horeca/internal/tui/theme"
)

func (a App) renderPricesTab(cw, h int) string {
	t := theme.Active
	warn := a.svc.Thresholds().PriceBookWarnPct

	if len(a.prices) == 0 {
		return components.ContentCard("Tarifa de precios", muted("Sin precios asignados."), cw)
	}

	cols := []column{
		{title: "Ingrediente"},
		{title: "Precio", width: 14, right: true},
		{title: "Mercado", width: 14, right: true},
		{title: "Desviación", width: 10, right: true},
		{title: "Proveedor", width: 18},
	}
	if a.scope == 0 {
		cols = append([]column{{title: "Cliente", width: 16}}, cols...)
	}

	rows := make([][]cell, 0, len(a.prices))
	for _, p := range a.prices {
		devColor := t.TextPrimary
		switch {
		case p.DeviationPct.GreaterThan(warn):
			devColor = t.Bad
		case p.DeviationPct.IsNegative():
			devColor = t.Good
		}
		var row []cell
		if a.scope == 0 {
			row = append(row, cell{text: p.ClientName, color: t.TextMuted})
		}
		row = append(row,
			plain(p.IngredientName),
			plain(cli.FormatUnitPrice(p.Price, p.Unit)),
			cell{text: cli.FormatUnitPrice(p.ReferencePrice, p.Unit), color: t.TextMuted},
			cell{text: cli.FormatSignedPct(p.DeviationPct), color: devColor},
			cell{text: p.Supplier, color: t.TextMuted},
		)
		rows = append(rows, row)
	}

	pb := a.dash.PriceBook
	title := fmt.Sprintf("Tarifa de precios  %d ingredientes  desviación media %s  %d sobre mercado",
		pb.Ingredients, cli.FormatSignedPct(pb.AvgDeviationPct), pb.AboveMarket)
	rows = scrollRows(rows, a.scroll, h-5)
	return components.ContentCard(title, renderGrid(cols, rows, -1, components.CardInnerWidth(cw)), cw)
}
