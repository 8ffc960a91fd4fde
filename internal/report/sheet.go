// Package report renders printable dish cost sheets.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/model"
)

// FileName returns the cost sheet file name for a dish.
func FileName(d model.Dish) string {
	return fmt.Sprintf("ficha_%d.pdf", d.ID)
}

// WriteDishSheet writes an A4 cost sheet for dish and its recipe lines into
// dir (created if needed) and returns the file path.
func WriteDishSheet(dir, company string, d model.Dish, lines []model.RecipeLine) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(d))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Ficha técnica "+d.Name, true)
	pdf.SetCreator(company, true)
	pdf.AddPage()
	// Core fonts are cp1252; this maps accents and the euro sign.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr(company), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, tr("Ficha técnica · "+d.ClientName), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, time.Now().Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.Ln(3)
	pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(d.Name), "", 1, "L", false, 0, "")
	if d.Category != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 5, tr(d.Category), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Lines
	widths := []float64{contentW * 0.34, contentW * 0.14, contentW * 0.16, contentW * 0.16, contentW * 0.20}
	headers := []string{"Ingrediente", "Cantidad", "Coste unit.", "Coste", "% del plato"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 230)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 6, tr(h), "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range lines {
		name := l.IngredientName
		if len([]rune(name)) > 32 {
			name = string([]rune(name)[:31]) + "…"
		}
		cells := []string{
			name,
			cli.FormatQty(l.Quantity, l.Unit),
			cli.FormatMoney(l.UnitCost),
			cli.FormatMoney(l.LineCost),
			cli.FormatPct(l.PctOfDish),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 5.5, tr(c), "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(lines) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, tr("Sin escandallo: coste introducido manualmente"), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
	pdf.Ln(3)

	// Totals
	labelW := contentW * 0.64
	valueW := contentW - labelW
	total := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, tr(value), "", 1, "R", false, 0, "")
	}
	total("Coste total", cli.FormatMoney(d.TotalCost), true)
	total("Precio de venta", cli.FormatMoney(d.SalePrice), false)
	total("Margen", fmt.Sprintf("%s (%s)", cli.FormatMoney(d.MarginAmount), cli.FormatPct(d.MarginPct)), false)
	total("Food cost", cli.FormatPct(d.FoodCostPct), false)
	total("Clasificación", string(d.Classification), false)
	total("Precio recomendado", cli.FormatMoney(d.RecommendedPrice), true)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("report: write file: %w", err)
	}
	return path, nil
}
