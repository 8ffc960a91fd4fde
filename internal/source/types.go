package source

import "fmt"

// Legacy workbook and sheet names.
const (
	CRMWorkbook        = "CRM_CLIENTES.xlsx"
	OperationsWorkbook = "OPERACIONES_ESCANDALLOS.xlsx"

	SheetClients     = "CLIENTES_ACTIVOS"
	SheetIngredients = "INGREDIENTES_MAESTRO"
	SheetPrices      = "PRECIOS_POR_CLIENTE"
	SheetDishes      = "CARTA_CLIENTES"
	SheetLines       = "ESCANDALLOS"
	SheetPurchases   = "LINEAS_COMPRA"
)

// RowError describes a row that was skipped.
type RowError struct {
	Sheet  string
	Row    int // 1-based spreadsheet row, 0 for cross-sheet checks
	Column string
	Reason string
}

func (e RowError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s, %s: %s", e.Sheet, e.Column, e.Reason)
	}
	if e.Column == "" {
		return fmt.Sprintf("%s row %d: %s", e.Sheet, e.Row, e.Reason)
	}
	return fmt.Sprintf("%s row %d, %s: %s", e.Sheet, e.Row, e.Column, e.Reason)
}

// Report summarizes an import.
type Report struct {
	Files         []string       // workbooks found
	MissingSheets []string       // sheets absent from their workbook
	Rows          map[string]int // rows read per sheet
	Placeholders  int            // clients created from names in other sheets
	Errors        []RowError
}

func newReport() Report {
	return Report{Rows: make(map[string]int)}
}

func (r *Report) skip(sheet string, row int, column, reason string) {
	r.Errors = append(r.Errors, RowError{Sheet: sheet, Row: row, Column: column, Reason: reason})
}
