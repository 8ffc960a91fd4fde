package source

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook with one sheet per entry of sheets.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(path))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeWorkbook(t, filepath.Join(dir, CRMWorkbook), map[string][][]any{
		SheetClients: {
			{"ID", "Nombre Comercial", "CIF", "Tipo Local", "Ciudad", "Estado", "MRR", "Precio Mensual"},
			{1, "Casa Pepe", "B123", "Bar", "Sevilla", "Activo", 450, 450},
			{},
			{2, "La Esquina", "B456", "Restaurante", "Cádiz", "Baja", "", 300},
		},
	})

	writeWorkbook(t, filepath.Join(dir, OperationsWorkbook), map[string][][]any{
		SheetIngredients: {
			{"ID Ingrediente", "Nombre", "Categoría", "Unidad Compra", "Precio Mercado Medio", "Var % Semana", "Var % Mes", "Última Actualización", "Estacionalidad", "Notas"},
			{1, "Aceite de oliva", "Aceites", "Litro", 8.5, 0, 0, "2024-03-01", "Todo el año", ""},
			{2, "Huevos", "Huevos", "Docena", "3,20", 0, 0, "", "", ""},
			{3, "Patata", "Verduras", "Kg", "caro", 0, 0, "", "", ""},
		},
		SheetPrices: {
			{"ID Precio", "ID Cliente", "Nombre Cliente", "ID Ingrediente", "Nombre Ingrediente", "Precio Cliente", "Unidad", "Precio Mercado Referencia", "Desviación %", "Última Actualización", "Proveedor", "Notas"},
			{1, 1, "Casa Pepe", 1, "Aceite de oliva", 9.35, "Litro", 8.5, 10, "", "Makro", ""},
			{2, 7, "Bar Nuevo", 2, "Huevos", 3.5, "Docena", 3.2, 9.4, "", "", ""},
		},
		SheetDishes: {
			{"ID Plato", "ID Cliente", "Nombre Cliente", "Nombre Plato", "Categoría", "Precio Venta", "Coste Total", "Margen €", "Margen %", "Food Cost %", "Ventas/Mes", "Clasificación", "Precio Recomendado", "Activo", "Notas"},
			{1, 1, "Casa Pepe", "Tortilla", "Entrantes", 9, 1.87, 7.13, 79.2, 20.8, 60, "Estrella", 5.61, "Sí", ""},
			{2, 1, "Casa Pepe", "Tostada", "Desayunos", 3, 0, 3, 100, 0, 10, "", 0, "No", ""},
		},
		SheetLines: {
			{"ID Escandallo", "ID Plato", "Nombre Plato", "ID Ingrediente", "Nombre Ingrediente", "Cantidad", "Unidad", "Coste Unitario", "Coste Total", "% del Plato", "Proveedor Actual", "Última Actualización"},
			{1, 1, "Tortilla", 1, "Aceite de oliva", 0.2, "Litro", 9.35, 1.87, 100, "Makro", ""},
			{2, 9, "Fantasma", 1, "Aceite de oliva", 1, "Litro", 9.35, 9.35, 100, "", ""},
		},
	})
	return dir
}

func TestReadDir(t *testing.T) {
	ds, rep, err := ReadDir(fixtureDir(t))
	require.NoError(t, err)

	assert.Len(t, rep.Files, 2)
	assert.Equal(t, []string{SheetPurchases}, rep.MissingSheets)

	// Two CRM clients plus a placeholder for client 7 from the price book.
	require.Len(t, ds.Clients, 3)
	assert.Equal(t, "Casa Pepe", ds.Clients[0].Name)
	assert.True(t, ds.Clients[0].Active)
	assert.False(t, ds.Clients[1].Active)
	assert.True(t, ds.Clients[1].MRR.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, int64(7), ds.Clients[2].ID)
	assert.Equal(t, "Bar Nuevo", ds.Clients[2].Name)
	assert.Equal(t, 1, rep.Placeholders)

	// Patata has an unparsable price and is skipped.
	require.Len(t, ds.Ingredients, 2)
	assert.True(t, ds.Ingredients[1].MarketPrice.Equal(decimal.RequireFromString("3.2")))
	assert.Equal(t, 2, rep.Rows[SheetIngredients])

	require.Len(t, ds.Prices, 2)
	require.Len(t, ds.Dishes, 2)
	assert.False(t, ds.Dishes[1].Active)
	assert.Equal(t, 60, ds.Dishes[0].MonthlyVolume)

	// The line of the unknown dish is dropped.
	require.Len(t, ds.Lines, 1)
	assert.True(t, ds.Lines[0].Quantity.Equal(decimal.RequireFromString("0.2")))

	require.Len(t, rep.Errors, 2)
	assert.Equal(t, SheetIngredients, rep.Errors[0].Sheet)
	assert.Equal(t, 4, rep.Errors[0].Row)
	assert.Equal(t, "Precio Mercado Medio", rep.Errors[0].Column)
	assert.Contains(t, rep.Errors[1].Error(), "unknown dish 9")
}

var ingredientHeader = []any{"ID Ingrediente", "Nombre", "Categoría", "Unidad Compra", "Precio Mercado Medio", "Var % Semana", "Var % Mes", "Última Actualización", "Estacionalidad", "Notas"}

func TestReadDir_IgnoresNumberFormats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, OperationsWorkbook)

	f := excelize.NewFile()
	_, err := f.NewSheet(SheetIngredients)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))
	header := ingredientHeader
	require.NoError(t, f.SetSheetRow(SheetIngredients, "A1", &header))
	row := []any{1, "Azafrán", "Especias", "Gramo", 0.0045, 0, 0, 45352, "", ""}
	require.NoError(t, f.SetSheetRow(SheetIngredients, "A2", &row))

	twoPlaces, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(SheetIngredients, "E2", "E2", twoPlaces))
	shortDate, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(SheetIngredients, "H2", "H2", shortDate))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, rep, err := ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, rep.Errors)
	require.Len(t, ds.Ingredients, 1)
	ing := ds.Ingredients[0]
	assert.True(t, ing.MarketPrice.Equal(decimal.RequireFromString("0.0045")), "market price %s", ing.MarketPrice)
	assert.True(t, ing.UpdatedAt.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "updated %s", ing.UpdatedAt)
}

func TestReadDir_DuplicatePricesKeepFirst(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, OperationsWorkbook), map[string][][]any{
		SheetIngredients: {
			ingredientHeader,
			{1, "Aceite de oliva", "Aceites", "Litro", 8.5, 0, 0, "", "", ""},
		},
		SheetPrices: {
			{"ID Precio", "ID Cliente", "Nombre Cliente", "ID Ingrediente", "Nombre Ingrediente", "Precio Cliente", "Unidad", "Precio Mercado Referencia", "Desviación %", "Última Actualización", "Proveedor", "Notas"},
			{1, 1, "Casa Pepe", 1, "Aceite de oliva", 9.35, "Litro", 8.5, 10, "", "Makro", ""},
			{2, 1, "Casa Pepe", 1, "Aceite de oliva", 9.9, "Litro", 8.5, 16.5, "", "Metro", ""},
		},
	})

	ds, rep, err := ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, ds.Prices, 1)
	assert.True(t, ds.Prices[0].Price.Equal(decimal.RequireFromString("9.35")))
	assert.Equal(t, "Makro", ds.Prices[0].Supplier)

	require.Len(t, rep.Errors, 1)
	assert.Equal(t, SheetPrices, rep.Errors[0].Sheet)
	assert.Contains(t, rep.Errors[0].Error(), "duplicate price for client 1, ingredient 1")
}

func TestReadDir_NoWorkbooks(t *testing.T) {
	_, _, err := ReadDir(t.TempDir())
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8.5", "8.5"},
		{"3,20", "3.2"},
		{"1.234,56 €", "1234.56"},
		{"1,234.56", "1234.56"},
		{"12.5%", "12.5"},
		{"-3", "-3"},
		{"1.234 €", "1234"},
		{"12.500.000€", "12500000"},
		{"1.234", "1.234"},
		{"1.5 €", "1.5"},
		{"0.0045", "0.0045"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
	}

	_, err := ParseAmount("caro")
	assert.Error(t, err)
}
