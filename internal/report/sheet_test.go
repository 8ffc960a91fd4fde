package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/horeca/internal/model"
)

func TestWriteDishSheet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fichas")
	d := model.Dish{
		ID: 12, ClientName: "Casa Pepe", Name: "Tortilla de patatas", Category: "Entrantes",
		SalePrice: decimal.NewFromInt(9), TotalCost: decimal.RequireFromString("1.87"),
		MarginAmount: decimal.RequireFromString("7.13"), MarginPct: decimal.RequireFromString("79.2222"),
		FoodCostPct: decimal.RequireFromString("20.7778"), Classification: model.Estrella,
		RecommendedPrice: decimal.RequireFromString("5.61"),
	}
	lines := []model.RecipeLine{{
		IngredientName: "Aceite de oliva virgen extra de la sierra de Cazorla",
		Quantity:       decimal.RequireFromString("0.2"), Unit: "Litro",
		UnitCost: decimal.RequireFromString("9.35"), LineCost: decimal.RequireFromString("1.87"),
		PctOfDish: decimal.NewFromInt(100),
	}}

	path, err := WriteDishSheet(dir, "HORECA Consulting", d, lines)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ficha_12.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))

	head := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestWriteDishSheet_NoLines(t *testing.T) {
	path, err := WriteDishSheet(t.TempDir(), "HORECA Consulting", model.Dish{ID: 3, Name: "Caña"}, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
