package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/horeca/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "horeca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed creates one client, one ingredient, a price and a dish.
func seed(t *testing.T, s *Store) (model.Client, model.Ingredient, model.ClientPrice, model.Dish) {
	t.Helper()
	ctx := context.Background()

	c := model.Client{Name: "Casa Pepe", City: "Sevilla", MRR: dec("450"), Active: true}
	require.NoError(t, s.CreateClient(ctx, &c))

	ing := model.Ingredient{Name: "Aceite de oliva", Category: "Aceites", Unit: "Litro", MarketPrice: dec("8.50")}
	require.NoError(t, s.CreateIngredient(ctx, &ing))

	cp := model.ClientPrice{
		ClientID: c.ID, IngredientID: ing.ID, Price: dec("9.35"), Unit: "Litro",
		ReferencePrice: dec("8.50"), DeviationPct: dec("10"), Supplier: "Makro",
	}
	require.NoError(t, s.CreateClientPrice(ctx, &cp))

	d := model.Dish{ClientID: c.ID, Name: "Tortilla", Category: "Entrantes", SalePrice: dec("9"), MonthlyVolume: 60, Active: true}
	require.NoError(t, s.CreateDish(ctx, &d))

	return c, ing, cp, d
}

func TestOpen_CreatesSchemaTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horeca.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestClientsRoundTrip(t *testing.T) {
	s := openTest(t)
	c, _, _, _ := seed(t, s)

	got, err := s.Client(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa Pepe", got.Name)
	assert.True(t, got.MRR.Equal(dec("450")))
	assert.True(t, got.Active)

	_, err = s.Client(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.Clients(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestClientPrice_DuplicateBlocked(t *testing.T) {
	s := openTest(t)
	c, ing, _, _ := seed(t, s)

	dup := model.ClientPrice{ClientID: c.ID, IngredientID: ing.ID, Price: dec("1"), ReferencePrice: dec("1"), DeviationPct: dec("0")}
	err := s.CreateClientPrice(context.Background(), &dup)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestClientPrice_JoinsNames(t *testing.T) {
	s := openTest(t)
	c, ing, cp, _ := seed(t, s)

	got, err := s.ClientPrice(context.Background(), c.ID, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, cp.ID, got.ID)
	assert.Equal(t, "Casa Pepe", got.ClientName)
	assert.Equal(t, "Aceite de oliva", got.IngredientName)
	assert.True(t, got.DeviationPct.Equal(dec("10")))
	assert.Equal(t, int64(1), got.Version)

	_, err = s.ClientPrice(context.Background(), c.ID, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateIngredient_OptimisticVersion(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	_, ing, _, _ := seed(t, s)

	first, err := s.Ingredient(ctx, ing.ID)
	require.NoError(t, err)
	stale := first

	first.MarketPrice = dec("9.10")
	require.NoError(t, s.UpdateIngredient(ctx, &first))
	assert.Equal(t, int64(2), first.Version)

	stale.MarketPrice = dec("7")
	err = s.UpdateIngredient(ctx, &stale)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := s.Ingredient(ctx, ing.ID)
	require.NoError(t, err)
	assert.True(t, got.MarketPrice.Equal(dec("9.10")), "stale write must not land, got %s", got.MarketPrice)

	missing := model.Ingredient{ID: 777, Version: 1}
	assert.ErrorIs(t, s.UpdateIngredient(ctx, &missing), ErrNotFound)
}

func TestUpdateClientPrice(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	c, ing, cp, _ := seed(t, s)

	cp.Price = dec("10.20")
	cp.DeviationPct = dec("20")
	require.NoError(t, s.UpdateClientPrice(ctx, &cp))

	got, err := s.ClientPrice(ctx, c.ID, ing.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(dec("10.20")))
	assert.Equal(t, int64(2), got.Version)
}

func TestDishesAndLines(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	c, ing, _, d := seed(t, s)

	l := model.RecipeLine{DishID: d.ID, IngredientID: ing.ID, Quantity: dec("0.05"), Unit: "Litro",
		UnitCost: dec("9.35"), LineCost: dec("0.4675"), Supplier: "Makro"}
	require.NoError(t, s.CreateRecipeLine(ctx, &l))

	lines, err := s.RecipeLines(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Tortilla", lines[0].DishName)
	assert.Equal(t, "Aceite de oliva", lines[0].IngredientName)
	assert.True(t, lines[0].LineCost.Equal(dec("0.4675")))

	dishes, err := s.Dishes(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "Casa Pepe", dishes[0].ClientName)

	other, err := s.Dishes(ctx, c.ID+1)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = s.Dish(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRecompute_AllOrNothing(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	c, _, _, d := seed(t, s)

	second := model.Dish{ClientID: c.ID, Name: "Flan", SalePrice: dec("4"), Active: true}
	require.NoError(t, s.CreateDish(ctx, &second))

	dishes, err := s.Dishes(ctx, 0)
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	// Someone else writes the second dish first.
	concurrent := dishes[1]
	concurrent.Notes = "edited elsewhere"
	require.NoError(t, s.UpdateDish(ctx, &concurrent))

	dishes[0].TotalCost = dec("2.5")
	dishes[1].TotalCost = dec("1.1")
	err = s.SaveRecompute(ctx, dishes, nil)
	require.ErrorIs(t, err, ErrConflict)

	got, err := s.Dish(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.IsZero(), "first dish must be rolled back, got %s", got.TotalCost)
	assert.Equal(t, int64(1), dishes[0].Version)

	fresh, err := s.Dishes(ctx, 0)
	require.NoError(t, err)
	fresh[0].TotalCost = dec("2.5")
	require.NoError(t, s.SaveRecompute(ctx, fresh, nil))
	assert.Equal(t, int64(2), fresh[0].Version)

	got, err = s.Dish(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCost.Equal(dec("2.5")))
}

func TestPurchaseLines(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	c, ing, _, _ := seed(t, s)

	for _, price := range []string{"9", "11"} {
		p := model.PurchaseLine{ClientID: c.ID, IngredientID: ing.ID, IngredientName: "Aceite de oliva",
			Quantity: dec("5"), UnitPrice: dec(price)}
		require.NoError(t, s.CreatePurchaseLine(ctx, &p))
	}
	orphan := model.PurchaseLine{IngredientID: 999, Quantity: dec("1"), UnitPrice: dec("1")}
	require.NoError(t, s.CreatePurchaseLine(ctx, &orphan))

	all, err := s.PurchaseLines(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].UnitPrice.Equal(dec("9")))
	assert.False(t, all[0].PurchasedAt.IsZero())

	mine, err := s.PurchaseLines(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestImportAndLoad(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	ds := model.Dataset{
		Clients:     []model.Client{{ID: 7, Name: "El Faro", Active: true, MRR: dec("300")}},
		Ingredients: []model.Ingredient{{ID: 101, Name: "Pulpo", Unit: "KG", MarketPrice: dec("18")}},
		Prices: []model.ClientPrice{{ID: 5, ClientID: 7, IngredientID: 101, Price: dec("19.8"),
			ReferencePrice: dec("18"), DeviationPct: dec("10")}},
		Dishes: []model.Dish{{ID: 33, ClientID: 7, Name: "Pulpo a feira", SalePrice: dec("16"), Active: true}},
		Lines: []model.RecipeLine{{ID: 900, DishID: 33, IngredientID: 101, Quantity: dec("0.25"),
			UnitCost: dec("19.8"), LineCost: dec("4.95")}},
		Purchases: []model.PurchaseLine{{ClientID: 7, IngredientID: 101, Quantity: dec("3"), UnitPrice: dec("22")}},
	}
	require.NoError(t, s.Import(ctx, ds))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Clients, 1)
	assert.Len(t, got.Ingredients, 1)
	assert.Len(t, got.Prices, 1)
	assert.Len(t, got.Dishes, 1)
	assert.Len(t, got.Purchases, 1)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(900), got.Lines[0].ID)
	assert.Equal(t, int64(33), got.Dishes[0].ID)
	assert.Equal(t, "El Faro", got.Dishes[0].ClientName)

	// Re-importing the same IDs fails as a whole.
	err = s.Import(ctx, ds)
	assert.ErrorIs(t, err, ErrDuplicate)
}
