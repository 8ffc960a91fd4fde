package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/horeca/internal/config"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTest(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "horeca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st, config.DefaultConfig())
}

type fixture struct {
	client model.Client
	oil    model.Ingredient
	dish   model.Dish
}

func setup(t *testing.T, s *Service) fixture {
	t.Helper()
	ctx := context.Background()

	c, err := s.CreateClient(ctx, NewClient{Name: "Casa Pepe", City: "Sevilla", MRR: dec("450"), Active: true})
	require.NoError(t, err)
	oil, err := s.CreateIngredient(ctx, NewIngredient{Name: "Aceite de oliva", Unit: "Litro", MarketPrice: dec("8.50")})
	require.NoError(t, err)
	d, err := s.CreateDish(ctx, NewDish{ClientID: c.ID, Name: "Tortilla", SalePrice: dec("9"), MonthlyVolume: 60, Active: true})
	require.NoError(t, err)
	return fixture{client: c, oil: oil, dish: d}
}

func TestValidationErrors(t *testing.T) {
	s := newTest(t)
	ctx := context.Background()

	_, err := s.CreateClient(ctx, NewClient{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Name is required")

	_, err = s.CreateIngredient(ctx, NewIngredient{Name: "Sal", MarketPrice: dec("0")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "MarketPrice must be greater than 0")

	_, err = s.CreateDish(ctx, NewDish{ClientID: 1, Name: "Gazpacho", SalePrice: dec("-1")})
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = s.AddRecipeLine(ctx, NewRecipeLine{DishID: 1, IngredientID: 1, Quantity: dec("0")})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateDish_ClassifiesManualCost(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)

	d, err := s.CreateDish(context.Background(), NewDish{
		ClientID: f.client.ID, Name: "Caña", SalePrice: dec("2"), ManualCost: dec("1.80"), MonthlyVolume: 10, Active: true,
	})
	require.NoError(t, err)
	assert.True(t, d.MarginPct.Equal(dec("10")), "margin %s", d.MarginPct)
	assert.True(t, d.FoodCostPct.Equal(dec("90")))
	assert.True(t, d.RecommendedPrice.Equal(dec("5.4")))
	assert.Equal(t, model.Perro, d.Classification)
	assert.Equal(t, "Casa Pepe", d.ClientName)
}

func TestCreateDish_UnknownClient(t *testing.T) {
	s := newTest(t)
	_, err := s.CreateDish(context.Background(), NewDish{ClientID: 42, Name: "Gazpacho", SalePrice: dec("6")})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAssignPrice(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()

	cp, err := s.AssignPrice(ctx, AssignPriceInput{ClientID: f.client.ID, IngredientID: f.oil.ID, Price: dec("9.35"), Supplier: "Makro"})
	require.NoError(t, err)
	assert.True(t, cp.ReferencePrice.Equal(dec("8.50")))
	assert.True(t, cp.DeviationPct.Equal(dec("10")), "deviation %s", cp.DeviationPct)
	assert.Equal(t, "Litro", cp.Unit)

	_, err = s.AssignPrice(ctx, AssignPriceInput{ClientID: f.client.ID, IngredientID: f.oil.ID, Price: dec("9")})
	require.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestUpdateMarketPrice_KeepsAssignedReference(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()

	_, err := s.AssignPrice(ctx, AssignPriceInput{ClientID: f.client.ID, IngredientID: f.oil.ID, Price: dec("9.35")})
	require.NoError(t, err)

	ing, err := s.UpdateMarketPrice(ctx, f.oil.ID, dec("10"))
	require.NoError(t, err)
	assert.True(t, ing.MarketPrice.Equal(dec("10")))

	book, err := s.PriceBook(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.True(t, book[0].ReferencePrice.Equal(dec("8.50")))
	assert.True(t, book[0].DeviationPct.Equal(dec("10")))
}

func TestAddRecipeLine_RequiresPriceBook(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)

	_, _, err := s.AddRecipeLine(context.Background(), NewRecipeLine{DishID: f.dish.ID, IngredientID: f.oil.ID, Quantity: dec("0.2")})
	require.ErrorIs(t, err, ErrNotInPriceBook)
}

func TestRecipeLifecycle(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()

	_, err := s.AssignPrice(ctx, AssignPriceInput{ClientID: f.client.ID, IngredientID: f.oil.ID, Price: dec("9.35"), Supplier: "Makro"})
	require.NoError(t, err)

	l, sum, err := s.AddRecipeLine(ctx, NewRecipeLine{DishID: f.dish.ID, IngredientID: f.oil.ID, Quantity: dec("0.2")})
	require.NoError(t, err)
	assert.True(t, l.UnitCost.Equal(dec("9.35")))
	assert.True(t, l.LineCost.Equal(dec("1.87")))
	assert.True(t, l.PctOfDish.Equal(dec("100")))
	assert.Equal(t, "Makro", l.Supplier)
	assert.Equal(t, 1, sum.DishesUpdated)

	d, lines, err := s.Recipe(ctx, f.dish.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, d.TotalCost.Equal(dec("1.87")))
	assert.True(t, d.MarginAmount.Equal(dec("7.13")))
	assert.True(t, d.RecommendedPrice.Equal(dec("5.61")))
	assert.Equal(t, model.Estrella, d.Classification)

	cp, sum, err := s.UpdateClientPrice(ctx, f.client.ID, f.oil.ID, dec("10.20"))
	require.NoError(t, err)
	assert.True(t, cp.DeviationPct.Equal(dec("20")), "deviation %s", cp.DeviationPct)
	assert.Equal(t, 1, sum.DishesUpdated)
	assert.Equal(t, 1, sum.LinesUpdated)

	d, lines, err = s.Recipe(ctx, f.dish.ID)
	require.NoError(t, err)
	assert.True(t, lines[0].UnitCost.Equal(dec("10.20")))
	assert.True(t, d.TotalCost.Equal(dec("2.04")))

	sum, err = s.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum.DishesUpdated)
	assert.Zero(t, sum.LinesUpdated)
}

func TestUpdateClientPrice_OnlyTouchesThatClient(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()

	other, err := s.CreateClient(ctx, NewClient{Name: "Bar Sur", Active: true})
	require.NoError(t, err)
	od, err := s.CreateDish(ctx, NewDish{ClientID: other.ID, Name: "Tostada", SalePrice: dec("3"), Active: true})
	require.NoError(t, err)

	for _, c := range []int64{f.client.ID, other.ID} {
		_, err := s.AssignPrice(ctx, AssignPriceInput{ClientID: c, IngredientID: f.oil.ID, Price: dec("9")})
		require.NoError(t, err)
	}
	_, _, err = s.AddRecipeLine(ctx, NewRecipeLine{DishID: f.dish.ID, IngredientID: f.oil.ID, Quantity: dec("0.1")})
	require.NoError(t, err)
	_, _, err = s.AddRecipeLine(ctx, NewRecipeLine{DishID: od.ID, IngredientID: f.oil.ID, Quantity: dec("0.1")})
	require.NoError(t, err)

	_, _, err = s.UpdateClientPrice(ctx, f.client.ID, f.oil.ID, dec("12"))
	require.NoError(t, err)

	_, lines, err := s.Recipe(ctx, od.ID)
	require.NoError(t, err)
	assert.True(t, lines[0].UnitCost.Equal(dec("9")))
}

func TestAlertsAndDashboard(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()

	_, err := s.CreateDish(ctx, NewDish{ClientID: f.client.ID, Name: "Caña", SalePrice: dec("2"), ManualCost: dec("1.80"), Active: true})
	require.NoError(t, err)
	_, err = s.RecordPurchase(ctx, NewPurchase{ClientID: f.client.ID, IngredientID: f.oil.ID, Quantity: dec("5"), UnitPrice: dec("10")})
	require.NoError(t, err)
	_, err = s.RecordPurchase(ctx, NewPurchase{ClientID: f.client.ID, IngredientID: f.oil.ID, Quantity: dec("5"), UnitPrice: dec("9")})
	require.NoError(t, err)
	// Unknown ingredients are stored but never alert.
	_, err = s.RecordPurchase(ctx, NewPurchase{ClientID: f.client.ID, IngredientID: 999, Quantity: dec("1"), UnitPrice: dec("100")})
	require.NoError(t, err)

	a, err := s.Alerts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, a.Price, 1)
	assert.Equal(t, "Aceite de oliva", a.Price[0].Ingredient)
	assert.True(t, a.Price[0].DeviationPct.Equal(dec("17.6")))
	assert.True(t, a.Savings.Equal(dec("7.5")))
	require.Len(t, a.Margin, 1)
	assert.Equal(t, "Caña", a.Margin[0].Dish)
	require.Len(t, a.FoodCost, 1)
	assert.Equal(t, 3, a.Count())

	other, err := s.Alerts(ctx, f.client.ID+1)
	require.NoError(t, err)
	assert.Zero(t, other.Count())

	dash, err := s.Dashboard(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Company.Clients)
	assert.Equal(t, 2, dash.Menu.Dishes)
	assert.Equal(t, 1, dash.Menu.LowMargin)
}
