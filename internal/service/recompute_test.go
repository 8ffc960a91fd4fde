package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/horeca/internal/pipeline"
	"github.com/theirongolddev/horeca/internal/store"
)

func pricedLine(t *testing.T, s *Service, f fixture) {
	t.Helper()
	ctx := context.Background()
	_, err := s.AssignPrice(ctx, AssignPriceInput{ClientID: f.client.ID, IngredientID: f.oil.ID, Price: dec("9.35")})
	require.NoError(t, err)
	_, _, err = s.AddRecipeLine(ctx, NewRecipeLine{DishID: f.dish.ID, IngredientID: f.oil.ID, Quantity: dec("0.2")})
	require.NoError(t, err)
}

func TestRecomputeAll_SyncsLinesFromPriceBook(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()
	pricedLine(t, s, f)

	// A price saved without the follow-up recompute.
	cp, err := s.store.ClientPrice(ctx, f.client.ID, f.oil.ID)
	require.NoError(t, err)
	cp = pipeline.Reprice(cp, dec("10.20"))
	require.NoError(t, s.store.UpdateClientPrice(ctx, &cp))

	sum, err := s.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.DishesUpdated)
	assert.Equal(t, 1, sum.LinesUpdated)

	d, lines, err := s.Recipe(ctx, f.dish.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitCost.Equal(dec("10.20")), "unit cost %s", lines[0].UnitCost)
	assert.True(t, lines[0].LineCost.Equal(dec("2.04")))
	assert.True(t, d.TotalCost.Equal(dec("2.04")), "total %s", d.TotalCost)
}

func TestUpdateClientPrice_ConflictKeepsComputedSummary(t *testing.T) {
	s := newTest(t)
	f := setup(t, s)
	ctx := context.Background()
	pricedLine(t, s, f)

	s.beforeSave = func(ctx context.Context) {
		d, err := s.store.Dish(ctx, f.dish.ID)
		require.NoError(t, err)
		d.Notes = "edited elsewhere"
		require.NoError(t, s.store.UpdateDish(ctx, &d))
	}
	cp, sum, err := s.UpdateClientPrice(ctx, f.client.ID, f.oil.ID, dec("10.20"))
	require.ErrorIs(t, err, store.ErrConflict)
	assert.True(t, cp.Price.Equal(dec("10.20")))
	require.NotEmpty(t, sum.Dishes)
	assert.True(t, sum.Dishes[0].TotalCost.Equal(dec("2.04")), "computed total %s", sum.Dishes[0].TotalCost)
	assert.Equal(t, 1, sum.DishesUpdated)

	d, lines, err := s.Recipe(ctx, f.dish.ID)
	require.NoError(t, err)
	assert.True(t, d.TotalCost.Equal(dec("1.87")), "nothing persisted, total %s", d.TotalCost)
	assert.True(t, lines[0].UnitCost.Equal(dec("9.35")))

	s.beforeSave = nil
	_, err = s.RecomputeAll(ctx)
	require.NoError(t, err)

	d, lines, err = s.Recipe(ctx, f.dish.ID)
	require.NoError(t, err)
	assert.True(t, lines[0].UnitCost.Equal(dec("10.20")))
	assert.True(t, d.TotalCost.Equal(dec("2.04")))
	assert.Equal(t, "edited elsewhere", d.Notes)
}
