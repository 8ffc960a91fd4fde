package pipeline

import (
	"testing"

	"github.com/theirongolddev/horeca/internal/model"
)

func TestFindPriceAlerts(t *testing.T) {
	ingredients := []model.Ingredient{
		{ID: 1, Name: "Aceite", MarketPrice: d("10")},
		{ID: 2, Name: "Harina", MarketPrice: d("10")},
		{ID: 3, Name: "Trufa", MarketPrice: d("0")},
	}
	purchases := []model.PurchaseLine{
		{IngredientID: 1, IngredientName: "Aceite", UnitPrice: d("12"), Quantity: d("5")},
		{IngredientID: 2, IngredientName: "Harina", UnitPrice: d("11.4"), Quantity: d("5")},
		{IngredientID: 3, IngredientName: "Trufa", UnitPrice: d("900"), Quantity: d("1")},
		{IngredientID: 9, IngredientName: "Desconocido", UnitPrice: d("50"), Quantity: d("1")},
		{IngredientID: 2, UnitPrice: d("11.5"), Quantity: d("3")},
		{IngredientID: 2, UnitPrice: d("13.33"), Quantity: d("2")},
	}

	alerts := FindPriceAlerts(purchases, ingredients, d("15"))
	if len(alerts) != 2 {
		t.Fatalf("len(alerts) = %d, want 2: %+v", len(alerts), alerts)
	}

	a := alerts[0]
	if a.Ingredient != "Aceite" {
		t.Fatalf("alerts[0].Ingredient = %q, want Aceite", a.Ingredient)
	}
	if !a.DeviationPct.Equal(d("20")) {
		t.Fatalf("DeviationPct = %s, want 20", a.DeviationPct)
	}
	if !a.PotentialSavings.Equal(d("10")) {
		t.Fatalf("PotentialSavings = %s, want 10", a.PotentialSavings)
	}
	if !a.Paid.Equal(d("12")) || !a.Reference.Equal(d("10")) {
		t.Fatalf("Paid/Reference = %s/%s, want 12/10", a.Paid, a.Reference)
	}

	b := alerts[1]
	if b.Ingredient != "Harina" {
		t.Fatalf("alerts[1].Ingredient = %q, want name from reference store", b.Ingredient)
	}
	if !b.DeviationPct.Equal(d("33.3")) {
		t.Fatalf("DeviationPct = %s, want 33.3", b.DeviationPct)
	}
	if !b.PotentialSavings.Equal(d("6.66")) {
		t.Fatalf("PotentialSavings = %s, want 6.66", b.PotentialSavings)
	}
}

func TestFindPriceAlerts_BelowReferenceNeverAlerts(t *testing.T) {
	ingredients := []model.Ingredient{{ID: 1, MarketPrice: d("10")}}
	purchases := []model.PurchaseLine{{IngredientID: 1, UnitPrice: d("2"), Quantity: d("100")}}
	if alerts := FindPriceAlerts(purchases, ingredients, d("15")); len(alerts) != 0 {
		t.Fatalf("got %d alerts for a cheap purchase", len(alerts))
	}
}

func TestFindMarginAlerts(t *testing.T) {
	dishes := []model.Dish{
		{ID: 1, ClientName: "Casa Pepe", Name: "Paella", MarginPct: d("15.04"), SalePrice: d("10"), TotalCost: d("8.496"), Active: true},
		{ID: 2, ClientName: "Casa Pepe", Name: "Gazpacho", MarginPct: d("5"), Active: false},
		{ID: 3, ClientName: "Casa Pepe", Name: "Flan", MarginPct: d("20"), Active: true},
		{ID: 4, ClientName: "El Faro", Name: "Pulpo", MarginPct: d("-12.35"), Active: true},
	}

	alerts := FindMarginAlerts(dishes, d("20"))
	if len(alerts) != 2 {
		t.Fatalf("len(alerts) = %d, want 2", len(alerts))
	}
	if alerts[0].Dish != "Paella" || alerts[1].Dish != "Pulpo" {
		t.Fatalf("alerts order = [%s, %s], want [Paella, Pulpo]", alerts[0].Dish, alerts[1].Dish)
	}
	if !alerts[0].MarginPct.Equal(d("15")) {
		t.Fatalf("MarginPct = %s, want 15.0", alerts[0].MarginPct)
	}
	if !alerts[1].MarginPct.Equal(d("-12.4")) {
		t.Fatalf("MarginPct = %s, want -12.4", alerts[1].MarginPct)
	}
	if alerts[0].Client != "Casa Pepe" || !alerts[0].Cost.Equal(d("8.496")) {
		t.Fatalf("alert payload = %+v", alerts[0])
	}
}

func TestFindMarginAlerts_JustBelowFloor(t *testing.T) {
	// 19.99996% is stored as 20.0000 but is still under a 20% floor.
	dish := model.Dish{ID: 1, Name: "Croquetas", SalePrice: d("10"), TotalCost: d("8.000004"), Active: true}
	dish.MarginPct = MarginPct(dish.SalePrice, dish.TotalCost)
	if !dish.MarginPct.Equal(d("20")) {
		t.Fatalf("stored MarginPct = %s, want 20", dish.MarginPct)
	}
	if alerts := FindMarginAlerts([]model.Dish{dish}, d("20")); len(alerts) != 1 {
		t.Fatalf("len(alerts) = %d, want 1", len(alerts))
	}
	if s := SummarizeMenu([]model.Dish{dish}, d("20")); s.LowMargin != 1 {
		t.Fatalf("LowMargin = %d, want 1", s.LowMargin)
	}
}

func TestFindFoodCostAlerts(t *testing.T) {
	dishes := []model.Dish{
		{ID: 1, Name: "Chuleton", FoodCostPct: d("48.26"), Active: true},
		{ID: 2, Name: "Ensalada", FoodCostPct: d("35"), Active: true},
		{ID: 3, Name: "Bogavante", FoodCostPct: d("70"), Active: false},
	}
	alerts := FindFoodCostAlerts(dishes, d("35"))
	if len(alerts) != 1 {
		t.Fatalf("len(alerts) = %d, want 1", len(alerts))
	}
	if alerts[0].Dish != "Chuleton" || !alerts[0].FoodCostPct.Equal(d("48.3")) {
		t.Fatalf("alert = %+v", alerts[0])
	}
}

func TestTotalSavings(t *testing.T) {
	alerts := []model.PriceAlert{{PotentialSavings: d("10")}, {PotentialSavings: d("2.5")}}
	if got := TotalSavings(alerts); !got.Equal(d("12.5")) {
		t.Fatalf("TotalSavings = %s, want 12.5", got)
	}
}
