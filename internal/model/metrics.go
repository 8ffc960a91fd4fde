package model

import "github.com/shopspring/decimal"

// PriceAlert flags a purchase paid above the reference market price.
type PriceAlert struct {
	IngredientID     int64
	Ingredient       string
	Paid             decimal.Decimal
	Reference        decimal.Decimal
	DeviationPct     decimal.Decimal // rounded to 1 decimal
	PotentialSavings decimal.Decimal
}

// MarginAlert flags an active dish whose margin is below the floor.
type MarginAlert struct {
	DishID    int64
	Client    string
	Dish      string
	MarginPct decimal.Decimal // rounded to 1 decimal
	SalePrice decimal.Decimal
	Cost      decimal.Decimal
}

// FoodCostAlert flags an active dish whose food cost exceeds the ceiling.
type FoodCostAlert struct {
	DishID      int64
	Client      string
	Dish        string
	FoodCostPct decimal.Decimal // rounded to 1 decimal
	Ceiling     decimal.Decimal
}

// MenuSummary holds menu metrics for a set of dishes.
type MenuSummary struct {
	Dishes       int
	Active       int
	AvgMarginPct decimal.Decimal
	Stars        int
	LowMargin    int
	ByClass      map[Classification]int
}

// PriceBookSummary holds metrics for a set of client prices.
type PriceBookSummary struct {
	Ingredients     int
	AvgPrice        decimal.Decimal
	AvgDeviationPct decimal.Decimal
	AboveMarket     int // deviation above the warning threshold
}

// CompanySummary holds portfolio metrics across clients.
type CompanySummary struct {
	Clients       int
	ActiveClients int
	MRR           decimal.Decimal
}
