// Package model defines domain types for clients, ingredients, dishes and recipe costing.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a restaurant under contract. Dishes and price books belong to a client.
type Client struct {
	ID      int64
	Name    string
	City    string
	Service string // contracted service plan
	MRR     decimal.Decimal
	Active  bool
}

// Ingredient is a row of the ingredient reference store.
// MarketPrice is the reference purchase price per Unit.
type Ingredient struct {
	ID          int64
	Name        string
	Category    string
	Unit        string
	MarketPrice decimal.Decimal
	Seasonality string
	UpdatedAt   time.Time
	Version     int64
}

// ClientPrice is what one client pays for one ingredient.
// ReferencePrice and DeviationPct are snapshots taken when the price was
// assigned or last updated; later market moves do not touch them.
type ClientPrice struct {
	ID             int64
	ClientID       int64
	ClientName     string
	IngredientID   int64
	IngredientName string
	Price          decimal.Decimal
	Unit           string
	ReferencePrice decimal.Decimal
	DeviationPct   decimal.Decimal
	Supplier       string
	Notes          string
	UpdatedAt      time.Time
	Version        int64
}

// PurchaseLine is one paid line from a client purchase.
type PurchaseLine struct {
	ID             int64
	ClientID       int64
	IngredientID   int64
	IngredientName string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	PurchasedAt    time.Time
}

// Dataset is a full copy of every table, as read by the legacy importer or
// loaded for a recompute.
type Dataset struct {
	Clients     []Client
	Ingredients []Ingredient
	Prices      []ClientPrice
	Dishes      []Dish
	Lines       []RecipeLine
	Purchases   []PurchaseLine
}
