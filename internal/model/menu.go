package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification is the menu-engineering label of a dish.
type Classification string

// Menu-engineering labels, keyed on high margin and high volume.
const (
	Estrella     Classification = "Estrella"     // high margin, high volume
	Rompecabezas Classification = "Rompecabezas" // high margin, low volume
	Caballo      Classification = "Caballo"      // low margin, high volume
	Perro        Classification = "Perro"        // low margin, low volume
)

// Classifications lists every label in display order.
var Classifications = []Classification{Estrella, Rompecabezas, Caballo, Perro}

// English returns the common English name of the label.
func (c Classification) English() string {
	switch c {
	case Estrella:
		return "Star"
	case Rompecabezas:
		return "Puzzle"
	case Caballo:
		return "Workhorse"
	case Perro:
		return "Dog"
	}
	return ""
}

// Dish is a menu item of one client.
// TotalCost and the derived fields are rewritten on every recompute.
type Dish struct {
	ID               int64
	ClientID         int64
	ClientName       string
	Name             string
	Category         string
	SalePrice        decimal.Decimal
	TotalCost        decimal.Decimal
	MarginAmount     decimal.Decimal
	MarginPct        decimal.Decimal
	FoodCostPct      decimal.Decimal
	MonthlyVolume    int
	Classification   Classification
	RecommendedPrice decimal.Decimal
	Active           bool
	Notes            string
	Version          int64
}

// RecipeLine is one ingredient of a dish. UnitCost is copied from the
// owning client's price book when the line is created.
type RecipeLine struct {
	ID             int64
	DishID         int64
	DishName       string
	IngredientID   int64
	IngredientName string
	Quantity       decimal.Decimal
	Unit           string
	UnitCost       decimal.Decimal
	LineCost       decimal.Decimal
	PctOfDish      decimal.Decimal
	Supplier       string
	UpdatedAt      time.Time
	Version        int64
}
