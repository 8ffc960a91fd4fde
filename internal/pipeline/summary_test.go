package pipeline

import (
	"testing"

	"github.com/theirongolddev/horeca/internal/model"
)

func TestSummarizeMenu(t *testing.T) {
	dishes := []model.Dish{
		{ClientID: 1, MarginPct: d("70"), Classification: model.Estrella, Active: true},
		{ClientID: 1, MarginPct: d("10"), Classification: model.Perro, Active: true},
		{ClientID: 1, MarginPct: d("5"), Classification: model.Perro, Active: false},
		{ClientID: 2, MarginPct: d("62"), Classification: model.Rompecabezas, Active: true},
	}

	s := SummarizeMenu(FilterDishesByClient(dishes, 1), d("20"))
	if s.Dishes != 3 || s.Active != 2 {
		t.Fatalf("Dishes/Active = %d/%d, want 3/2", s.Dishes, s.Active)
	}
	if s.Stars != 1 {
		t.Fatalf("Stars = %d, want 1", s.Stars)
	}
	if s.LowMargin != 1 {
		t.Fatalf("LowMargin = %d, want 1 (inactive excluded)", s.LowMargin)
	}
	if !s.AvgMarginPct.Equal(d("28.33")) {
		t.Fatalf("AvgMarginPct = %s, want 28.33", s.AvgMarginPct)
	}
	if s.ByClass[model.Perro] != 2 {
		t.Fatalf("ByClass[Perro] = %d, want 2", s.ByClass[model.Perro])
	}

	if all := SummarizeMenu(FilterDishesByClient(dishes, 0), d("20")); all.Dishes != 4 {
		t.Fatalf("client 0 should keep all dishes, got %d", all.Dishes)
	}
	if empty := SummarizeMenu(nil, d("20")); !empty.AvgMarginPct.IsZero() {
		t.Fatalf("empty AvgMarginPct = %s, want 0", empty.AvgMarginPct)
	}
}

func TestSummarizePriceBook(t *testing.T) {
	prices := []model.ClientPrice{
		{ClientID: 1, Price: d("10"), DeviationPct: d("12")},
		{ClientID: 1, Price: d("5"), DeviationPct: d("10")},
		{ClientID: 1, Price: d("3"), DeviationPct: d("-4")},
		{ClientID: 2, Price: d("99"), DeviationPct: d("50")},
	}
	s := SummarizePriceBook(FilterPricesByClient(prices, 1), d("10"))
	if s.Ingredients != 3 {
		t.Fatalf("Ingredients = %d, want 3", s.Ingredients)
	}
	if s.AboveMarket != 1 {
		t.Fatalf("AboveMarket = %d, want 1", s.AboveMarket)
	}
	if !s.AvgPrice.Equal(d("6")) {
		t.Fatalf("AvgPrice = %s, want 6", s.AvgPrice)
	}
	if !s.AvgDeviationPct.Equal(d("6")) {
		t.Fatalf("AvgDeviationPct = %s, want 6", s.AvgDeviationPct)
	}
}

func TestSummarizeCompany(t *testing.T) {
	clients := []model.Client{
		{Active: true, MRR: d("450")},
		{Active: true, MRR: d("300")},
		{Active: false, MRR: d("999")},
	}
	s := SummarizeCompany(clients)
	if s.Clients != 3 || s.ActiveClients != 2 {
		t.Fatalf("Clients/Active = %d/%d, want 3/2", s.Clients, s.ActiveClients)
	}
	if !s.MRR.Equal(d("750")) {
		t.Fatalf("MRR = %s, want 750", s.MRR)
	}
}
