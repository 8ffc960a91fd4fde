package theme

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %s", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(nope) = %s, want %s", got, FlexokiDark.Name)
	}
	if len(Names()) != len(All) {
		t.Fatalf("Names() len = %d, want %d", len(Names()), len(All))
	}
}

func TestMarginBands(t *testing.T) {
	th := FlexokiDark
	floor := decimal.NewFromInt(20)
	if got := th.Margin(decimal.NewFromInt(15), floor); got != th.Bad {
		t.Fatalf("Margin(15) = %s, want bad", got)
	}
	if got := th.Margin(decimal.NewFromInt(25), floor); got != th.Warn {
		t.Fatalf("Margin(25) = %s, want warn", got)
	}
	if got := th.Margin(decimal.NewFromInt(30), floor); got != th.Good {
		t.Fatalf("Margin(30) = %s, want good", got)
	}
	if got := th.Class(model.Estrella); got != th.Star {
		t.Fatalf("Class(Estrella) = %s, want star", got)
	}
}
