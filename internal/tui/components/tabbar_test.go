package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/horeca/internal/model"
)

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('1'); got != 0 {
		t.Fatalf("TabIdxByKey('1') = %d, want 0", got)
	}
	if got := TabIdxByKey('5'); got != 4 {
		t.Fatalf("TabIdxByKey('5') = %d, want 4", got)
	}
	if got := TabIdxByKey('x'); got != -1 {
		t.Fatalf("TabIdxByKey('x') = %d, want -1", got)
	}
}

func TestTabAtXMatchesRenderedLayout(t *testing.T) {
	bar := RenderTabBar(0, 120)
	if strings.Contains(bar, "\n") {
		t.Fatal("tab bar should fit on a single row")
	}

	pos := 1
	for i := range Tabs {
		w := TabVisualWidth(i, 0)
		if got := TabAtX(pos, 0); got != i {
			t.Fatalf("TabAtX(%d) = %d, want %d", pos, got, i)
		}
		if got := TabAtX(pos+w-1, 0); got != i {
			t.Fatalf("TabAtX(%d) = %d, want %d", pos+w-1, got, i)
		}
		pos += w + len(tabGap)
	}
	if got := TabAtX(0, 0); got != -1 {
		t.Fatalf("TabAtX(0) = %d, want -1", got)
	}
}

func TestHBarsWidth(t *testing.T) {
	out := HBars([]Bar{
		{Label: "Aceite de oliva", Value: 2.04, Display: "2.04 €"},
		{Label: "Huevos", Value: 0.9, Display: "0.90 €"},
		{Label: "Sal", Value: 0},
	}, 50)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 50 {
			t.Fatalf("line %d width = %d, want 50", i, w)
		}
	}
}

func TestQuadrantShowsCounts(t *testing.T) {
	out := Quadrant(map[model.Classification]int{model.Estrella: 3, model.Perro: 1}, 40)
	for _, want := range []string{"Estrella 3", "Perro 1", "Caballo 0", "Rompecabezas 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("quadrant missing %q:\n%s", want, out)
		}
	}
}
