package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/pipeline"
)

// RecomputeSummary reports a full recompute. Dishes and Lines hold the
// computed state whether or not it was persisted.
type RecomputeSummary struct {
	DishesUpdated int
	LinesUpdated  int
	Dishes        []model.Dish
	Lines         []model.RecipeLine
	Elapsed       time.Duration
}

// RecomputeAll recomputes the cost, margins and classification of every
// dish from its recipe lines and persists the rows that changed. Line unit
// costs are first synced from each client's price book, so a recompute also
// repairs lines left behind by an interrupted price update.
func (s *Service) RecomputeAll(ctx context.Context) (RecomputeSummary, error) {
	return s.recompute(ctx)
}

// recompute loads everything, syncs line unit costs from the price book,
// runs the pipeline and writes changed rows in one transaction. On a write
// failure the computed summary is still returned next to the error.
func (s *Service) recompute(ctx context.Context) (RecomputeSummary, error) {
	start := time.Now()
	ds, err := s.store.Load(ctx)
	if err != nil {
		return RecomputeSummary{}, err
	}
	orig := make([]model.RecipeLine, len(ds.Lines))
	copy(orig, ds.Lines)
	ds.Lines = pipeline.SyncLineCosts(ds.Lines, ds.Dishes, ds.Prices)

	res := pipeline.Refresh(ds.Dishes, ds.Lines, s.policy)
	sum := RecomputeSummary{Dishes: res.Dishes, Lines: res.Lines}

	var dirtyDishes []model.Dish
	for _, d := range res.Dishes {
		if res.ChangedDish[d.ID] {
			dirtyDishes = append(dirtyDishes, d)
		}
	}
	var dirtyLines []model.RecipeLine
	for i, l := range res.Lines {
		if lineChanged(orig[i], l) {
			dirtyLines = append(dirtyLines, l)
		}
	}
	sum.DishesUpdated = len(dirtyDishes)
	sum.LinesUpdated = len(dirtyLines)

	if len(dirtyDishes) > 0 || len(dirtyLines) > 0 {
		if s.beforeSave != nil {
			s.beforeSave(ctx)
		}
		if err := s.store.SaveRecompute(ctx, dirtyDishes, dirtyLines); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, err
		}
		bumpVersions(&sum, dirtyDishes, dirtyLines)
	}
	sum.Elapsed = time.Since(start)

	log.Debug().Int("dishes", sum.DishesUpdated).Int("lines", sum.LinesUpdated).
		Dur("elapsed", sum.Elapsed).Msg("recompute done")
	return sum, nil
}

func lineChanged(a, b model.RecipeLine) bool {
	return !a.UnitCost.Equal(b.UnitCost) ||
		!a.LineCost.Equal(b.LineCost) ||
		!a.PctOfDish.Equal(b.PctOfDish)
}

// bumpVersions mirrors the saved versions into the summary rows.
func bumpVersions(sum *RecomputeSummary, dishes []model.Dish, lines []model.RecipeLine) {
	dv := make(map[int64]int64, len(dishes))
	for _, d := range dishes {
		dv[d.ID] = d.Version
	}
	lv := make(map[int64]int64, len(lines))
	for _, l := range lines {
		lv[l.ID] = l.Version
	}
	for i := range sum.Dishes {
		if v, ok := dv[sum.Dishes[i].ID]; ok {
			sum.Dishes[i].Version = v
		}
	}
	for i := range sum.Lines {
		if v, ok := lv[sum.Lines[i].ID]; ok {
			sum.Lines[i].Version = v
		}
	}
}
