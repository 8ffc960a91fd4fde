package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/service"
)

type fakeSource struct {
	ds   model.Dataset
	dash service.Dashboard
	err  error
}

func (f *fakeSource) Snapshot(context.Context) (model.Dataset, error) { return f.ds, f.err }

func (f *fakeSource) DashboardFrom(model.Dataset, int64) service.Dashboard { return f.dash }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{PriceAlerts: 2, MarginAlerts: 1, PotentialSavings: dec("10.5"), AvgMarginPct: dec("62")}
	curr := Snapshot{PriceAlerts: 3, MarginAlerts: 1, FoodCostAlerts: 2, PotentialSavings: dec("13.1"), AvgMarginPct: dec("60.5")}

	delta := diffSnapshots(prev, curr)
	if delta.PriceAlerts != 1 {
		t.Fatalf("PriceAlerts delta = %d, want 1", delta.PriceAlerts)
	}
	if delta.MarginAlerts != 0 {
		t.Fatalf("MarginAlerts delta = %d, want 0", delta.MarginAlerts)
	}
	if delta.FoodCostAlerts != 2 {
		t.Fatalf("FoodCostAlerts delta = %d, want 2", delta.FoodCostAlerts)
	}
	if !delta.PotentialSavings.Equal(dec("2.6")) {
		t.Fatalf("Savings delta = %s, want 2.6", delta.PotentialSavings)
	}
	if !delta.AvgMarginPct.Equal(dec("-1.5")) {
		t.Fatalf("AvgMargin delta = %s, want -1.5", delta.AvgMarginPct)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("self delta not zero")
	}
}

func TestPollOnce_AlertSwapWithSameCounts(t *testing.T) {
	src := &fakeSource{dash: service.Dashboard{Alerts: service.Alerts{
		Margin: []model.MarginAlert{{DishID: 2, Dish: "Caña", MarginPct: dec("10")}},
	}}}
	s := New(Config{}, src)
	ctx := context.Background()
	s.pollOnce(ctx)

	// Caña recovers while Pulpo drops under the floor: same count, different dish.
	src.dash.Alerts.Margin = []model.MarginAlert{{DishID: 4, Dish: "Pulpo", MarginPct: dec("12")}}
	s.pollOnce(ctx)

	events := s.feed.since(0)
	require.Len(t, events, 2)
	assert.Equal(t, EventDelta, events[1].Type)
	assert.True(t, events[1].Delta.AlertsChanged)
	assert.Zero(t, events[1].Delta.MarginAlerts)
	assert.NotEqual(t, events[0].Snapshot.AlertKey, events[1].Snapshot.AlertKey)

	s.pollOnce(ctx)
	assert.Len(t, s.feed.since(0), 2)
}

func TestFeedRingBuffer(t *testing.T) {
	f := newFeed(2)

	f.publish(Event{Type: EventSnapshot})
	f.publish(Event{Type: EventDelta})
	last := f.publish(Event{Type: EventDelta})
	if last.ID != 3 {
		t.Fatalf("third event ID = %d, want 3", last.ID)
	}

	events := f.since(0)
	if len(events) != 2 {
		t.Fatalf("events len = %d, want 2", len(events))
	}
	if events[0].ID != 2 || events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", events[0].ID, events[1].ID)
	}
	if got := f.since(2); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("since(2) = %+v, want only event 3", got)
	}
}

func TestFeedSubscribers(t *testing.T) {
	f := newFeed(10)
	ch, unsubscribe := f.subscribe(1)

	f.publish(Event{Type: EventSnapshot})
	f.publish(Event{Type: EventDelta}) // buffer full, dropped for this subscriber

	ev := <-ch
	assert.Equal(t, int64(1), ev.ID)
	_, subs := f.counts()
	assert.Equal(t, 1, subs)

	unsubscribe()
	_, subs = f.counts()
	assert.Zero(t, subs)
}

func TestPollOnce_PublishesOnChangeOnly(t *testing.T) {
	src := &fakeSource{
		ds: model.Dataset{Dishes: []model.Dish{
			{ID: 1, Name: "Tortilla", SalePrice: dec("9"), MarginPct: dec("79.2"), Active: true},
			{ID: 2, Name: "Caña", SalePrice: dec("2"), MarginPct: dec("10"), Active: true},
			{ID: 3, Name: "Retirado", SalePrice: dec("5"), MarginPct: dec("-50"), Active: false},
		}},
		dash: service.Dashboard{
			Menu: model.MenuSummary{Dishes: 3, Active: 2, AvgMarginPct: dec("13.07")},
			Alerts: service.Alerts{
				Margin:  []model.MarginAlert{{DishID: 2, Dish: "Caña", MarginPct: dec("10")}},
				Savings: decimal.Zero,
			},
		},
	}
	s := New(Config{}, src)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx)

	status := s.snapshotStatus()
	assert.Equal(t, int64(2), status.PollCount)
	assert.Equal(t, 1, status.EventCount)
	assert.Equal(t, 1, status.Summary.MarginAlerts)
	assert.Equal(t, "Caña", status.Summary.LowestMarginDish)

	src.dash.Alerts.Price = []model.PriceAlert{{IngredientID: 1, PotentialSavings: dec("7.5")}}
	src.dash.Alerts.Savings = dec("7.5")
	s.pollOnce(ctx)

	events := s.feed.since(0)
	require.Len(t, events, 2)
	assert.Equal(t, EventDelta, events[1].Type)
	assert.Equal(t, 1, events[1].Delta.PriceAlerts)
}

func TestPollOnce_RecordsError(t *testing.T) {
	s := New(Config{}, &fakeSource{err: errors.New("database is locked")})
	s.pollOnce(context.Background())

	status := s.snapshotStatus()
	assert.Equal(t, "database is locked", status.LastError)
	assert.Zero(t, status.EventCount)
}

func TestHandler(t *testing.T) {
	src := &fakeSource{dash: service.Dashboard{Alerts: service.Alerts{
		Price:   []model.PriceAlert{{IngredientID: 4, Ingredient: "Aceite", DeviationPct: dec("17.6"), PotentialSavings: dec("7.5")}},
		Savings: dec("7.5"),
	}}}
	s := New(Config{DBPath: "/tmp/horeca.db"}, src)
	s.pollOnce(context.Background())
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "/tmp/horeca.db", status.DBPath)
	assert.Equal(t, 1, status.Summary.PriceAlerts)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/alerts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts AlertsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts.Price, 1)
	assert.Equal(t, "Aceite", alerts.Price[0].Ingredient)
	assert.True(t, alerts.Savings.Equal(dec("7.5")))
	assert.Empty(t, alerts.Margin)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, EventSnapshot, events[0].Type)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events?since=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Empty(t, events)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events?since=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
