// Package daemon provides the long-running background alert monitor.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/service"
)

// Source loads the current dataset and summarizes it.
type Source interface {
	Snapshot(ctx context.Context) (model.Dataset, error)
	DashboardFrom(ds model.Dataset, clientID int64) service.Dashboard
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	ClientID     int64 // 0 watches every client
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the compact alert state carried by status and events.
type Snapshot struct {
	At               time.Time       `json:"at"`
	Dishes           int             `json:"dishes"`
	ActiveDishes     int             `json:"active_dishes"`
	AvgMarginPct     decimal.Decimal `json:"avg_margin_pct"`
	PriceAlerts      int             `json:"price_alerts"`
	MarginAlerts     int             `json:"margin_alerts"`
	FoodCostAlerts   int             `json:"food_cost_alerts"`
	PotentialSavings decimal.Decimal `json:"potential_savings_eur"`
	LowestMarginDish string          `json:"lowest_margin_dish,omitempty"`
	LowestMarginPct  decimal.Decimal `json:"lowest_margin_pct"`
	AlertKey         string          `json:"alert_key"`
}

// Delta is the change between two consecutive snapshots.
type Delta struct {
	PriceAlerts      int             `json:"price_alerts"`
	MarginAlerts     int             `json:"margin_alerts"`
	FoodCostAlerts   int             `json:"food_cost_alerts"`
	PotentialSavings decimal.Decimal `json:"potential_savings_eur"`
	AvgMarginPct     decimal.Decimal `json:"avg_margin_pct"`
	AlertsChanged    bool            `json:"alerts_changed"`
}

func (d Delta) isZero() bool {
	return !d.AlertsChanged &&
		d.PriceAlerts == 0 &&
		d.MarginAlerts == 0 &&
		d.FoodCostAlerts == 0 &&
		d.PotentialSavings.IsZero() &&
		d.AvgMarginPct.IsZero()
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventDelta    = "alerts_delta"
)

// Event is emitted on the first poll and whenever the snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	ClientID        int64     `json:"client_id,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service polls a Source and serves the alert state over HTTP.
type Service struct {
	cfg  Config
	src  Source
	feed *feed

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	alerts      service.Alerts
}

// New returns a daemon service; zero config fields take defaults.
func New(cfg Config, src Source) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	return &Service{
		cfg:       cfg,
		src:       src,
		feed:      newFeed(cfg.EventsBuffer),
		startedAt: time.Now(),
	}
}

// Addr returns the resolved listen address.
func (s *Service) Addr() string { return s.cfg.Addr }

// Interval returns the resolved polling interval.
func (s *Service) Interval() time.Duration { return s.cfg.Interval }

// Run serves HTTP and polls until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok\n") })
	v1 := r.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/alerts", s.handleAlerts)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)
	return r
}

func (s *Service) pollOnce(ctx context.Context) {
	ds, err := s.src.Snapshot(ctx)
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Error().Err(err).Msg("daemon poll failed")
		return
	}

	dash := s.src.DashboardFrom(ds, s.cfg.ClientID)
	snap := snapshotFromDashboard(dash, pricedDishes(ds.Dishes, s.cfg.ClientID), now)

	s.mu.Lock()
	prev, hadPrev := s.snapshot, s.hasSnapshot
	s.hasSnapshot = true
	s.snapshot = snap
	s.alerts = dash.Alerts
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	s.mu.Unlock()

	ev := Event{Type: EventSnapshot, Timestamp: now, Snapshot: snap}
	changed := !hadPrev
	if hadPrev {
		ev.Type = EventDelta
		ev.Delta = diffSnapshots(prev, snap)
		changed = !ev.Delta.isZero()
	}

	log.Debug().Int("price", snap.PriceAlerts).Int("margin", snap.MarginAlerts).
		Int("food_cost", snap.FoodCostAlerts).Bool("changed", changed).Msg("daemon poll")
	if changed {
		s.feed.publish(ev)
	}
}

// pricedDishes returns the active dishes in scope with a sale price.
func pricedDishes(dishes []model.Dish, clientID int64) []model.Dish {
	var out []model.Dish
	for _, d := range dishes {
		if !d.Active || !d.SalePrice.IsPositive() {
			continue
		}
		if clientID != 0 && d.ClientID != clientID {
			continue
		}
		out = append(out, d)
	}
	return out
}

func snapshotFromDashboard(dash service.Dashboard, priced []model.Dish, at time.Time) Snapshot {
	snap := Snapshot{
		At:               at,
		Dishes:           dash.Menu.Dishes,
		ActiveDishes:     dash.Menu.Active,
		AvgMarginPct:     dash.Menu.AvgMarginPct,
		PriceAlerts:      len(dash.Alerts.Price),
		MarginAlerts:     len(dash.Alerts.Margin),
		FoodCostAlerts:   len(dash.Alerts.FoodCost),
		PotentialSavings: dash.Alerts.Savings,
		AlertKey:         alertKey(dash.Alerts),
	}
	for i, d := range priced {
		if i == 0 || d.MarginPct.LessThan(snap.LowestMarginPct) {
			snap.LowestMarginDish = d.Name
			snap.LowestMarginPct = d.MarginPct
		}
	}
	return snap
}

// alertKey fingerprints which ingredients and dishes are alerting, so one
// alert replacing another with unchanged counts still registers.
func alertKey(a service.Alerts) string {
	ids := make([]string, 0, a.Count())
	for _, p := range a.Price {
		ids = append(ids, "p:"+strconv.FormatInt(p.IngredientID, 10))
	}
	for _, m := range a.Margin {
		ids = append(ids, "m:"+strconv.FormatInt(m.DishID, 10))
	}
	for _, f := range a.FoodCost {
		ids = append(ids, "f:"+strconv.FormatInt(f.DishID, 10))
	}
	sort.Strings(ids)

	h := fnv.New64a()
	for _, id := range ids {
		_, _ = io.WriteString(h, id)
		_, _ = h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		AlertsChanged:    curr.AlertKey != prev.AlertKey,
		PriceAlerts:      curr.PriceAlerts - prev.PriceAlerts,
		MarginAlerts:     curr.MarginAlerts - prev.MarginAlerts,
		FoodCostAlerts:   curr.FoodCostAlerts - prev.FoodCostAlerts,
		PotentialSavings: curr.PotentialSavings.Sub(prev.PotentialSavings),
		AvgMarginPct:     curr.AvgMarginPct.Sub(prev.AvgMarginPct),
	}
}

func (s *Service) snapshotStatus() Status {
	events, subs := s.feed.counts()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		ClientID:        s.cfg.ClientID,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      events,
		SubscriberCount: subs,
	}
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleAlerts(c *gin.Context) {
	s.mu.RLock()
	payload := alertsPayload(s.alerts)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, payload)
}

// handleEvents lists retained events; ?since=<id> skips those already seen.
func (s *Service) handleEvents(c *gin.Context) {
	var since int64
	if raw := c.Query("since"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be a non-negative event id"})
			return
		}
		since = id
	}
	c.JSON(http.StatusOK, s.feed.since(since))
}

func (s *Service) handleStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch, unsubscribe := s.feed.subscribe(16)
	defer unsubscribe()

	c.SSEvent(EventSnapshot, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}
