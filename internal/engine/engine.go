// Package engine sequences the API calls behind each view and turns the
// results into immutable snapshots for the presentation layer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
	"github.com/Veraticus/transit-journal/internal/service"
)

// User-facing messages.
const (
	MsgTransitsFailed   = "Failed to load transits. Please try again later."
	MsgEntriesFailed    = "Failed to load journal entries."
	MsgSnapshotFallback = "Planet positions are unavailable; showing transits from the calendar view."
	MsgPositionFailed   = "Failed to load planet position."
	MsgSaveFailed       = "Failed to save journal entry."
	MsgDeleteFailed     = "Failed to delete journal entry."
)

// Config holds engine options.
type Config struct {
	DisplayBudget int
	// FetchConcurrency bounds the parallel per-day journal requests of a window load.
	FetchConcurrency int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DisplayBudget:    calendar.DefaultDisplayBudget,
		FetchConcurrency: 4,
	}
}

// Engine loads windows, days and journal entries from a backend.
type Engine struct {
	backend    service.Backend
	now        func() time.Time
	cfg        Config
	generation atomic.Uint64
}

// New creates an engine with the default configuration.
func New(backend service.Backend) *Engine {
	return NewWithConfig(backend, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(backend service.Backend, cfg Config) *Engine {
	if cfg.DisplayBudget < 1 {
		cfg.DisplayBudget = calendar.DefaultDisplayBudget
	}
	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = 1
	}
	return &Engine{backend: backend, cfg: cfg, now: time.Now}
}

// SetClock replaces the engine's time source. It must be called before the
// engine is shared.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// LoadOption customizes a window load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	onDay func(key string)
}

// WithDayProgress calls fn after each day's journal entries have been fetched.
// fn may be called from several goroutines, one call at a time.
func WithDayProgress(fn func(key string)) LoadOption {
	return func(o *loadOptions) { o.onDay = fn }
}

// LoadWindow fetches the transits overlapping w and the journal entries for
// each of its days. A failed transit fetch fails the load; a failed day of
// entries is logged and reported in Snapshot.FailedDays.
func (e *Engine) LoadWindow(ctx context.Context, w calendar.Window, opts ...LoadOption) (*Snapshot, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	days := w.Days()
	slog.Debug("Loading window", "window", w.Key(), "days", len(days))

	var (
		transits []model.Transit
		mu       sync.Mutex
		byDay    = make(map[string][]model.JournalEntry, len(days))
		failed   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.FetchConcurrency + 1)

	g.Go(func() error {
		var err error
		transits, err = e.backend.Transits(gctx, w.Start(), w.End())
		return err
	})

	for _, day := range days {
		key := dates.Key(day)
		g.Go(func() error {
			entries, err := e.backend.EntriesForDate(gctx, day)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() == nil {
					common.LogWarn(err, "Failed to load journal entries", common.Fields{"day": key})
				}
				failed = append(failed, key)
			} else {
				byDay[key] = entries
			}
			if o.onDay != nil {
				o.onDay(key)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		common.LogError(err, "Failed to load transits", common.Fields{"window": w.Key()})
		return nil, common.NewUserError(MsgTransitsFailed, err)
	}

	return &Snapshot{
		Window:       w,
		LoadedAt:     e.now(),
		Transits:     transits,
		EntriesByDay: byDay,
		FailedDays:   sortedKeys(failed),
		budget:       e.cfg.DisplayBudget,
		Generation:   e.generation.Add(1),
	}, nil
}

// LoadDay builds the detail view for day. It prefers the daily snapshot; when
// that fails it falls back to the transits in windowTransits that are active
// on day and marks the result Degraded. It only fails when there is no
// fallback and the snapshot call failed.
func (e *Engine) LoadDay(ctx context.Context, day time.Time, windowTransits []model.Transit) (*DayDetail, error) {
	day = dates.Day(day)
	detail := &DayDetail{Day: day}

	var (
		snapshot    *model.DailySnapshot
		snapshotErr error
		entries     []model.JournalEntry
		entriesErr  error
	)

	// Both calls degrade independently, so neither error cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		snapshot, snapshotErr = e.backend.DailySnapshot(ctx, day)
		return nil
	})
	g.Go(func() error {
		entries, entriesErr = e.backend.EntriesForDate(ctx, day)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case snapshotErr == nil:
		detail.Positions = calendar.SortPositions(snapshot.Positions)
		detail.Transits = calendar.SortForDetail(calendar.ActiveOn(snapshot.Transits, day))
	case windowTransits != nil:
		common.LogWarn(snapshotErr, "Daily snapshot failed, using window transits", common.Fields{"day": dates.Key(day)})
		detail.Transits = calendar.SortForDetail(calendar.ActiveOn(windowTransits, day))
		detail.Degraded = true
		detail.Notice = MsgSnapshotFallback
	default:
		common.LogError(snapshotErr, "Failed to load day", common.Fields{"day": dates.Key(day)})
		return nil, common.NewUserError(MsgTransitsFailed, snapshotErr)
	}

	if entriesErr != nil {
		common.LogWarn(entriesErr, "Failed to load journal entries", common.Fields{"day": dates.Key(day)})
		if detail.Notice == "" {
			detail.Notice = MsgEntriesFailed
		} else {
			detail.Notice += " " + MsgEntriesFailed
		}
	}
	detail.Entries = entries
	detail.Counts = calendar.JournalCounts(detail.Positions, entries)

	return detail, nil
}

// PlanetDetail is a single body's placement with its retrograde outlook.
type PlanetDetail struct {
	Position   *model.PlanetPosition
	DirectDate time.Time
	Aspects    []model.Transit
	Entries    []model.JournalEntry
	Estimated  bool
}

// LoadPlanet fetches one planet's position on day together with the aspects
// involving it and the journal entries written about its current sign.
func (e *Engine) LoadPlanet(ctx context.Context, planet model.Planet, day time.Time) (*PlanetDetail, error) {
	day = dates.Day(day)

	var (
		detail   = &PlanetDetail{}
		transits []model.Transit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pos, err := e.backend.PlanetPosition(gctx, planet, day)
		if err != nil {
			return err
		}
		detail.Position = pos
		return nil
	})
	g.Go(func() error {
		var err error
		transits, err = e.backend.Transits(gctx, day, dates.EndOfDay(day), planet)
		if err != nil {
			common.LogWarn(err, "Failed to load aspects for planet", common.Fields{"planet": planet.Name()})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, common.NewUserError(MsgPositionFailed, err)
	}

	detail.Aspects = calendar.SortForDetail(calendar.GroupByPlanet(calendar.ActiveOn(transits, day))[planet])
	detail.DirectDate, detail.Estimated = calendar.DirectDate(*detail.Position, e.now())

	entries, err := e.backend.EntriesForTransitType(ctx, detail.Position.TypeID())
	if err != nil {
		common.LogWarn(err, "Failed to load journal entries", common.Fields{"transit_type": detail.Position.TypeID()})
	}
	detail.Entries = entries

	return detail, nil
}

// TransitEntries returns entries for a transit instance and its type,
// de-duplicated by ID, instance entries first.
func (e *Engine) TransitEntries(ctx context.Context, t model.Transit) ([]model.JournalEntry, error) {
	var byInstance, byType []model.JournalEntry

	g, gctx := errgroup.WithContext(ctx)
	if t.ID != "" {
		g.Go(func() error {
			var err error
			byInstance, err = e.backend.EntriesForTransit(gctx, t.ID)
			return err
		})
	}
	g.Go(func() error {
		var err error
		byType, err = e.backend.EntriesForTransitType(gctx, t.TypeID())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, common.NewUserError(MsgEntriesFailed, err)
	}

	seen := make(map[string]bool, len(byInstance)+len(byType))
	out := make([]model.JournalEntry, 0, len(byInstance)+len(byType))
	for _, entry := range append(byInstance, byType...) {
		if entry.ID != "" && seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		out = append(out, entry)
	}
	return out, nil
}

// CreateEntry saves a new entry and re-fetches day's entries. The returned
// snapshot replaces snap; snap itself is left untouched.
func (e *Engine) CreateEntry(ctx context.Context, snap *Snapshot, day time.Time, req model.CreateJournalEntryRequest) (*Snapshot, *model.JournalEntry, error) {
	created, err := e.backend.CreateEntry(ctx, req)
	if err != nil {
		return nil, nil, common.NewUserError(MsgSaveFailed, err)
	}

	next, err := e.refreshDay(ctx, snap, day)
	return next, created, err
}

// UpdateEntry edits an entry and re-fetches day's entries.
func (e *Engine) UpdateEntry(ctx context.Context, snap *Snapshot, day time.Time, id string, req model.UpdateJournalEntryRequest) (*Snapshot, *model.JournalEntry, error) {
	updated, err := e.backend.UpdateEntry(ctx, id, req)
	if err != nil {
		return nil, nil, common.NewUserError(MsgSaveFailed, err)
	}

	next, err := e.refreshDay(ctx, snap, day)
	return next, updated, err
}

// DeleteEntry removes an entry and re-fetches day's entries.
func (e *Engine) DeleteEntry(ctx context.Context, snap *Snapshot, day time.Time, id string) (*Snapshot, error) {
	if err := e.backend.DeleteEntry(ctx, id); err != nil {
		return nil, common.NewUserError(MsgDeleteFailed, err)
	}
	return e.refreshDay(ctx, snap, day)
}

// refreshDay re-reads day's entries from the server. If the refresh fails the
// write still happened, so the old snapshot is returned with the error.
func (e *Engine) refreshDay(ctx context.Context, snap *Snapshot, day time.Time) (*Snapshot, error) {
	entries, err := e.backend.EntriesForDate(ctx, day)
	if err != nil {
		common.LogWarn(err, "Failed to refresh journal entries", common.Fields{"day": dates.Key(day)})
		return snap, common.NewUserError(MsgEntriesFailed, err)
	}
	if snap == nil || !snap.Window.Contains(day) {
		return snap, nil
	}
	return snap.withDayEntries(day, entries, e.generation.Add(1)), nil
}

func sortedKeys(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	// yyyy-MM-dd keys sort chronologically as strings.
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}

// Describe renders a one-line summary of a snapshot for logs and the CLI.
func Describe(s *Snapshot) string {
	return fmt.Sprintf("%s: %d transits, %d journal entries", s.Window.Title(), len(s.Transits), s.TotalEntries())
}
