// Package viewstate holds the client-side selection: the visible window, the
// selected day and the active filters. Every selection change issues a Token;
// a fetch result is applied only if its token still matches the selection.
package viewstate

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
	"github.com/Veraticus/transit-journal/internal/model"
)

// Scope says which selection a token belongs to.
type Scope int

// Token scopes.
const (
	ScopeWindow Scope = iota
	ScopeDay
)

func (s Scope) String() string {
	if s == ScopeDay {
		return "day"
	}
	return "window"
}

// Token tags a request with the selection it was made for.
type Token struct {
	Key        string
	Generation uint64
	Scope      Scope
}

func (t Token) String() string {
	return fmt.Sprintf("%s#%d(%s)", t.Scope, t.Generation, t.Key)
}

// Store is the single owner of view selection. It is safe for concurrent use.
type Store struct {
	window       calendar.Window
	selectedDay  time.Time
	aspectFilter string
	planetFilter model.Planet
	windowGen    uint64
	dayGen       uint64
	mu           sync.RWMutex
}

// New creates a store showing the window around ref with no day selected.
func New(ref time.Time, g calendar.Granularity) *Store {
	return &Store{
		window:       calendar.NewWindow(ref, g),
		aspectFilter: calendar.AllAspects,
	}
}

// Window returns the visible window.
func (s *Store) Window() calendar.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// SelectedDay returns the selected day, if any.
func (s *Store) SelectedDay() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDay, !s.selectedDay.IsZero()
}

// AspectFilter returns the aspect filter, calendar.AllAspects when unset.
func (s *Store) AspectFilter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aspectFilter
}

// PlanetFilter returns the planet filter, empty when unset.
func (s *Store) PlanetFilter() model.Planet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planetFilter
}

// ShowWindow replaces the visible window. A selected day outside the new
// window is cleared. The returned token tags the window fetch.
func (s *Store) ShowWindow(w calendar.Window) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.window = w
	s.windowGen++
	if !s.selectedDay.IsZero() && !w.Contains(s.selectedDay) {
		s.selectedDay = time.Time{}
		s.dayGen++
	}
	return s.tokenLocked(ScopeWindow)
}

// Next advances the window by one week or month.
func (s *Store) Next() Token {
	return s.ShowWindow(s.Window().Next())
}

// Prev moves the window back by one week or month.
func (s *Store) Prev() Token {
	return s.ShowWindow(s.Window().Prev())
}

// JumpTo shows the window containing ref at the current granularity.
func (s *Store) JumpTo(ref time.Time) Token {
	return s.ShowWindow(calendar.NewWindow(ref, s.Window().Granularity()))
}

// SetGranularity switches between week and month, anchored on the selected
// day when there is one.
func (s *Store) SetGranularity(g calendar.Granularity) Token {
	s.mu.RLock()
	anchor := s.window.First()
	if !s.selectedDay.IsZero() {
		anchor = s.selectedDay
	}
	s.mu.RUnlock()

	return s.ShowWindow(calendar.NewWindow(anchor, g))
}

// SelectDay makes day the single selected day. The returned token tags the
// day fetch; any earlier day fetch becomes stale.
func (s *Store) SelectDay(day time.Time) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedDay = dates.Day(day)
	s.dayGen++
	return s.tokenLocked(ScopeDay)
}

// ClearDay deselects the day, invalidating in-flight day fetches.
func (s *Store) ClearDay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedDay = time.Time{}
	s.dayGen++
}

// SetAspectFilter sets the aspect filter. An empty value or "all" clears it.
func (s *Store) SetAspectFilter(filter string) error {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, calendar.AllAspects) {
		filter = calendar.AllAspects
	} else {
		aspect, err := model.ParseAspect(filter)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrInvalidRequest, err)
		}
		filter = string(aspect)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspectFilter = filter
	return nil
}

// SetPlanetFilter narrows views to one body. An empty value or "all" clears it.
func (s *Store) SetPlanetFilter(name string) error {
	var planet model.Planet
	if name = strings.TrimSpace(name); name != "" && !strings.EqualFold(name, calendar.AllAspects) {
		p, err := model.ParsePlanet(name)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrInvalidRequest, err)
		}
		planet = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.planetFilter = planet
	return nil
}

// Current returns the token a fetch for scope would get right now, without
// changing the selection. Refreshes use it.
func (s *Store) Current(scope Scope) Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenLocked(scope)
}

// Accept reports whether a result tagged with tok may be applied.
func (s *Store) Accept(tok Token) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.tokenLocked(tok.Scope)
	if current != tok {
		return fmt.Errorf("%w: got %s, current %s", common.ErrStaleResponse, tok, current)
	}
	return nil
}

func (s *Store) tokenLocked(scope Scope) Token {
	if scope == ScopeDay {
		key := ""
		if !s.selectedDay.IsZero() {
			key = dates.Key(s.selectedDay)
		}
		return Token{Scope: ScopeDay, Generation: s.dayGen, Key: key}
	}
	return Token{Scope: ScopeWindow, Generation: s.windowGen, Key: s.window.Key()}
}
