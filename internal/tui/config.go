package tui

import (
	"time"

	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/engine"
	"github.com/Veraticus/transit-journal/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Engine      *engine.Engine
	Now         func() time.Time
	Start       time.Time
	Granularity calendar.Granularity
	Width       int
	Height      int
	// RequestTimeout bounds each background fetch.
	RequestTimeout time.Duration
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Now:            time.Now,
		Granularity:    calendar.Week,
		Width:          100,
		Height:         32,
		RequestTimeout: 30 * time.Second,
	}
}

// WithEngine sets the engine that loads calendar data.
func WithEngine(e *engine.Engine) Option {
	return func(c *Config) {
		c.Engine = e
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStart opens the calendar on the window containing day.
func WithStart(day time.Time, g calendar.Granularity) Option {
	return func(c *Config) {
		c.Start = day
		c.Granularity = g
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithRequestTimeout bounds each background fetch.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}
