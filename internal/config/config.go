package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/transit-journal/internal/api"
	"github.com/Veraticus/transit-journal/internal/calendar"
	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/dates"
)

// Config is the validated application configuration.
type Config struct {
	Logging  common.LoggerOptions
	Timezone *time.Location
	API      api.Config
	Calendar CalendarConfig
}

// CalendarConfig controls the calendar views.
type CalendarConfig struct {
	TimezoneName  string
	Granularity   calendar.Granularity
	DisplayBudget int
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", api.DefaultTimeout)
	v.SetDefault("api.retry_attempts", api.DefaultRetryAttempts)
	v.SetDefault("api.orb", api.DefaultOrb)
	v.SetDefault("calendar.granularity", "week")
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.display_budget", calendar.DefaultDisplayBudget)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Load reads and validates the configuration from v. A nil v uses the global
// viper instance.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	cfg := &Config{
		API: api.Config{
			BaseURL:       strings.TrimSpace(v.GetString("api.base_url")),
			Timeout:       v.GetDuration("api.timeout"),
			RetryAttempts: v.GetInt("api.retry_attempts"),
			Orb:           v.GetFloat64("api.orb"),
		},
		Calendar: CalendarConfig{
			TimezoneName:  v.GetString("calendar.timezone"),
			DisplayBudget: v.GetInt("calendar.display_budget"),
		},
		Logging: common.LoggerOptions{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.validate(v.GetString("calendar.granularity")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(granularity string) error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.API.RetryAttempts < 1 {
		return fmt.Errorf("%w: api.retry_attempts must be at least 1", common.ErrInvalidConfig)
	}
	if c.API.Orb <= 0 {
		return fmt.Errorf("%w: api.orb must be positive", common.ErrInvalidConfig)
	}

	g, err := calendar.ParseGranularity(granularity)
	if err != nil {
		return fmt.Errorf("%w: calendar.granularity: %w", common.ErrInvalidConfig, err)
	}
	c.Calendar.Granularity = g

	if c.Calendar.DisplayBudget < 1 {
		return fmt.Errorf("%w: calendar.display_budget must be at least 1", common.ErrInvalidConfig)
	}

	loc, err := dates.LoadZone(c.Calendar.TimezoneName)
	if err != nil {
		return fmt.Errorf("%w: calendar.timezone: %w", common.ErrInvalidConfig, err)
	}
	c.Timezone = loc

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json", "":
	default:
		return fmt.Errorf("%w: logging.format %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}

// Apply installs process-wide settings: the day-normalization zone.
func (c *Config) Apply() {
	dates.SetZone(c.Timezone)
}

// DefaultLogFile is where the interactive calendar logs when logging.file is unset.
func DefaultLogFile() string {
	return filepath.Join(Dir(), "transit.log")
}
