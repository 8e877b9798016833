package tui

import (
	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/service"
	"github.com/Veraticus/backoffice/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Service        service.GrievanceService
	Dates          detail.DateFormatter
	Retry          service.RetryOptions
	Width          int
	Height         int
	PageSize       int
	RequireMessage bool
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Dates:    detail.NewDateFormatter("", nil),
		Retry:    service.RetryOptions{MaxAttempts: 1},
		Width:    100,
		Height:   30,
		ShowHelp: true,
	}
}

// WithService sets the grievance service.
func WithService(svc service.GrievanceService) Option {
	return func(c *Config) {
		c.Service = svc
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

// WithDateFormatter sets how dates render in the detail view.
func WithDateFormatter(dates detail.DateFormatter) Option {
	return func(c *Config) {
		c.Dates = dates
	}
}

// WithFetchRetry sets the retry policy for pending fetches.
func WithFetchRetry(opts service.RetryOptions) Option {
	return func(c *Config) {
		c.Retry = opts
	}
}

// WithRequireMessage rejects blank resolution messages.
func WithRequireMessage(required bool) Option {
	return func(c *Config) {
		c.RequireMessage = required
	}
}

// WithPageSize overrides the number of grievances per page.
func WithPageSize(size int) Option {
	return func(c *Config) {
		c.PageSize = size
	}
}
