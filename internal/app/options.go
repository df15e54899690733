package app

import (
	"log/slog"

	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

// Option customizes an Application at construction.
type Option func(*Application)

// WithProperties replaces the window properties. An empty title keeps the
// default application name.
func WithProperties(props platform.Properties) Option {
	return func(a *Application) {
		if props.Title == "" {
			props.Title = a.props.Title
		}
		a.props = props
	}
}

// WithDelegate installs the sample's override points. d may implement any of
// Preparer, Updater, Resizer and InputHandler.
func WithDelegate(d any) Option {
	return func(a *Application) { a.delegate = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock drives the frame timer from c.
func WithClock(c clock.Clock) Option {
	return func(a *Application) {
		if c != nil {
			a.clock = c
		}
	}
}
