package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if w := raw.Window; w != nil {
		apply(&cfg.Window.Title, w.Title)
		apply(&cfg.Window.Mode, w.Mode)
		apply(&cfg.Window.Resizable, w.Resizable)
		apply(&cfg.Window.Vsync, w.Vsync)
		apply(&cfg.Window.Width, w.Width)
		apply(&cfg.Window.Height, w.Height)
	}

	if l := raw.Logging; l != nil {
		apply(&cfg.Logging.Level, l.Level)
		apply(&cfg.Logging.Format, l.Format)
		apply(&cfg.Logging.File, l.File)
	}

	if p := raw.Plugins; p != nil {
		if s := p.StopAfter; s != nil {
			cfg.Plugins.StopAfter.Enabled = sectionEnabled(s.Enabled)
			apply(&cfg.Plugins.StopAfter.Frames, s.Frames)
		}
		if s := p.FPSLogger; s != nil {
			cfg.Plugins.FPSLogger.Enabled = sectionEnabled(s.Enabled)
			apply(&cfg.Plugins.FPSLogger.Interval, s.Interval)
		}
		if s := p.Benchmark; s != nil {
			cfg.Plugins.Benchmark.Enabled = sectionEnabled(s.Enabled)
		}
		if s := p.Screenshot; s != nil {
			cfg.Plugins.Screenshot.Enabled = sectionEnabled(s.Enabled)
			apply(&cfg.Plugins.Screenshot.Frame, s.Frame)
			apply(&cfg.Plugins.Screenshot.Output, s.Output)
			apply(&cfg.Plugins.Screenshot.Scale, s.Scale)
		}
		if s := p.Remote; s != nil {
			cfg.Plugins.Remote.Enabled = sectionEnabled(s.Enabled)
			apply(&cfg.Plugins.Remote.Address, s.Address)
		}
	}

	return cfg, nil
}

func sectionEnabled(flag *bool) bool {
	return flag == nil || *flag
}

func apply[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
