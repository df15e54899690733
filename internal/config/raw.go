package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWindow struct {
	Title     *string `yaml:"title"`
	Mode      *string `yaml:"mode"`
	Resizable *bool   `yaml:"resizable"`
	Vsync     *string `yaml:"vsync"`
	Width     *uint32 `yaml:"width"`
	Height    *uint32 `yaml:"height"`
}

type RawLogging struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

// A plugin section that is present enables the plugin unless it says
// enabled: false.

type RawStopAfter struct {
	Enabled *bool `yaml:"enabled"`
	Frames  *int  `yaml:"frames"`
}

type RawFPSLogger struct {
	Enabled  *bool          `yaml:"enabled"`
	Interval *time.Duration `yaml:"interval"`
}

type RawBenchmark struct {
	Enabled *bool `yaml:"enabled"`
}

type RawScreenshot struct {
	Enabled *bool    `yaml:"enabled"`
	Frame   *uint64  `yaml:"frame"`
	Output  *string  `yaml:"output"`
	Scale   *float64 `yaml:"scale"`
}

type RawRemote struct {
	Enabled *bool   `yaml:"enabled"`
	Address *string `yaml:"address"`
}

type RawPlugins struct {
	StopAfter  *RawStopAfter  `yaml:"stop_after"`
	FPSLogger  *RawFPSLogger  `yaml:"fps_logger"`
	Benchmark  *RawBenchmark  `yaml:"benchmark"`
	Screenshot *RawScreenshot `yaml:"screenshot"`
	Remote     *RawRemote     `yaml:"remote"`
}

type RawConfig struct {
	Include IncludeList `yaml:"include"`
	Window  *RawWindow  `yaml:"window"`
	Logging *RawLogging `yaml:"logging"`
	Plugins *RawPlugins `yaml:"plugins"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Window != nil {
		if out.Window == nil {
			out.Window = &RawWindow{}
		} else {
			w := *out.Window
			out.Window = &w
		}
		mergeField(&out.Window.Title, overlay.Window.Title)
		mergeField(&out.Window.Mode, overlay.Window.Mode)
		mergeField(&out.Window.Resizable, overlay.Window.Resizable)
		mergeField(&out.Window.Vsync, overlay.Window.Vsync)
		mergeField(&out.Window.Width, overlay.Window.Width)
		mergeField(&out.Window.Height, overlay.Window.Height)
	}

	if overlay.Logging != nil {
		if out.Logging == nil {
			out.Logging = &RawLogging{}
		} else {
			l := *out.Logging
			out.Logging = &l
		}
		mergeField(&out.Logging.Level, overlay.Logging.Level)
		mergeField(&out.Logging.Format, overlay.Logging.Format)
		mergeField(&out.Logging.File, overlay.Logging.File)
	}

	if overlay.Plugins != nil {
		if out.Plugins == nil {
			out.Plugins = &RawPlugins{}
		} else {
			p := *out.Plugins
			out.Plugins = &p
		}
		out.Plugins.merge(*overlay.Plugins)
	}

	return out
}

func (p *RawPlugins) merge(overlay RawPlugins) {
	if o := overlay.StopAfter; o != nil {
		merged := RawStopAfter{}
		if p.StopAfter != nil {
			merged = *p.StopAfter
		}
		mergeField(&merged.Enabled, o.Enabled)
		mergeField(&merged.Frames, o.Frames)
		p.StopAfter = &merged
	}
	if o := overlay.FPSLogger; o != nil {
		merged := RawFPSLogger{}
		if p.FPSLogger != nil {
			merged = *p.FPSLogger
		}
		mergeField(&merged.Enabled, o.Enabled)
		mergeField(&merged.Interval, o.Interval)
		p.FPSLogger = &merged
	}
	if o := overlay.Benchmark; o != nil {
		merged := RawBenchmark{}
		if p.Benchmark != nil {
			merged = *p.Benchmark
		}
		mergeField(&merged.Enabled, o.Enabled)
		p.Benchmark = &merged
	}
	if o := overlay.Screenshot; o != nil {
		merged := RawScreenshot{}
		if p.Screenshot != nil {
			merged = *p.Screenshot
		}
		mergeField(&merged.Enabled, o.Enabled)
		mergeField(&merged.Frame, o.Frame)
		mergeField(&merged.Output, o.Output)
		mergeField(&merged.Scale, o.Scale)
		p.Screenshot = &merged
	}
	if o := overlay.Remote; o != nil {
		merged := RawRemote{}
		if p.Remote != nil {
			merged = *p.Remote
		}
		mergeField(&merged.Enabled, o.Enabled)
		mergeField(&merged.Address, o.Address)
		p.Remote = &merged
	}
}

func mergeField[T any](dst **T, overlay *T) {
	if overlay != nil {
		*dst = overlay
	}
}
