package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	window
//	window.title
//	window.mode
//	window.width
//	logging.level
//	logging.file
//	plugins
//	plugins.stop_after.frames
//	plugins.fps_logger.interval
//	plugins.screenshot.output
//	plugins.remote.address
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	// A plugin switched on by its section being present: report the section.
	parts := strings.Split(path, ".")
	if len(parts) == 3 && parts[0] == "plugins" && parts[2] == "enabled" {
		if src, ok := res.Sources["plugins."+parts[1]]; ok {
			return value, src, nil
		}
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "window":
		if len(parts) == 1 {
			return cfg.Window, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "title":
			return cfg.Window.Title, nil
		case "mode":
			return cfg.Window.Mode, nil
		case "resizable":
			return cfg.Window.Resizable, nil
		case "vsync":
			return cfg.Window.Vsync, nil
		case "width":
			return cfg.Window.Width, nil
		case "height":
			return cfg.Window.Height, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	case "logging":
		if len(parts) == 1 {
			return cfg.Logging, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "level":
			return cfg.Logging.Level, nil
		case "format":
			return cfg.Logging.Format, nil
		case "file":
			return cfg.Logging.File, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	case "plugins":
		if len(parts) == 1 {
			return cfg.Plugins, nil
		}
		return lookupPluginValue(cfg, parts[1:], path)
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func lookupPluginValue(cfg *Config, parts []string, path string) (any, error) {
	p := cfg.Plugins
	name := parts[0]
	if len(parts) > 2 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	field := ""
	if len(parts) == 2 {
		field = parts[1]
	}

	switch name {
	case PluginStopAfter:
		switch field {
		case "":
			return p.StopAfter, nil
		case "enabled":
			return p.StopAfter.Enabled, nil
		case "frames":
			return p.StopAfter.Frames, nil
		}
	case PluginFPSLogger:
		switch field {
		case "":
			return p.FPSLogger, nil
		case "enabled":
			return p.FPSLogger.Enabled, nil
		case "interval":
			return p.FPSLogger.Interval, nil
		}
	case PluginBenchmark:
		switch field {
		case "":
			return p.Benchmark, nil
		case "enabled":
			return p.Benchmark.Enabled, nil
		}
	case PluginScreenshot:
		switch field {
		case "":
			return p.Screenshot, nil
		case "enabled":
			return p.Screenshot.Enabled, nil
		case "frame":
			return p.Screenshot.Frame, nil
		case "output":
			return p.Screenshot.Output, nil
		case "scale":
			return p.Screenshot.Scale, nil
		}
	case PluginRemote:
		switch field {
		case "":
			return p.Remote, nil
		case "enabled":
			return p.Remote.Enabled, nil
		case "address":
			return p.Remote.Address, nil
		}
	default:
		return nil, fmt.Errorf("unknown plugin %q", name)
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}
