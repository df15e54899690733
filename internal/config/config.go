// Package config loads the YAML configuration of a vkb run: window
// properties, logging, and the options of each plugin.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

// Plugin section names, as they appear under plugins: in YAML.
const (
	PluginStopAfter  = "stop_after"
	PluginFPSLogger  = "fps_logger"
	PluginBenchmark  = "benchmark"
	PluginScreenshot = "screenshot"
	PluginRemote     = "remote"
)

// PluginNames lists every plugin section in activation order.
func PluginNames() []string {
	return []string{PluginStopAfter, PluginFPSLogger, PluginBenchmark, PluginScreenshot, PluginRemote}
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Mode      string `yaml:"mode"`
	Resizable bool   `yaml:"resizable"`
	Vsync     string `yaml:"vsync"`
	Width     uint32 `yaml:"width"`
	Height    uint32 `yaml:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warning, error
	Format string `yaml:"format"` // auto, text, json
	File   string `yaml:"file"`   // empty disables the file sink
}

type StopAfterConfig struct {
	Enabled bool `yaml:"enabled"`
	Frames  int  `yaml:"frames"`
}

type FPSLoggerConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type BenchmarkConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ScreenshotConfig struct {
	Enabled bool    `yaml:"enabled"`
	Frame   uint64  `yaml:"frame"`
	Output  string  `yaml:"output"` // empty writes under the state directory
	Scale   float64 `yaml:"scale"`
}

type RemoteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type PluginsConfig struct {
	StopAfter  StopAfterConfig  `yaml:"stop_after"`
	FPSLogger  FPSLoggerConfig  `yaml:"fps_logger"`
	Benchmark  BenchmarkConfig  `yaml:"benchmark"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Remote     RemoteConfig     `yaml:"remote"`
}

// Config is the effective configuration after defaults, includes and
// overrides have been applied.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Plugins PluginsConfig `yaml:"plugins"`
}

var _ platform.Arguments = (*Config)(nil)

func DefaultConfig() *Config {
	props := platform.DefaultProperties()
	return &Config{
		Window: WindowConfig{
			Title:     "",
			Mode:      props.Mode.String(),
			Resizable: props.Resizable,
			Vsync:     props.Vsync.String(),
			Width:     props.Extent.Width,
			Height:    props.Extent.Height,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Plugins: PluginsConfig{
			StopAfter:  StopAfterConfig{Frames: 1},
			FPSLogger:  FPSLoggerConfig{Interval: time.Second},
			Screenshot: ScreenshotConfig{Frame: 1, Scale: 1},
			Remote:     RemoteConfig{Address: "127.0.0.1:7777"},
		},
	}
}

func (c *Config) Validate() error {
	if _, err := platform.ParseMode(c.Window.Mode); err != nil {
		return &ValidationError{Path: "window.mode", Err: err}
	}
	if _, err := platform.ParseVsync(c.Window.Vsync); err != nil {
		return &ValidationError{Path: "window.vsync", Err: err}
	}
	if c.Window.Width == 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height == 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}

	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warning, error")}
	}
	switch c.Logging.Format {
	case "auto", "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("format must be one of: auto, text, json")}
	}

	p := c.Plugins
	if p.StopAfter.Frames <= 0 {
		return &ValidationError{Path: "plugins.stop_after.frames", Err: fmt.Errorf("frames must be > 0")}
	}
	if p.FPSLogger.Interval <= 0 {
		return &ValidationError{Path: "plugins.fps_logger.interval", Err: fmt.Errorf("interval must be > 0")}
	}
	if p.Screenshot.Frame == 0 {
		return &ValidationError{Path: "plugins.screenshot.frame", Err: fmt.Errorf("frame must be >= 1")}
	}
	if p.Screenshot.Scale <= 0 || p.Screenshot.Scale > 8 {
		return &ValidationError{Path: "plugins.screenshot.scale", Err: fmt.Errorf("scale must be in (0, 8]")}
	}
	if _, _, err := net.SplitHostPort(p.Remote.Address); err != nil {
		return &ValidationError{Path: "plugins.remote.address", Err: fmt.Errorf("address must be host:port: %w", err)}
	}
	return nil
}

// Properties converts the window section into window properties. An empty
// title is left empty so the application can supply its own.
func (c *Config) Properties() (platform.Properties, error) {
	mode, err := platform.ParseMode(c.Window.Mode)
	if err != nil {
		return platform.Properties{}, err
	}
	vsync, err := platform.ParseVsync(c.Window.Vsync)
	if err != nil {
		return platform.Properties{}, err
	}
	return platform.Properties{
		Title:     c.Window.Title,
		Mode:      mode,
		Resizable: c.Window.Resizable,
		Vsync:     vsync,
		Extent:    platform.Extent{Width: c.Window.Width, Height: c.Window.Height},
	}, nil
}

// SlogLevel maps logging.level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Enabled reports whether the named plugin section is switched on.
func (c *Config) Enabled(name string) bool {
	switch name {
	case PluginStopAfter:
		return c.Plugins.StopAfter.Enabled
	case PluginFPSLogger:
		return c.Plugins.FPSLogger.Enabled
	case PluginBenchmark:
		return c.Plugins.Benchmark.Enabled
	case PluginScreenshot:
		return c.Plugins.Screenshot.Enabled
	case PluginRemote:
		return c.Plugins.Remote.Enabled
	default:
		return false
	}
}

// Decode copies the named plugin section into out by way of YAML, so plugins
// can declare their own option structs with yaml tags.
func (c *Config) Decode(name string, out any) error {
	section, err := c.pluginSection(name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(section)
	if err != nil {
		return fmt.Errorf("plugins.%s: encode: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("plugins.%s: decode: %w", name, err)
	}
	return nil
}

func (c *Config) pluginSection(name string) (any, error) {
	switch name {
	case PluginStopAfter:
		return c.Plugins.StopAfter, nil
	case PluginFPSLogger:
		return c.Plugins.FPSLogger, nil
	case PluginBenchmark:
		return c.Plugins.Benchmark, nil
	case PluginScreenshot:
		return c.Plugins.Screenshot, nil
	case PluginRemote:
		return c.Plugins.Remote, nil
	default:
		return nil, fmt.Errorf("unknown plugin section %q", name)
	}
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
