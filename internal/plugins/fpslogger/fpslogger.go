// Package fpslogger periodically logs the frame rate.
package fpslogger

import (
	"log/slog"
	"time"

	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

const Tag platform.Tag = "fps-logger"

type Options struct {
	Interval time.Duration `yaml:"interval"`
}

type Plugin struct {
	platform.PluginBase

	logger   *slog.Logger
	interval float64 // seconds
	elapsed  float64
	frames   int
	last     float64
}

var _ platform.Plugin = (*Plugin)(nil)

func New() *Plugin {
	return &Plugin{
		PluginBase: platform.PluginBase{
			PluginName:        "fps-logger",
			PluginDescription: "Log the average frame rate at a fixed interval",
			PluginTags:        []platform.Tag{Tag},
			PluginHooks:       []platform.Hook{platform.OnUpdate},
		},
	}
}

func (p *Plugin) Activate(host *platform.Platform, args platform.Arguments) bool {
	if !args.Enabled(config.PluginFPSLogger) {
		return false
	}
	var opts Options
	if err := args.Decode(config.PluginFPSLogger, &opts); err != nil {
		host.Logger().Warn("fps-logger: bad options", "error", err)
		return false
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	p.logger = host.Logger()
	p.interval = opts.Interval.Seconds()
	return true
}

func (p *Plugin) OnUpdate(dt float64) error {
	if dt <= 0 {
		return nil
	}
	p.elapsed += dt
	p.frames++
	if p.elapsed < p.interval {
		return nil
	}
	p.last = float64(p.frames) / p.elapsed
	p.logger.Info("fps", "fps", p.last, "frame_time_ms", p.elapsed*1000/float64(p.frames), "frames", p.frames)
	p.elapsed = 0
	p.frames = 0
	return nil
}

// Last is the most recently logged frame rate.
func (p *Plugin) Last() float64 { return p.last }
