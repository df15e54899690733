// Package benchmark measures a whole run and logs a summary when the
// application closes.
package benchmark

import (
	"log/slog"
	"math"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

const Tag platform.Tag = "benchmark"

// Summary describes the frames seen between app start and close.
type Summary struct {
	App         string
	Frames      int
	Duration    time.Duration
	AverageFPS  float64
	MinFrameMS  float64
	MaxFrameMS  float64
	TotalFrameS float64
}

type Plugin struct {
	platform.PluginBase

	clock  clock.Clock
	logger *slog.Logger

	started time.Time
	frames  int
	total   float64
	min     float64
	max     float64
	summary Summary
	done    bool
}

var _ platform.Plugin = (*Plugin)(nil)

// New creates the plugin. A nil clock means the wall clock.
func New(c clock.Clock) *Plugin {
	if c == nil {
		c = clock.New()
	}
	return &Plugin{
		PluginBase: platform.PluginBase{
			PluginName:        "benchmark",
			PluginDescription: "Report frame statistics for the whole run",
			PluginTags:        []platform.Tag{Tag},
			PluginHooks: []platform.Hook{
				platform.OnAppStart,
				platform.OnUpdate,
				platform.OnAppClose,
				platform.OnAppError,
			},
		},
		clock: c,
	}
}

func (p *Plugin) Activate(host *platform.Platform, args platform.Arguments) bool {
	if !args.Enabled(config.PluginBenchmark) {
		return false
	}
	p.logger = host.Logger()
	p.reset()
	return true
}

func (p *Plugin) reset() {
	p.started = p.clock.Now()
	p.frames = 0
	p.total = 0
	p.min = math.Inf(1)
	p.max = 0
	p.done = false
}

func (p *Plugin) OnAppStart(app string) {
	p.reset()
	p.summary = Summary{App: app}
	p.logger.Info("benchmark started", "app", app)
}

func (p *Plugin) OnUpdate(dt float64) error {
	if dt <= 0 {
		return nil
	}
	p.frames++
	p.total += dt
	p.min = math.Min(p.min, dt)
	p.max = math.Max(p.max, dt)
	return nil
}

func (p *Plugin) OnAppClose(app string) {
	if p.done {
		return
	}
	s := p.collect(app)
	p.logger.Info("benchmark complete",
		"app", s.App,
		"frames", s.Frames,
		"duration", s.Duration,
		"avg_fps", s.AverageFPS,
		"min_frame_ms", s.MinFrameMS,
		"max_frame_ms", s.MaxFrameMS,
	)
}

// OnAppError reports what was measured before the failure.
func (p *Plugin) OnAppError(app string) {
	s := p.collect(app)
	p.logger.Warn("benchmark aborted", "app", s.App, "frames", s.Frames, "duration", s.Duration)
}

func (p *Plugin) collect(app string) Summary {
	p.done = true
	s := Summary{
		App:         app,
		Frames:      p.frames,
		Duration:    p.clock.Since(p.started),
		TotalFrameS: p.total,
	}
	if p.frames > 0 && p.total > 0 {
		s.AverageFPS = float64(p.frames) / p.total
		s.MinFrameMS = p.min * 1000
		s.MaxFrameMS = p.max * 1000
	}
	p.summary = s
	return s
}

// Summary returns the statistics from the last close or failure.
func (p *Plugin) Summary() Summary { return p.summary }
