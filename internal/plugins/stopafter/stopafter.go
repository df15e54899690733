// Package stopafter closes the application after a fixed number of frames.
package stopafter

import (
	"github.com/LiangliangNan/Vulkan-Samples/internal/config"
	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

const Tag platform.Tag = "stop-after"

type Options struct {
	Frames int `yaml:"frames"`
}

type Plugin struct {
	platform.PluginBase

	host      *platform.Platform
	remaining int
}

var _ platform.Plugin = (*Plugin)(nil)

func New() *Plugin {
	return &Plugin{
		PluginBase: platform.PluginBase{
			PluginName:        "stop-after",
			PluginDescription: "Close the application after a number of frames",
			PluginTags:        []platform.Tag{Tag},
			PluginHooks:       []platform.Hook{platform.OnUpdate},
		},
	}
}

func (p *Plugin) Activate(host *platform.Platform, args platform.Arguments) bool {
	if !args.Enabled(config.PluginStopAfter) {
		return false
	}
	var opts Options
	if err := args.Decode(config.PluginStopAfter, &opts); err != nil {
		host.Logger().Warn("stop-after: bad options", "error", err)
		return false
	}
	if opts.Frames <= 0 {
		host.Logger().Warn("stop-after: frames must be > 0", "frames", opts.Frames)
		return false
	}
	p.host = host
	p.remaining = opts.Frames
	return true
}

func (p *Plugin) OnUpdate(float64) error {
	if p.remaining > 0 {
		p.remaining--
	}
	if p.remaining == 0 {
		p.host.RequestClose()
	}
	return nil
}

// Remaining is the number of frames left before the close request.
func (p *Plugin) Remaining() int { return p.remaining }
