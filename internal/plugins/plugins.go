// Package plugins lists the plugins compiled into vkb.
package plugins

import (
	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins/benchmark"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins/fpslogger"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins/remote"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins/screenshot"
	"github.com/LiangliangNan/Vulkan-Samples/internal/plugins/stopafter"
)

// All returns fresh instances of every plugin in activation order.
func All(c clock.Clock) []platform.Plugin {
	return []platform.Plugin{
		stopafter.New(),
		fpslogger.New(),
		benchmark.New(c),
		screenshot.New(),
		remote.New(),
	}
}
