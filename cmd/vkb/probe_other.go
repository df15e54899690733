//go:build !(cgo && (darwin || windows || (linux && glfw)))

package main

import (
	"fmt"
	"log/slog"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

func probeVulkan(platform.Window, *slog.Logger) error {
	return fmt.Errorf("vulkan probe needs the glfw backend, this build uses %q", platform.NativeBackend())
}
