//go:build cgo && (darwin || windows || (linux && glfw))

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

// probeVulkan creates an instance with the window's surface extensions, binds
// a surface to the window and tears both down again.
func probeVulkan(w platform.Window, logger *slog.Logger) error {
	if _, ok := w.(*platform.GlfwWindow); !ok {
		return fmt.Errorf("vulkan probe needs a glfw window, got %T", w)
	}
	if !glfw.VulkanSupported() {
		return fmt.Errorf("glfw reports no vulkan loader")
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		return fmt.Errorf("vulkan init: %w", err)
	}

	exts := w.SurfaceExtensions()
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = safeString(e)
	}

	var instance vk.Instance
	res := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   safeString(w.Properties().Title),
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PEngineName:        safeString("vkb"),
			ApiVersion:         vk.MakeVersion(1, 0, 0),
		},
		EnabledExtensionCount:   uint32(len(names)),
		PpEnabledExtensionNames: names,
	}, nil, &instance)
	if err := vk.Error(res); err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	defer vk.DestroyInstance(instance, nil)
	if err := vk.InitInstance(instance); err != nil {
		return fmt.Errorf("init instance: %w", err)
	}

	surface, err := w.CreateSurface(instance, nil)
	if err != nil {
		return err
	}
	logger.Info("vulkan probe ok", "extensions", exts, "surface", fmt.Sprintf("%#x", uintptr(surface)))
	vk.DestroySurface(instance, vk.SurfaceFromPointer(uintptr(surface)), nil)
	return nil
}

func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
