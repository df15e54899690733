//go:build cgo && (darwin || windows || (linux && glfw))

package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const nativeBackendName = "glfw"

func init() {
	// GLFW must be driven from the main OS thread.
	runtime.LockOSThread()
}

// GlfwWindow is the native backend on macOS, Windows, and on Linux builds with
// the glfw tag.
type GlfwWindow struct {
	windowBase

	handle     *glfw.Window
	owner      WindowOwner
	logger     *slog.Logger
	extensions []string
}

var _ Window = (*GlfwWindow)(nil)

func newNativeWindow(owner WindowOwner, props Properties, logger *slog.Logger) (Window, error) {
	return NewGlfwWindow(owner, props, logger)
}

// NewGlfwWindow initializes GLFW and creates a window without a client API, so
// a Vulkan surface can be bound to it.
func NewGlfwWindow(owner WindowOwner, props Properties, logger *slog.Logger) (*GlfwWindow, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}
	logger.Debug("glfw initialized", "version", glfw.GetVersionString())

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfwBool(props.Resizable))

	var monitor *glfw.Monitor
	width, height := int(props.Extent.Width), int(props.Extent.Height)
	primary := glfw.GetPrimaryMonitor()

	var mode *glfw.VidMode
	switch props.Mode {
	case ModeFullscreen, ModeFullscreenBorderless, ModeFullscreenStretch:
		if primary != nil {
			mode = primary.GetVideoMode()
		}
		if mode == nil {
			glfw.Terminate()
			return nil, fmt.Errorf("glfw: %s needs a monitor: %w", props.Mode, ErrNoMonitor)
		}
	}

	switch props.Mode {
	case ModeFullscreen:
		monitor = primary
	case ModeFullscreenBorderless:
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		glfw.WindowHint(glfw.Decorated, glfw.False)
		width, height = mode.Width, mode.Height
	case ModeFullscreenStretch:
		monitor = primary
		width, height = mode.Width, mode.Height
	}

	handle, err := glfw.CreateWindow(width, height, props.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}

	w := &GlfwWindow{
		windowBase: newWindowBase(props),
		handle:     handle,
		owner:      owner,
		logger:     logger,
		extensions: handle.GetRequiredInstanceExtensions(),
	}
	w.properties.Extent = Extent{Width: uint32(width), Height: uint32(height)}
	w.installCallbacks()
	return w, nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *GlfwWindow) installCallbacks() {
	w.handle.SetCloseCallback(func(_ *glfw.Window) {
		w.Close()
	})
	w.handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		extent := Extent{Width: uint32(width), Height: uint32(height)}
		w.properties.Extent = extent
		if w.owner != nil {
			w.owner.Resize(extent)
		}
	})
	w.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		w.emit(KeyEvent{Code: uint32(scancode), Key: glfw.GetKeyName(key, scancode), Action: glfwAction(action)})
	})
	w.handle.SetMouseButtonCallback(func(h *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := h.GetCursorPos()
		w.emit(MouseButtonEvent{Button: uint32(button), Action: glfwAction(action), X: x, Y: y})
	})
	w.handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.emit(MouseMoveEvent{X: x, Y: y})
	})
}

func glfwAction(a glfw.Action) KeyAction {
	switch a {
	case glfw.Press:
		return ActionDown
	case glfw.Release:
		return ActionUp
	case glfw.Repeat:
		return ActionRepeat
	default:
		return ActionUnknown
	}
}

func (w *GlfwWindow) emit(ev InputEvent) {
	if w.owner != nil {
		w.owner.InputEvent(ev)
	}
}

func (w *GlfwWindow) CreateSurface(instance Instance, _ PhysicalDevice) (Surface, error) {
	if s, ok := w.cachedSurface(); ok {
		return s, nil
	}
	if w.handle == nil {
		return 0, &SurfaceCreationError{Backend: nativeBackendName, Err: ErrWindowClosed}
	}
	if instance == nil {
		return 0, &SurfaceCreationError{Backend: nativeBackendName, Err: fmt.Errorf("nil instance")}
	}
	ptr, err := w.handle.CreateWindowSurface(instance, nil)
	if err != nil {
		return 0, &SurfaceCreationError{Backend: nativeBackendName, Err: err}
	}
	w.storeSurface(Surface(ptr))
	return Surface(ptr), nil
}

// SurfaceExtensions returns the list GLFW reported when the window was made.
func (w *GlfwWindow) SurfaceExtensions() []string {
	out := make([]string, len(w.extensions))
	copy(out, w.extensions)
	return out
}

func (w *GlfwWindow) ShouldClose() bool {
	if w.closed {
		return true
	}
	if w.handle != nil && w.handle.ShouldClose() {
		w.closed = true
	}
	return w.closed
}

func (w *GlfwWindow) IsVisible() bool {
	if w.handle == nil {
		return false
	}
	return w.handle.GetAttrib(glfw.Visible) == glfw.True &&
		w.handle.GetAttrib(glfw.Iconified) == glfw.False
}

func (w *GlfwWindow) IsFocused() bool {
	if w.handle == nil {
		return false
	}
	return w.handle.GetAttrib(glfw.Focused) == glfw.True
}

func (w *GlfwWindow) ProcessEvents() error {
	glfw.PollEvents()
	return nil
}

func (w *GlfwWindow) Close() {
	w.closed = true
	if w.handle != nil {
		w.handle.SetShouldClose(true)
	}
}

// DPIFactor follows the GLFW monitor guide: density of the primary monitor
// relative to a 96 dpi baseline.
func (w *GlfwWindow) DPIFactor() float64 {
	primary := glfw.GetPrimaryMonitor()
	if primary == nil {
		return 1
	}
	widthMM, _ := primary.GetPhysicalSize()
	mode := primary.GetVideoMode()
	if widthMM <= 0 || mode == nil {
		return 1
	}
	dpi := float64(mode.Width) / (float64(widthMM) / 25.4)
	return dpi / baseDensity
}

func (w *GlfwWindow) ContentScaleFactor() float64 {
	if w.handle == nil {
		return 1
	}
	fbWidth, _ := w.handle.GetFramebufferSize()
	winWidth, _ := w.handle.GetSize()
	if winWidth == 0 {
		return 1
	}
	return float64(fbWidth) / float64(winWidth)
}

func (w *GlfwWindow) Resize(extent Extent) Extent {
	if w.handle == nil {
		return w.properties.Extent
	}
	var maxW, maxH uint32
	if primary := glfw.GetPrimaryMonitor(); primary != nil {
		if mode := primary.GetVideoMode(); mode != nil {
			maxW, maxH = uint32(mode.Width), uint32(mode.Height)
		}
	}
	settled := settleExtent(w.properties.Extent, extent, w.properties.Resizable, maxW, maxH)
	if settled == w.properties.Extent {
		return settled
	}
	w.handle.SetSize(int(settled.Width), int(settled.Height))
	width, height := w.handle.GetSize()
	w.properties.Extent = Extent{Width: uint32(width), Height: uint32(height)}
	return w.properties.Extent
}

func (w *GlfwWindow) SetTitle(title string) {
	w.windowBase.SetTitle(title)
	if w.handle != nil {
		w.handle.SetTitle(title)
	}
}

func (w *GlfwWindow) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.closed = true
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
	glfw.Terminate()
}
