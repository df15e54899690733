package platform

import (
	"errors"
	"fmt"
	"strings"
)

// Extent is a window size in pixels. {0,0} is the minimized state.
type Extent struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether the extent describes a minimized window.
func (e Extent) IsZero() bool {
	return e.Width == 0 || e.Height == 0
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// Mode selects how a window is presented.
type Mode int

const (
	ModeHeadless Mode = iota
	ModeFullscreen
	ModeFullscreenBorderless
	ModeFullscreenStretch
	ModeDefault
)

func (m Mode) String() string {
	switch m {
	case ModeHeadless:
		return "headless"
	case ModeFullscreen:
		return "fullscreen"
	case ModeFullscreenBorderless:
		return "fullscreen-borderless"
	case ModeFullscreenStretch:
		return "fullscreen-stretch"
	case ModeDefault:
		return "default"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the text form used by config files and flags.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "headless":
		return ModeHeadless, nil
	case "fullscreen":
		return ModeFullscreen, nil
	case "fullscreen-borderless", "borderless":
		return ModeFullscreenBorderless, nil
	case "fullscreen-stretch", "stretch":
		return ModeFullscreenStretch, nil
	case "default", "windowed", "":
		return ModeDefault, nil
	default:
		return ModeDefault, fmt.Errorf("unknown window mode %q (want headless, fullscreen, fullscreen-borderless, fullscreen-stretch, default)", s)
	}
}

// Vsync is the presentation sync preference.
type Vsync int

const (
	VsyncOff Vsync = iota
	VsyncOn
	VsyncDefault
)

func (v Vsync) String() string {
	switch v {
	case VsyncOff:
		return "off"
	case VsyncOn:
		return "on"
	case VsyncDefault:
		return "default"
	default:
		return fmt.Sprintf("Vsync(%d)", int(v))
	}
}

// ParseVsync parses off, on or default.
func ParseVsync(s string) (Vsync, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "false":
		return VsyncOff, nil
	case "on", "true":
		return VsyncOn, nil
	case "default", "":
		return VsyncDefault, nil
	default:
		return VsyncDefault, fmt.Errorf("unknown vsync mode %q (want off, on, default)", s)
	}
}

// Properties is the configuration a window is created with.
type Properties struct {
	Title     string
	Mode      Mode
	Resizable bool
	Vsync     Vsync
	Extent    Extent
}

// DefaultProperties returns a resizable 1280x720 window in default mode.
func DefaultProperties() Properties {
	return Properties{
		Mode:      ModeDefault,
		Resizable: true,
		Vsync:     VsyncDefault,
		Extent:    Extent{Width: 1280, Height: 720},
	}
}

// Instance is an opaque graphics-API instance handle (for Vulkan, a vk.Instance).
type Instance any

// PhysicalDevice is an opaque physical device selector. It may be nil.
type PhysicalDevice any

// Surface is an opaque drawable surface handle bound to a window.
type Surface uintptr

// DisplayPresentInfo carries extra per-present metadata for direct-to-display backends.
type DisplayPresentInfo struct {
	SrcRect    Rect
	DstRect    Rect
	Persistent bool
}

// Rect is a pixel rectangle.
type Rect struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

var (
	// ErrNoWindowBackend is returned by the window factory when nothing was compiled in
	// for the current target. Callers must treat it as fatal.
	ErrNoWindowBackend = errors.New("no window backend available for this target")
	// ErrSurfaceCreation matches every *SurfaceCreationError.
	ErrSurfaceCreation = errors.New("surface creation failed")
	// ErrWindowClosed is returned by operations that need a live backend handle.
	ErrWindowClosed = errors.New("window is closed")
	// ErrNoMonitor is returned when a fullscreen mode is requested but no
	// monitor video mode can be queried.
	ErrNoMonitor = errors.New("no monitor video mode")
)

// SurfaceCreationError reports why a backend could not bind a surface.
type SurfaceCreationError struct {
	Backend string
	Err     error
}

func (e *SurfaceCreationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: create surface: %v", e.Backend, e.Err)
}

func (e *SurfaceCreationError) Unwrap() error { return e.Err }

func (e *SurfaceCreationError) Is(target error) bool { return target == ErrSurfaceCreation }

// Window is the capability every windowing backend provides.
type Window interface {
	// CreateSurface binds a drawable surface to this window. Calling it again
	// returns the surface created by the first successful call.
	CreateSurface(instance Instance, device PhysicalDevice) (Surface, error)
	// SurfaceExtensions lists the instance extensions this backend needs. It does
	// not depend on window state and may be called before instance creation.
	SurfaceExtensions() []string

	ShouldClose() bool
	IsVisible() bool
	IsFocused() bool

	// ProcessEvents drains pending backend events once without blocking.
	ProcessEvents() error
	// Close requests termination. Idempotent.
	Close()

	DPIFactor() float64
	ContentScaleFactor() float64

	// Resize asks for a new size and returns the size the backend settled on.
	Resize(extent Extent) Extent
	SetTitle(title string)

	// DisplayPresentInfo fills info and returns true only for backends presenting
	// directly to a display. Everything else returns false and leaves info alone.
	DisplayPresentInfo(info *DisplayPresentInfo, srcWidth, srcHeight uint32) bool

	Extent() Extent
	Mode() Mode
	Properties() Properties

	// Destroy releases the backend handle. Idempotent.
	Destroy()
}

// WindowOwner receives what a backend observes while processing events.
type WindowOwner interface {
	Resize(extent Extent) Extent
	InputEvent(ev InputEvent)
}

// HeadlessSurfaceBinder is implemented by instances that support headless surfaces.
type HeadlessSurfaceBinder interface {
	CreateHeadlessSurface(device PhysicalDevice) (Surface, error)
}

// X11SurfaceBinder is implemented by instances that can bind a surface to an X11
// window given the display name and window id.
type X11SurfaceBinder interface {
	CreateX11Surface(display string, window uint32, device PhysicalDevice) (Surface, error)
}
