//go:build linux && !glfw

package platform

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/LiangliangNan/Vulkan-Samples/internal/x11"
)

const nativeBackendName = "x11"

// X11Window is the native backend on Linux. It speaks the X protocol directly
// through xgb, so it needs no cgo.
type X11Window struct {
	windowBase

	conn   *x11.Connection
	win    *xwindow.Window
	owner  WindowOwner
	logger *slog.Logger

	deleteAtom xproto.Atom
	monitor    x11.Monitor
	mapped     bool
	focused    bool
}

var _ Window = (*X11Window)(nil)

func newNativeWindow(owner WindowOwner, props Properties, logger *slog.Logger) (Window, error) {
	return NewX11Window(owner, props, "", logger)
}

// NewX11Window opens a connection to display and creates a window on it.
func NewX11Window(owner WindowOwner, props Properties, display string, logger *slog.Logger) (*X11Window, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}

	w := &X11Window{
		windowBase: newWindowBase(props),
		conn:       conn,
		owner:      owner,
		logger:     logger,
	}

	if mon, err := conn.PrimaryMonitor(); err == nil {
		w.monitor = mon
	} else {
		logger.Warn("x11: no monitor information", "error", err)
		screen := conn.XUtil.Screen()
		w.monitor = x11.Monitor{
			Width:    int(screen.WidthInPixels),
			Height:   int(screen.HeightInPixels),
			WidthMM:  int(screen.WidthInMillimeters),
			HeightMM: int(screen.HeightInMillimeters),
		}
	}

	extent := w.initialExtent()
	w.properties.Extent = extent

	win, err := conn.CreateWindow(int(extent.Width), int(extent.Height))
	if err != nil {
		conn.Close()
		return nil, err
	}
	w.win = win

	if w.deleteAtom, err = conn.Atom("WM_DELETE_WINDOW"); err != nil {
		win.Destroy()
		conn.Close()
		return nil, fmt.Errorf("x11: intern WM_DELETE_WINDOW: %w", err)
	}

	if err := conn.SetTitle(win.Id, props.Title); err != nil {
		logger.Warn("x11: failed to set title", "error", err)
	}
	w.applyMode()

	win.Map()
	return w, nil
}

func (w *X11Window) initialExtent() Extent {
	screen := Extent{Width: uint32(w.monitor.Width), Height: uint32(w.monitor.Height)}
	switch w.properties.Mode {
	case ModeFullscreenBorderless, ModeFullscreenStretch:
		return screen
	default:
		return clampExtent(w.properties.Extent, screen.Width, screen.Height)
	}
}

func (w *X11Window) applyMode() {
	var err error
	switch w.properties.Mode {
	case ModeFullscreen, ModeFullscreenStretch:
		err = w.conn.SetFullscreen(w.win.Id)
	case ModeFullscreenBorderless:
		err = w.conn.SetUndecorated(w.win.Id)
	default:
		if !w.properties.Resizable {
			err = w.conn.SetFixedSize(w.win.Id, int(w.properties.Extent.Width), int(w.properties.Extent.Height))
		}
	}
	if err != nil {
		w.logger.Warn("x11: failed to apply window mode", "mode", w.properties.Mode, "error", err)
	}
}

func (w *X11Window) CreateSurface(instance Instance, device PhysicalDevice) (Surface, error) {
	if s, ok := w.cachedSurface(); ok {
		return s, nil
	}
	if w.win == nil {
		return 0, &SurfaceCreationError{Backend: nativeBackendName, Err: ErrWindowClosed}
	}
	binder, ok := instance.(X11SurfaceBinder)
	if !ok {
		return 0, &SurfaceCreationError{
			Backend: nativeBackendName,
			Err:     fmt.Errorf("instance %T cannot bind X11 windows", instance),
		}
	}
	s, err := binder.CreateX11Surface(w.conn.Display, uint32(w.win.Id), device)
	if err != nil {
		return 0, &SurfaceCreationError{Backend: nativeBackendName, Err: err}
	}
	w.storeSurface(s)
	return s, nil
}

func (w *X11Window) SurfaceExtensions() []string {
	return []string{"VK_KHR_surface", "VK_KHR_xcb_surface"}
}

func (w *X11Window) IsVisible() bool {
	return w.mapped && !w.properties.Extent.IsZero()
}

func (w *X11Window) IsFocused() bool { return w.focused }

// ProcessEvents drains the X event queue.
func (w *X11Window) ProcessEvents() error {
	if w.win == nil {
		return nil
	}
	for {
		ev, err := w.conn.PollEvent()
		if err != nil {
			return fmt.Errorf("x11: %w", err)
		}
		if ev == nil {
			return nil
		}
		w.handleEvent(ev)
	}
}

func (w *X11Window) handleEvent(ev any) {
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		if e.Window != w.win.Id {
			return
		}
		extent := Extent{Width: uint32(e.Width), Height: uint32(e.Height)}
		if extent != w.properties.Extent {
			w.properties.Extent = extent
			if w.owner != nil {
				w.owner.Resize(extent)
			}
		}
	case xproto.ClientMessageEvent:
		if e.Format == 32 && xproto.Atom(e.Data.Data32[0]) == w.deleteAtom {
			w.Close()
		}
	case xproto.DestroyNotifyEvent:
		if e.Window == w.win.Id {
			w.Close()
		}
	case xproto.MapNotifyEvent:
		w.mapped = true
	case xproto.UnmapNotifyEvent:
		w.mapped = false
	case xproto.FocusInEvent:
		w.focused = true
	case xproto.FocusOutEvent:
		w.focused = false
	case xproto.KeyPressEvent:
		w.emit(KeyEvent{Code: uint32(e.Detail), Key: w.conn.KeyName(e.State, e.Detail), Action: ActionDown})
	case xproto.KeyReleaseEvent:
		w.emit(KeyEvent{Code: uint32(e.Detail), Key: w.conn.KeyName(e.State, e.Detail), Action: ActionUp})
	case xproto.ButtonPressEvent:
		w.emit(MouseButtonEvent{Button: uint32(e.Detail), Action: ActionDown, X: float64(e.EventX), Y: float64(e.EventY)})
	case xproto.ButtonReleaseEvent:
		w.emit(MouseButtonEvent{Button: uint32(e.Detail), Action: ActionUp, X: float64(e.EventX), Y: float64(e.EventY)})
	case xproto.MotionNotifyEvent:
		w.emit(MouseMoveEvent{X: float64(e.EventX), Y: float64(e.EventY)})
	}
}

func (w *X11Window) emit(ev InputEvent) {
	if w.owner != nil {
		w.owner.InputEvent(ev)
	}
}

func (w *X11Window) DPIFactor() float64 {
	dpi := w.monitor.DPI()
	if dpi == 0 {
		return 1
	}
	return dpi / baseDensity
}

// ContentScaleFactor is 1: X11 window and framebuffer coordinates coincide.
func (w *X11Window) ContentScaleFactor() float64 { return 1 }

func (w *X11Window) Resize(extent Extent) Extent {
	settled := settleExtent(w.properties.Extent, extent, w.properties.Resizable,
		uint32(w.monitor.Width), uint32(w.monitor.Height))
	if w.win == nil || settled == w.properties.Extent {
		return w.properties.Extent
	}
	w.win.Resize(int(settled.Width), int(settled.Height))
	w.properties.Extent = settled
	return settled
}

func (w *X11Window) SetTitle(title string) {
	w.windowBase.SetTitle(title)
	if w.win == nil {
		return
	}
	if err := w.conn.SetTitle(w.win.Id, title); err != nil {
		w.logger.Warn("x11: failed to set title", "error", err)
	}
}

func (w *X11Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.closed = true
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	w.conn.Close()
}
