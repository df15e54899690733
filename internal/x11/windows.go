package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventMask is the set of events a top-level application window listens for.
const EventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure

// CreateWindow creates an unmapped top-level window of the given size.
func (c *Connection) CreateWindow(width, height int) (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate window id: %w", err)
	}
	err = win.CreateChecked(c.Root, 0, 0, width, height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0x000000, EventMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	// Ask the window manager for WM_DELETE_WINDOW instead of a kill.
	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}
	return win, nil
}

// SetTitle sets both the ICCCM and EWMH window names.
func (c *Connection) SetTitle(windowID xproto.Window, title string) error {
	if err := icccm.WmNameSet(c.XUtil, windowID, title); err != nil {
		return err
	}
	return ewmh.WmNameSet(c.XUtil, windowID, title)
}

// SetFixedSize pins the min and max size hints to width x height so window
// managers do not offer interactive resizing.
func (c *Connection) SetFixedSize(windowID xproto.Window, width, height int) error {
	hints := &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth:  uint(width),
		MinHeight: uint(height),
		MaxWidth:  uint(width),
		MaxHeight: uint(height),
	}
	return icccm.WmNormalHintsSet(c.XUtil, windowID, hints)
}

// SetFullscreen marks an unmapped window as fullscreen.
func (c *Connection) SetFullscreen(windowID xproto.Window) error {
	return ewmh.WmStateSet(c.XUtil, windowID, []string{"_NET_WM_STATE_FULLSCREEN"})
}

// SetUndecorated asks the window manager to drop decorations using the Motif
// hints property most window managers honour.
func (c *Connection) SetUndecorated(windowID xproto.Window) error {
	atom, err := c.Atom("_MOTIF_WM_HINTS")
	if err != nil {
		return err
	}
	// flags=MWM_HINTS_DECORATIONS, decorations=0
	data := make([]byte, 5*4)
	xgb.Put32(data[0:], 1<<1)
	return xproto.ChangePropertyChecked(c.XUtil.Conn(), xproto.PropModeReplace,
		windowID, atom, atom, 32, 5, data).Check()
}

// IsActive reports whether windowID is the EWMH active window.
func (c *Connection) IsActive(windowID xproto.Window) bool {
	active, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return false
	}
	return active == windowID
}
