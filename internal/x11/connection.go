// Package x11 wraps the xgbutil connection used by the X11 window backend.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil   *xgbutil.XUtil
	Root    xproto.Window
	Display string
}

// NewConnection connects to the named display. An empty name uses $DISPLAY.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}

	// Key events are translated through keybind, which needs its keymap loaded.
	keybind.Initialize(xu)

	return &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		Display: display,
	}, nil
}

// PollEvent returns the next queued event without blocking. Both results are nil
// when the queue is empty.
func (c *Connection) PollEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().PollForEvent()
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// Atom interns name.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	return xprop.Atm(c.XUtil, name)
}

// KeyName resolves a key event detail to its keysym string.
func (c *Connection) KeyName(state uint16, detail xproto.Keycode) string {
	return keybind.LookupString(c.XUtil, state, detail)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
