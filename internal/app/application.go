// Package app drives a sample: it owns the window, runs the frame loop and
// reports how the run ended.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/benbjohnson/clock"

	"github.com/LiangliangNan/Vulkan-Samples/internal/platform"
)

// Process exit statuses returned by Run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// DefaultName is the window title an Application starts with.
const DefaultName = "Application"

// ErrAlreadyRunning is logged when Run is entered while a run is in progress or
// after the application has finished.
var ErrAlreadyRunning = errors.New("application already running or finished")

// Host is the platform the application runs on.
type Host interface {
	Update(dt float64) error
	ShouldClose() bool
	Finish()
	CreateWindow(owner platform.WindowOwner, props platform.Properties) (platform.Window, error)
}

// AppObserver is implemented by hosts that want lifecycle notifications.
type AppObserver interface {
	AppStarted(app string)
	AppFailed(app string)
	AppClosed(app string)
}

// Preparer lets a sample set itself up before the loop starts.
type Preparer interface {
	Prepare(a *Application) bool
}

// Updater runs once per visible frame after the base frame accounting.
type Updater interface {
	Update(a *Application, dt float64) error
}

// Resizer reacts to a settled window size. It returns the extent the sample
// will render at.
type Resizer interface {
	Resize(a *Application, extent platform.Extent) platform.Extent
}

// InputHandler receives input forwarded by the window.
type InputHandler interface {
	InputEvent(a *Application, ev platform.InputEvent)
}

// State is where an Application is in its lifecycle.
type State int

const (
	StateConstructed State = iota
	StatePrepared
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StatePrepared:
		return "prepared"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Application runs the frame loop against a Host and the window it created.
type Application struct {
	host     Host
	window   platform.Window
	delegate any
	logger   *slog.Logger
	clock    clock.Clock
	timer    *Timer
	props    platform.Properties

	state        State
	prepareCalls int
	prepared     bool
	running      bool
	finished     bool

	fps        float64
	frameTime  float64
	frameCount uint64
}

var _ platform.WindowOwner = (*Application)(nil)

// New creates the application and asks host for its window.
func New(host Host, opts ...Option) (*Application, error) {
	if host == nil {
		return nil, errors.New("app: nil host")
	}
	props := platform.DefaultProperties()
	props.Title = DefaultName

	a := &Application{
		host:   host,
		logger: slog.Default(),
		clock:  clock.New(),
		props:  props,
	}
	for _, opt := range opts {
		opt(a)
	}

	w, err := host.CreateWindow(a, a.props)
	if err != nil {
		return nil, fmt.Errorf("app: create window: %w", err)
	}
	a.window = w
	a.timer = NewTimer(a.clock)
	return a, nil
}

// Prepare runs the sample's Preparer, if any. A sample without one is ready as is.
func (a *Application) Prepare() bool {
	a.prepareCalls++
	ok := true
	if p, isPreparer := a.delegate.(Preparer); isPreparer {
		ok = p.Prepare(a)
	}
	a.prepared = ok
	if !ok {
		a.logger.Warn("prepare failed", "app", a.Name())
		return false
	}
	a.state = StatePrepared
	if obs, isObserver := a.host.(AppObserver); isObserver {
		obs.AppStarted(a.Name())
	}
	return true
}

// Run drives the loop until the window or the host asks to close, or a frame
// fails. It returns ExitSuccess or ExitFailure.
func (a *Application) Run() int {
	if a.running || a.finished {
		a.logger.Error("cannot run", "app", a.Name(), "error", ErrAlreadyRunning)
		return ExitFailure
	}
	switch {
	case a.prepareCalls == 0:
		a.logger.Warn("running without prepare", "app", a.Name())
	case !a.prepared:
		a.logger.Warn("running after failed prepare", "app", a.Name())
	}

	a.running = true
	a.state = StateRunning
	defer func() { a.running = false }()

	for !a.window.ShouldClose() && !a.host.ShouldClose() {
		if err := a.step(); err != nil {
			a.logger.Error("application failed", "app", a.Name(), "error", err)
			if obs, ok := a.host.(AppObserver); ok {
				obs.AppFailed(a.Name())
			}
			a.Finish()
			return ExitFailure
		}
	}

	a.Finish()
	return ExitSuccess
}

// step runs one loop iteration. A panic anywhere in it comes back as an error.
func (a *Application) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	dt := a.timer.Tick().Seconds()
	if a.window.IsVisible() {
		if err := a.host.Update(dt); err != nil {
			return fmt.Errorf("platform update: %w", err)
		}
		if err := a.Update(dt); err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}
	if err := a.window.ProcessEvents(); err != nil {
		return fmt.Errorf("process events: %w", err)
	}
	return nil
}

// Update records frame timing and then runs the sample's Updater.
// A zero, negative or non-finite dt keeps the previous fps and reports a
// frame time of 0.
func (a *Application) Update(dt float64) error {
	a.frameCount++
	if dt > 0 && !math.IsInf(dt, 0) && !math.IsNaN(dt) {
		a.fps = 1 / dt
		a.frameTime = dt * 1000
	} else {
		a.frameTime = 0
	}
	if u, ok := a.delegate.(Updater); ok {
		return u.Update(a, dt)
	}
	return nil
}

// Resize asks the window for extent and hands the settled size to the sample.
func (a *Application) Resize(extent platform.Extent) platform.Extent {
	if a.window == nil {
		return extent
	}
	settled := a.window.Resize(extent)
	if r, ok := a.delegate.(Resizer); ok {
		return r.Resize(a, settled)
	}
	return settled
}

// InputEvent forwards ev to the sample.
func (a *Application) InputEvent(ev platform.InputEvent) {
	if h, ok := a.delegate.(InputHandler); ok {
		h.InputEvent(a, ev)
	}
}

// Finish tears down the host and the window. Only the first call has any effect.
func (a *Application) Finish() {
	if a.finished {
		return
	}
	a.finished = true
	a.state = StateFinished

	if obs, ok := a.host.(AppObserver); ok {
		obs.AppClosed(a.Name())
	}
	a.host.Finish()
	if a.window != nil {
		a.window.Destroy()
	}
}

// Name is the window title.
func (a *Application) Name() string {
	if a.window == nil {
		return a.props.Title
	}
	return a.window.Properties().Title
}

func (a *Application) SetName(name string) {
	if a.window == nil {
		a.props.Title = name
		return
	}
	a.window.SetTitle(name)
}

func (a *Application) Window() platform.Window { return a.window }

func (a *Application) Logger() *slog.Logger { return a.logger }

func (a *Application) FPS() float64 { return a.fps }

// FrameTime is the last frame's duration in milliseconds.
func (a *Application) FrameTime() float64 { return a.frameTime }

func (a *Application) FrameCount() uint64 { return a.frameCount }

func (a *Application) State() State { return a.state }
