package platform

// EventSource identifies the device an input event came from.
type EventSource int

const (
	SourceKeyboard EventSource = iota
	SourceMouse
)

// KeyAction is the transition reported by a key or button event.
type KeyAction int

const (
	ActionUnknown KeyAction = iota
	ActionDown
	ActionUp
	ActionRepeat
)

// InputEvent is any event forwarded to the window owner.
type InputEvent interface {
	Source() EventSource
}

type KeyEvent struct {
	Code   uint32
	Key    string
	Action KeyAction
}

func (KeyEvent) Source() EventSource { return SourceKeyboard }

type MouseButtonEvent struct {
	Button uint32
	Action KeyAction
	X, Y   float64
}

func (MouseButtonEvent) Source() EventSource { return SourceMouse }

type MouseMoveEvent struct {
	X, Y float64
}

func (MouseMoveEvent) Source() EventSource { return SourceMouse }
