package remote

// StatusInput is the input for the status tool.
type StatusInput struct{}

// StatusOutput describes the running sample.
type StatusOutput struct {
	App          string  `json:"app"`
	State        string  `json:"state"`
	Frames       uint64  `json:"frames"`
	FPS          float64 `json:"fps"`
	FrameTimeMS  float64 `json:"frame_time_ms"`
	Title        string  `json:"title,omitempty"`
	Width        uint32  `json:"width,omitempty"`
	Height       uint32  `json:"height,omitempty"`
	CloseQueued  bool    `json:"close_queued"`
	PendingCount int     `json:"pending_commands"`
}

// RequestCloseInput is the input for the request_close tool.
type RequestCloseInput struct {
	Reason string `json:"reason,omitempty" jsonschema:"Optional reason recorded in the log"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	Title string `json:"title" jsonschema:"required,New window title"`
}

// Ack is returned by tools that queue a command for the next frame.
type Ack struct {
	Queued bool `json:"queued"`
}
