//go:build !(linux && !glfw) && !(cgo && (darwin || windows || (linux && glfw)))

package platform

import "log/slog"

const nativeBackendName = "none"

func newNativeWindow(_ WindowOwner, _ Properties, _ *slog.Logger) (Window, error) {
	return nil, ErrNoWindowBackend
}
