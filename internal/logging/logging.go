// Package logging builds the structured logger a vkb run writes through.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
	"golang.org/x/term"

	"github.com/LiangliangNan/Vulkan-Samples/internal/paths"
)

// Options selects the sinks and verbosity.
type Options struct {
	Level slog.Level
	// Format is auto, text or json. Auto picks text on a terminal, JSON otherwise.
	Format string
	// File adds a JSON file sink when set.
	File string
	// Console defaults to os.Stderr.
	Console io.Writer
}

// New returns the logger and a closer for the file sink. The closer is never
// nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handlers []slog.Handler
	switch opts.Format {
	case "text":
		handlers = append(handlers, slog.NewTextHandler(console, handlerOpts))
	case "json":
		handlers = append(handlers, slog.NewJSONHandler(console, handlerOpts))
	case "auto", "":
		if isTerminal(console) {
			handlers = append(handlers, slog.NewTextHandler(console, handlerOpts))
		} else {
			handlers = append(handlers, slog.NewJSONHandler(console, handlerOpts))
		}
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func openLogFile(path string) (*os.File, error) {
	path, err := paths.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
