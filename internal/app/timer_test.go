package app

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestTimerTick(t *testing.T) {
	mock := clock.NewMock()
	timer := NewTimer(mock)

	mock.Add(100 * time.Millisecond)
	if got := timer.Elapsed(); got != 100*time.Millisecond {
		t.Fatalf("Elapsed() = %v, want 100ms", got)
	}
	if got := timer.Tick(); got != 100*time.Millisecond {
		t.Fatalf("Tick() = %v, want 100ms", got)
	}
	if got := timer.Tick(); got != 0 {
		t.Fatalf("Tick() right after Tick() = %v, want 0", got)
	}

	mock.Add(2 * time.Second)
	if got := timer.Tick(); got != 2*time.Second {
		t.Fatalf("Tick() = %v, want 2s", got)
	}
}
