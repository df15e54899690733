package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRuntimeDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := RuntimeDir()
	if err != nil {
		t.Fatalf("RuntimeDir() error: %v", err)
	}
	if got != td {
		t.Fatalf("RuntimeDir() = %q, want %q", got, td)
	}
}

func TestRuntimeDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := RuntimeDir()
	if err != nil {
		t.Fatalf("RuntimeDir() error: %v", err)
	}
	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := filepath.Join(os.TempDir(), fmt.Sprintf("vkb-runtime-%d", os.Getuid()))
	if got != wantRun && got != wantTmp {
		t.Fatalf("RuntimeDir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestConfigFile(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error: %v", err)
	}
	if want := filepath.Join(td, "vkb", "config.yaml"); got != want {
		t.Fatalf("ConfigFile() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", td)
	got, err = ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error: %v", err)
	}
	if want := filepath.Join(td, ".config", "vkb", "config.yaml"); got != want {
		t.Fatalf("ConfigFile() = %q, want %q", got, want)
	}
}

func TestStateAndCaptureDir(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_STATE_HOME", td)

	capture, err := CaptureDir()
	if err != nil {
		t.Fatalf("CaptureDir() error: %v", err)
	}
	if want := filepath.Join(td, "vkb", "captures"); capture != want {
		t.Fatalf("CaptureDir() = %q, want %q", capture, want)
	}
}

func TestRemoteAddrPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	got, err := RemoteAddrPath()
	if err != nil {
		t.Fatalf("RemoteAddrPath() error: %v", err)
	}
	if !strings.HasSuffix(got, "/vkb-remote.addr") {
		t.Fatalf("RemoteAddrPath() = %q, missing suffix", got)
	}
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/shots", filepath.Join(home, "shots")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~user", "~user"},
	}
	for _, tt := range tests {
		got, err := Expand(tt.in)
		if err != nil {
			t.Fatalf("Expand(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
