package x11

import (
	"math"
	"testing"
)

func TestPickPrimaryPrefersFlaggedMonitor(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, Name: "HDMI-1"},
		{ID: 1, Name: "eDP-1", Primary: true},
	}
	got, err := pickPrimary(monitors)
	if err != nil {
		t.Fatalf("pickPrimary: %v", err)
	}
	if got.Name != "eDP-1" {
		t.Fatalf("expected eDP-1, got %q", got.Name)
	}
}

func TestPickPrimaryFallsBackToFirst(t *testing.T) {
	got, err := pickPrimary([]Monitor{{ID: 3, Name: "DP-2"}, {ID: 4, Name: "DP-3"}})
	if err != nil {
		t.Fatalf("pickPrimary: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("expected first monitor, got %+v", got)
	}
}

func TestPickPrimaryNoMonitors(t *testing.T) {
	if _, err := pickPrimary(nil); err == nil {
		t.Fatal("expected error for empty monitor list")
	}
}

func TestMonitorDPI(t *testing.T) {
	m := Monitor{Width: 1920, WidthMM: 508}
	if got := m.DPI(); math.Abs(got-96) > 1e-9 {
		t.Fatalf("expected 96 dpi, got %v", got)
	}
	if got := (Monitor{Width: 1920}).DPI(); got != 0 {
		t.Fatalf("expected 0 dpi for unknown physical size, got %v", got)
	}
}
