package mcp

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/platform"
)

type fakeBackend struct {
	displays []platform.Display
	windows  []platform.Window
	rects    map[platform.WindowID]platform.Rect
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ListWindows(displayID int) ([]platform.Window, error) {
	return f.windows, nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.rects[id] = bounds
	return nil
}

func (f *fakeBackend) WindowRect(id platform.WindowID) (platform.Rect, error) {
	return f.rects[id], nil
}

func newTestServer(t *testing.T) (*Server, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{
		displays: []platform.Display{{
			ID:      0,
			Name:    "HDMI-1",
			Primary: true,
			Bounds:  platform.Rect{Width: 1600, Height: 900},
			Usable:  platform.Rect{Width: 1600, Height: 900},
		}},
		rects: make(map[platform.WindowID]platform.Rect),
	}
	return NewServer(config.DefaultConfig(), backend, zerolog.Nop()), backend
}

func addWindow(f *fakeBackend, id platform.WindowID, process string, zrank int) {
	w := platform.Window{
		ID:      id,
		Process: process,
		Title:   process,
		Bounds:  platform.Rect{X: 5, Y: 5, Width: 400, Height: 300},
		ZRank:   zrank,
	}
	f.windows = append(f.windows, w)
	f.rects[id] = w.Bounds
}

func TestArrangeWindowsTool(t *testing.T) {
	s, backend := newTestServer(t)
	addWindow(backend, 1, "alacritty", 0)
	addWindow(backend, 2, "kitty", 1)

	_, out, err := s.handleArrangeWindows(context.Background(), nil, ArrangeWindowsInput{Preset: "left-right"})
	if err != nil {
		t.Fatalf("arrange_windows: %v", err)
	}
	if out.Moved != 2 || out.Failed != 0 {
		t.Fatalf("expected 2 moved, got %+v", out)
	}
	if out.Monitor != "HDMI-1" || out.Preset != "left-right" {
		t.Fatalf("unexpected pass metadata: %+v", out)
	}

	_, undo, err := s.handleUndoArrange(context.Background(), nil, UndoArrangeInput{})
	if err != nil {
		t.Fatalf("undo_arrange: %v", err)
	}
	if undo.Restored != 2 {
		t.Fatalf("expected 2 restored, got %d", undo.Restored)
	}
}

func TestArrangeWindowsToolRejectsUnknownPreset(t *testing.T) {
	s, _ := newTestServer(t)

	if _, _, err := s.handleArrangeWindows(context.Background(), nil, ArrangeWindowsInput{Preset: "nosuch"}); err == nil {
		t.Fatalf("unknown preset must fail")
	}
}

func TestListWindowsTool(t *testing.T) {
	s, backend := newTestServer(t)
	addWindow(backend, 2, "kitty", 1)
	addWindow(backend, 1, "alacritty", 0)
	addWindow(backend, 3, "plasmashell", 2)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("excluded processes must be dropped, got %d windows", len(out.Windows))
	}
	if out.Windows[0].ID != 1 {
		t.Fatalf("windows must be frontmost first, got %+v", out.Windows)
	}
}

func TestListMonitorsTool(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("list_monitors: %v", err)
	}
	if len(out.Monitors) != 1 || !out.Monitors[0].Primary {
		t.Fatalf("unexpected monitors: %+v", out.Monitors)
	}
}

func TestListPresetsTool(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListPresets(context.Background(), nil, ListPresetsInput{})
	if err != nil {
		t.Fatalf("list_presets: %v", err)
	}
	if out.Default != "grid" {
		t.Fatalf("expected default grid, got %q", out.Default)
	}
	for i := 1; i < len(out.Presets); i++ {
		if out.Presets[i-1].Name > out.Presets[i].Name {
			t.Fatalf("presets must be sorted: %+v", out.Presets)
		}
	}
}
