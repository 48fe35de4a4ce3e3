package daemon

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/ipc"
	"github.com/paneshift/paneshift/internal/layout"
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

func newTestDaemon(t *testing.T) (*Daemon, *fakeBackend) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	backend := &fakeBackend{
		displays: []platform.Display{{
			ID:      0,
			Name:    "DP-1",
			Primary: true,
			Bounds:  platform.Rect{Width: 1920, Height: 1080},
			Usable:  platform.Rect{Width: 1920, Height: 1080},
		}},
		rects: make(map[platform.WindowID]platform.Rect),
	}

	cfg := config.DefaultConfig()
	cfg.Presets["weighted"] = config.PresetConfig{
		Layout:     "2x1",
		ColWeights: []float64{3, 1},
	}

	d, err := New(cfg, backend, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, backend
}

func addWindow(f *fakeBackend, id platform.WindowID, process string, zrank int) {
	w := platform.Window{
		ID:      id,
		Process: process,
		Title:   process,
		Bounds:  platform.Rect{X: 10, Y: 10, Width: 500, Height: 300},
		ZRank:   zrank,
	}
	f.windows = append(f.windows, w)
	f.rects[id] = w.Bounds
}

func TestBuildRequestMergesConfigDefaults(t *testing.T) {
	d, _ := newTestDaemon(t)

	req, err := d.buildRequest(ipc.ArrangePayload{})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Preset.Kind != layout.KindGrid || req.Preset.Rows != 2 || req.Preset.Cols != 2 {
		t.Fatalf("default preset should be the 2x2 grid, got %+v", req.Preset)
	}
	if req.Monitor != "primary" || req.Gap != config.DefaultGap {
		t.Fatalf("config defaults not applied: monitor=%s gap=%d", req.Monitor, req.Gap)
	}

	gap := 20
	req, err = d.buildRequest(ipc.ArrangePayload{
		Preset:  "main-side:0.6",
		Monitor: "0",
		Gap:     &gap,
		Target:  "alacritty, kitty",
		Title:   "work",
	})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Preset.Kind != layout.KindMainSide || req.Gap != 20 || req.Monitor != "0" {
		t.Fatalf("payload overrides lost: %+v", req)
	}
	if len(req.Filter.Processes) != 2 || req.Filter.Processes[1] != "kitty" {
		t.Fatalf("target list not parsed: %v", req.Filter.Processes)
	}
	if req.Filter.TitleContains != "work" {
		t.Fatalf("title filter lost: %q", req.Filter.TitleContains)
	}

	// Named preset with weights wires them into the request.
	req, err = d.buildRequest(ipc.ArrangePayload{Preset: "weighted"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if len(req.ColWeights) != 2 || req.ColWeights[0] != 3 {
		t.Fatalf("weights not resolved: %v", req.ColWeights)
	}

	if _, err := d.buildRequest(ipc.ArrangePayload{Preset: "nosuch"}); err == nil {
		t.Fatalf("unknown preset must fail before any window moves")
	}
}

func TestDaemonArrange(t *testing.T) {
	d, backend := newTestDaemon(t)
	addWindow(backend, 1, "alacritty", 0)
	addWindow(backend, 2, "kitty", 1)

	data, err := d.Arrange(ipc.ArrangePayload{Preset: "split", Target: "terminals"})
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if data.Moved != 2 || data.Failed != 0 {
		t.Fatalf("expected 2 moved, got %+v", data)
	}
	if data.Monitor != "DP-1" {
		t.Fatalf("expected monitor name in result, got %q", data.Monitor)
	}

	undo, err := d.Undo("")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undo.Restored != 2 {
		t.Fatalf("expected 2 restored, got %d", undo.Restored)
	}
}

func TestDaemonStatusAndPresets(t *testing.T) {
	d, backend := newTestDaemon(t)
	addWindow(backend, 1, "alacritty", 0)

	status := d.Status()
	if !status.DaemonRunning || status.LastPass != "" {
		t.Fatalf("fresh daemon should have no pass recorded: %+v", status)
	}

	if _, err := d.Arrange(ipc.ArrangePayload{}); err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	status = d.Status()
	if status.LastPass == "" || status.LastMoved != 1 {
		t.Fatalf("status should reflect the last pass: %+v", status)
	}

	presets := d.Presets()
	if presets.Default != "grid" {
		t.Fatalf("expected default preset grid, got %q", presets.Default)
	}
	if len(presets.Presets) == 0 {
		t.Fatalf("expected preset list")
	}
	for i := 1; i < len(presets.Presets); i++ {
		if presets.Presets[i-1].Name > presets.Presets[i].Name {
			t.Fatalf("presets must be sorted by name: %v", presets.Presets)
		}
	}
}

func TestDaemonWindows(t *testing.T) {
	d, backend := newTestDaemon(t)
	addWindow(backend, 2, "kitty", 1)
	addWindow(backend, 1, "alacritty", 0)
	addWindow(backend, 3, "plasmashell", 2)

	data, err := d.Windows(ipc.ListWindowsPayload{})
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if len(data.Windows) != 2 {
		t.Fatalf("excluded processes must be dropped, got %d windows", len(data.Windows))
	}
	if data.Windows[0].ID != 1 {
		t.Fatalf("windows must be z-ordered frontmost first, got %v", data.Windows)
	}
}

func TestWatcherTriggersOnCountChange(t *testing.T) {
	d, backend := newTestDaemon(t)
	cfg := d.config()
	cfg.AutoArrange.Enabled = true

	w := NewWatcher(d, zerolog.Nop())

	// First poll primes the baseline without arranging.
	addWindow(backend, 1, "alacritty", 0)
	w.poll(cfg)
	if d.arranger.LastResult() != nil {
		t.Fatalf("priming poll must not arrange")
	}

	// Same count: no pass.
	w.poll(cfg)
	if d.arranger.LastResult() != nil {
		t.Fatalf("unchanged count must not arrange")
	}

	// New window: pass fires.
	addWindow(backend, 2, "kitty", 1)
	w.poll(cfg)
	last := d.arranger.LastResult()
	if last == nil || len(last.Outcomes) != 2 {
		t.Fatalf("count change should trigger a pass, got %+v", last)
	}
}
