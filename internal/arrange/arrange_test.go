package arrange

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/layout"
	"github.com/paneshift/paneshift/internal/platform"
)

// fakeBackend implements platform.Backend in memory. rejects counts how many
// move requests a window ignores before accepting one.
type fakeBackend struct {
	displays []platform.Display
	windows  map[int][]platform.Window
	rects    map[platform.WindowID]platform.Rect
	rejects  map[platform.WindowID]int
	moves    int
}

func newFakeBackend(displays []platform.Display) *fakeBackend {
	return &fakeBackend{
		displays: displays,
		windows:  make(map[int][]platform.Window),
		rects:    make(map[platform.WindowID]platform.Rect),
		rejects:  make(map[platform.WindowID]int),
	}
}

func (f *fakeBackend) addWindow(displayID int, w platform.Window) {
	f.windows[displayID] = append(f.windows[displayID], w)
	f.rects[w.ID] = w.Bounds
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return f.displays, nil
}

func (f *fakeBackend) ListWindows(displayID int) ([]platform.Window, error) {
	return f.windows[displayID], nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.moves++
	if f.rejects[id] > 0 {
		f.rejects[id]--
		return nil
	}
	f.rects[id] = bounds
	return nil
}

func (f *fakeBackend) WindowRect(id platform.WindowID) (platform.Rect, error) {
	return f.rects[id], nil
}

func testDisplay() platform.Display {
	return platform.Display{
		ID:      0,
		Name:    "DP-1",
		Primary: true,
		Bounds:  platform.Rect{Width: 1920, Height: 1080},
		Usable:  platform.Rect{Y: 30, Width: 1920, Height: 1050},
	}
}

func testWindow(id platform.WindowID, process string, zrank int) platform.Window {
	return platform.Window{
		ID:      id,
		Process: process,
		Title:   process,
		Bounds:  platform.Rect{X: 50, Y: 50, Width: 600, Height: 400},
		ZRank:   zrank,
	}
}

func newTestArranger(backend platform.Backend) *Arranger {
	a := New(backend, zerolog.Nop())
	a.mover.retryWait = time.Millisecond
	return a
}

func TestResolveDisplay(t *testing.T) {
	displays := []platform.Display{
		{ID: 0, Name: "HDMI-1"},
		{ID: 1, Name: "DP-1", Primary: true},
	}

	d, err := ResolveDisplay(displays, "primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "DP-1" {
		t.Fatalf("expected primary display DP-1, got %s", d.Name)
	}

	// Empty selector is an alias for primary.
	d, err = ResolveDisplay(displays, "")
	if err != nil || d.Name != "DP-1" {
		t.Fatalf("empty selector should resolve to primary, got %s (%v)", d.Name, err)
	}

	d, err = ResolveDisplay(displays, "0")
	if err != nil || d.Name != "HDMI-1" {
		t.Fatalf("index 0 should resolve to HDMI-1, got %s (%v)", d.Name, err)
	}

	if _, err := ResolveDisplay(displays, "5"); !errors.Is(err, ErrMonitorNotFound) {
		t.Fatalf("expected ErrMonitorNotFound for out-of-range index, got %v", err)
	}
	if _, err := ResolveDisplay(displays, "lunar"); !errors.Is(err, ErrMonitorNotFound) {
		t.Fatalf("expected ErrMonitorNotFound for bad selector, got %v", err)
	}
	if _, err := ResolveDisplay(nil, "primary"); !errors.Is(err, ErrMonitorNotFound) {
		t.Fatalf("expected ErrMonitorNotFound with no displays, got %v", err)
	}

	// No primary flag anywhere: fall back to the first display.
	d, err = ResolveDisplay([]platform.Display{{ID: 0, Name: "VGA-1"}}, "primary")
	if err != nil || d.Name != "VGA-1" {
		t.Fatalf("expected fallback to first display, got %s (%v)", d.Name, err)
	}
}

func TestFilterMatches(t *testing.T) {
	term := testWindow(1, "alacritty", 0)
	browser := testWindow(2, "firefox", 1)
	shell := testWindow(3, "plasmashell", 2)

	f := TerminalFilter()
	if !f.Matches(term) {
		t.Fatalf("terminal filter should match alacritty")
	}
	if f.Matches(browser) {
		t.Fatalf("terminal filter should not match firefox")
	}

	all := AllFilter()
	if !all.Matches(browser) {
		t.Fatalf("all filter should match firefox")
	}
	if all.Matches(shell) {
		t.Fatalf("all filter should exclude desktop shell processes")
	}

	// Title substring matching is case-insensitive.
	term.Title = "Editor - MyProject"
	byTitle := Filter{TitleContains: "myproject"}
	if !byTitle.Matches(term) {
		t.Fatalf("title filter should match case-insensitively")
	}
	byTitle.TitleContains = "otherproject"
	if byTitle.Matches(term) {
		t.Fatalf("title filter should reject non-matching titles")
	}

	// WM class matches too, case-insensitively.
	kitty := platform.Window{ID: 4, Class: "Kitty"}
	if !TerminalFilter().Matches(kitty) {
		t.Fatalf("terminal filter should match by WM class")
	}
}

func TestEnumerateOrderAndDedupe(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	backend.addWindow(0, testWindow(30, "kitty", 2))
	backend.addWindow(0, testWindow(10, "alacritty", 0))
	backend.addWindow(0, testWindow(20, "foot", 1))
	// Tab host reporting the same handle twice collapses to one entry.
	backend.addWindow(0, testWindow(10, "alacritty", 3))
	// Same rank: handle breaks the tie.
	backend.addWindow(0, testWindow(25, "xterm", 1))

	windows, err := Enumerate(backend, 0, TerminalFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []platform.WindowID{10, 20, 25, 30}
	if len(windows) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(windows))
	}
	for i, id := range want {
		if windows[i].ID != id {
			t.Fatalf("position %d: expected window %d, got %d", i, id, windows[i].ID)
		}
	}
}

func TestEnumerateEmptyIsNotAnError(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	windows, err := Enumerate(backend, 0, TerminalFilter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(windows))
	}
}

func TestAssignOverflowAndUnderflow(t *testing.T) {
	slots := []layout.Slot{
		{Index: 0, X: 0, Y: 0, Width: 100, Height: 100},
		{Index: 1, X: 100, Y: 0, Width: 100, Height: 100},
	}

	// Overflow: three windows, two slots. The extras stack on the last slot
	// and everything on it is flagged.
	windows := []platform.Window{
		testWindow(1, "a", 0),
		testWindow(2, "b", 1),
		testWindow(3, "c", 2),
	}
	plan := Assign(windows, slots)
	if len(plan.Assignments) != 3 {
		t.Fatalf("no window may be dropped: expected 3 assignments, got %d", len(plan.Assignments))
	}
	if plan.Assignments[0].Overlapping {
		t.Fatalf("window in its own slot must not be flagged")
	}
	for i := 1; i < 3; i++ {
		a := plan.Assignments[i]
		if a.SlotIndex != 1 {
			t.Fatalf("overflow window %d should land on the last slot, got %d", i, a.SlotIndex)
		}
		if !a.Overlapping {
			t.Fatalf("window %d sharing the last slot must be flagged overlapping", i)
		}
	}
	if plan.Overflowed() != 2 {
		t.Fatalf("expected 2 overlapping windows, got %d", plan.Overflowed())
	}

	// Underflow: one window, two slots.
	plan = Assign(windows[:1], slots)
	if len(plan.UnusedSlots) != 1 || plan.UnusedSlots[0] != 1 {
		t.Fatalf("expected slot 1 recorded unused, got %v", plan.UnusedSlots)
	}
	if plan.Assignments[0].Overlapping {
		t.Fatalf("underflow must not flag anything overlapping")
	}
}

func TestMoverRetriesThenFails(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	w1 := testWindow(1, "a", 0)
	w2 := testWindow(2, "b", 1)
	backend.addWindow(0, w1)
	backend.addWindow(0, w2)

	// w1 ignores the first request and accepts the retry; w2 never accepts.
	backend.rejects[1] = 1
	backend.rejects[2] = 5

	m := NewMover(backend, zerolog.Nop())
	m.retryWait = time.Millisecond

	target1 := platform.Rect{X: 0, Y: 0, Width: 960, Height: 1050}
	target2 := platform.Rect{X: 960, Y: 0, Width: 960, Height: 1050}
	plan := Plan{Assignments: []Assignment{
		{Window: w1, SlotIndex: 0, Target: target1},
		{Window: w2, SlotIndex: 1, Target: target2},
	}}

	outcomes := m.Apply(plan)
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Status != StatusMoved {
		t.Fatalf("expected window 1 moved after retry, got %s (%s)", outcomes[0].Status, outcomes[0].Reason)
	}
	if outcomes[1].Status != StatusFailed || outcomes[1].Reason != "move rejected" {
		t.Fatalf("expected window 2 failed with move rejected, got %s (%s)", outcomes[1].Status, outcomes[1].Reason)
	}
}

func TestMoverSkipsWindowsAlreadyInPlace(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	target := platform.Rect{X: 0, Y: 0, Width: 960, Height: 1050}
	w := testWindow(1, "a", 0)
	w.Bounds = platform.Rect{X: 1, Y: 2, Width: 958, Height: 1049} // within tolerance
	backend.addWindow(0, w)

	m := NewMover(backend, zerolog.Nop())
	m.retryWait = time.Millisecond

	outcomes := m.Apply(Plan{Assignments: []Assignment{{Window: w, Target: target}}})
	if outcomes[0].Status != StatusSkipped {
		t.Fatalf("expected skip for a window already in place, got %s", outcomes[0].Status)
	}
	if backend.moves != 0 {
		t.Fatalf("no move request should be issued for a skipped window, got %d", backend.moves)
	}
}

func TestArrangeFullPass(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	backend.addWindow(0, testWindow(1, "alacritty", 0))
	backend.addWindow(0, testWindow(2, "kitty", 1))
	backend.addWindow(0, testWindow(3, "foot", 2))
	backend.addWindow(0, testWindow(4, "firefox", 3))

	a := newTestArranger(backend)
	result, err := a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindGrid, Rows: 2, Cols: 2},
		Monitor: "primary",
		Gap:     8,
		Filter:  TerminalFilter(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Outcomes) != 3 {
		t.Fatalf("expected 3 terminal windows arranged, got %d", len(result.Outcomes))
	}
	if result.Moved() != 3 || result.Failed() != 0 {
		t.Fatalf("expected 3 moved / 0 failed, got %d / %d", result.Moved(), result.Failed())
	}
	if len(result.UnusedSlots) != 1 {
		t.Fatalf("2x2 grid with 3 windows should leave 1 unused slot, got %v", result.UnusedSlots)
	}

	// Frontmost window (rank 0) takes slot 0, the top-left of the usable area.
	first := result.Outcomes[0]
	if first.Window.ID != 1 || first.SlotIndex != 0 {
		t.Fatalf("frontmost window should take slot 0, got window %d slot %d", first.Window.ID, first.SlotIndex)
	}
	if first.Target.X != 0 || first.Target.Y != 30 {
		t.Fatalf("slot 0 should start at the usable area origin (0,30), got (%d,%d)", first.Target.X, first.Target.Y)
	}

	// The backend state reflects the moves.
	if got := backend.rects[1]; got != first.Target {
		t.Fatalf("window 1 geometry not applied: %+v", got)
	}
	// The browser window was left alone.
	if got := backend.rects[4]; got != (platform.Rect{X: 50, Y: 50, Width: 600, Height: 400}) {
		t.Fatalf("filtered-out window must not move, got %+v", got)
	}
}

func TestArrangeFatalErrorsBeforeMutation(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	backend.addWindow(0, testWindow(1, "alacritty", 0))
	a := newTestArranger(backend)

	_, err := a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindGrid, Rows: 0, Cols: 2},
		Monitor: "primary",
	})
	if !errors.Is(err, layout.ErrInvalidPreset) {
		t.Fatalf("expected ErrInvalidPreset, got %v", err)
	}

	_, err = a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindLeftRight},
		Monitor: "7",
	})
	if !errors.Is(err, ErrMonitorNotFound) {
		t.Fatalf("expected ErrMonitorNotFound, got %v", err)
	}

	if backend.moves != 0 {
		t.Fatalf("fatal errors must abort before any window moves, got %d moves", backend.moves)
	}
}

func TestArrangeEmptyEnumeration(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	a := newTestArranger(backend)

	result, err := a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindGrid, Rows: 2, Cols: 2},
		Monitor: "primary",
		Filter:  TerminalFilter(),
	})
	if err != nil {
		t.Fatalf("an empty match is not an error, got %v", err)
	}
	if len(result.Outcomes) != 0 {
		t.Fatalf("expected an empty result, got %d outcomes", len(result.Outcomes))
	}
}

func TestArrangeGuardDropsOverlappingTriggers(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	a := newTestArranger(backend)

	if !a.guard.TryBegin() {
		t.Fatalf("guard should be free initially")
	}

	_, err := a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindLeftRight},
		Monitor: "primary",
	})
	if !errors.Is(err, ErrPassInFlight) {
		t.Fatalf("expected ErrPassInFlight while the guard is held, got %v", err)
	}

	a.guard.End()
	if _, err := a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindLeftRight},
		Monitor: "primary",
	}); err != nil {
		t.Fatalf("pass should run after the guard is released, got %v", err)
	}
}

func TestUndoRestoresPreviousGeometry(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	original := platform.Rect{X: 50, Y: 50, Width: 600, Height: 400}
	backend.addWindow(0, testWindow(1, "alacritty", 0))
	backend.addWindow(0, testWindow(2, "kitty", 1))

	a := newTestArranger(backend)
	if _, err := a.Arrange(Request{
		Preset:  layout.Preset{Kind: layout.KindLeftRight},
		Monitor: "primary",
		Gap:     4,
		Filter:  TerminalFilter(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.rects[1] == original {
		t.Fatalf("arrange should have moved window 1")
	}

	restored, err := a.Undo("primary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored != 2 {
		t.Fatalf("expected 2 windows restored, got %d", restored)
	}
	if backend.rects[1] != original || backend.rects[2] != original {
		t.Fatalf("undo should restore pre-pass geometry, got %+v and %+v", backend.rects[1], backend.rects[2])
	}

	// The snapshot is consumed; a second undo is a no-op.
	restored, err = a.Undo("primary")
	if err != nil || restored != 0 {
		t.Fatalf("second undo should restore nothing, got %d (%v)", restored, err)
	}
}

func TestArrangeWeightedGrid(t *testing.T) {
	backend := newFakeBackend([]platform.Display{testDisplay()})
	backend.addWindow(0, testWindow(1, "alacritty", 0))
	backend.addWindow(0, testWindow(2, "kitty", 1))

	a := newTestArranger(backend)
	result, err := a.Arrange(Request{
		Preset:     layout.Preset{Kind: layout.KindGrid, Rows: 1, Cols: 2},
		Monitor:    "primary",
		Filter:     TerminalFilter(),
		RowWeights: []float64{1},
		ColWeights: []float64{3, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.Outcomes))
	}
	if result.Outcomes[0].Target.Width != 1440 {
		t.Fatalf("expected weighted first column of 1440px, got %d", result.Outcomes[0].Target.Width)
	}
}
