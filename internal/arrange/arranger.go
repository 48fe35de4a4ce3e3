package arrange

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/layout"
	"github.com/paneshift/paneshift/internal/platform"
)

// Request describes one arrangement pass.
type Request struct {
	Preset  layout.Preset
	Monitor string
	Gap     int
	Filter  Filter

	// Optional per-row/column weights for grid presets.
	RowWeights []float64
	ColWeights []float64
}

// Result is the outcome of one pass. An empty Outcomes slice with no error
// means no windows matched the filter.
type Result struct {
	Display     platform.Display
	Preset      layout.Preset
	Outcomes    []Outcome
	UnusedSlots []int
	Timestamp   time.Time
}

// Moved returns the number of windows successfully repositioned.
func (r *Result) Moved() int { return r.count(StatusMoved) }

// Skipped returns the number of windows already in place.
func (r *Result) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of windows whose move was rejected.
func (r *Result) Failed() int { return r.count(StatusFailed) }

func (r *Result) count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Arranger runs arrangement passes against a platform backend. Passes are
// serialized by a single-flight guard; pre-move geometry is snapshotted per
// display so the last pass can be undone.
type Arranger struct {
	backend platform.Backend
	mover   *Mover
	log     zerolog.Logger
	guard   passGuard

	mu        sync.Mutex
	snapshots map[int]map[platform.WindowID]platform.Rect
	last      *Result
}

// New creates an arranger.
func New(backend platform.Backend, log zerolog.Logger) *Arranger {
	return &Arranger{
		backend:   backend,
		mover:     NewMover(backend, log),
		log:       log,
		snapshots: make(map[int]map[platform.WindowID]platform.Rect),
	}
}

// Arrange runs one synchronous pass: validate, resolve the monitor,
// enumerate, compute slots, assign, move. Fatal errors (bad preset, unknown
// monitor) abort before any window is touched. Returns ErrPassInFlight when
// another pass is still running.
func (a *Arranger) Arrange(req Request) (*Result, error) {
	if err := req.Preset.Validate(); err != nil {
		return nil, err
	}

	if !a.guard.TryBegin() {
		return nil, ErrPassInFlight
	}
	defer a.guard.End()

	displays, err := a.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("failed to list displays: %w", err)
	}

	display, err := ResolveDisplay(displays, req.Monitor)
	if err != nil {
		return nil, err
	}

	area := layout.Rect{
		X:      display.Usable.X,
		Y:      display.Usable.Y,
		Width:  display.Usable.Width,
		Height: display.Usable.Height,
	}
	if display.Usable == display.Bounds {
		a.log.Debug().Str("monitor", display.Name).Msg("no work area reported, using full monitor bounds")
	}

	windows, err := Enumerate(a.backend, display.ID, req.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	result := &Result{Display: display, Preset: req.Preset, Timestamp: time.Now()}
	if len(windows) == 0 {
		a.log.Info().Str("monitor", display.Name).Msg("no windows matched the filter")
		a.setLast(result)
		return result, nil
	}

	slotCount := req.Preset.SlotCount(len(windows))
	slots, err := a.computeSlots(req, area, slotCount)
	if err != nil {
		return nil, err
	}

	plan := Assign(windows, slots)
	if n := plan.Overflowed(); n > 0 {
		a.log.Warn().Int("windows", len(windows)).Int("slots", len(slots)).
			Msgf("%d windows stacked on the last slot", n)
	}

	a.snapshot(display.ID, windows)

	a.log.Info().
		Str("monitor", display.Name).
		Str("preset", req.Preset.String()).
		Int("windows", len(windows)).
		Int("slots", len(slots)).
		Msg("arranging windows")

	result.Outcomes = a.mover.Apply(plan)
	result.UnusedSlots = plan.UnusedSlots
	a.setLast(result)

	a.log.Info().
		Int("moved", result.Moved()).
		Int("skipped", result.Skipped()).
		Int("failed", result.Failed()).
		Msg("pass complete")

	return result, nil
}

func (a *Arranger) computeSlots(req Request, area layout.Rect, slotCount int) ([]layout.Slot, error) {
	if req.Preset.Kind == layout.KindGrid && (len(req.RowWeights) > 0 || len(req.ColWeights) > 0) {
		return layout.ComputeWeightedGrid(req.Preset.Rows, req.Preset.Cols, area, req.Gap, req.RowWeights, req.ColWeights)
	}
	return layout.Compute(req.Preset, area, req.Gap, slotCount)
}

// Undo restores the geometry captured before the last pass on the selected
// monitor. Restores are best effort; it returns how many windows were moved
// back.
func (a *Arranger) Undo(monitor string) (int, error) {
	if !a.guard.TryBegin() {
		return 0, ErrPassInFlight
	}
	defer a.guard.End()

	displays, err := a.backend.Displays()
	if err != nil {
		return 0, fmt.Errorf("failed to list displays: %w", err)
	}
	display, err := ResolveDisplay(displays, monitor)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	snapshot := a.snapshots[display.ID]
	delete(a.snapshots, display.ID)
	a.mu.Unlock()

	if len(snapshot) == 0 {
		return 0, nil
	}

	restored := 0
	for id, rect := range snapshot {
		if err := a.backend.MoveResize(id, rect); err != nil {
			a.log.Warn().Uint32("window", uint32(id)).Err(err).Msg("failed to restore window")
			continue
		}
		restored++
	}

	a.log.Info().Str("monitor", display.Name).Int("restored", restored).Msg("undo complete")
	return restored, nil
}

// LastResult returns the most recent pass result, or nil.
func (a *Arranger) LastResult() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *Arranger) setLast(r *Result) {
	a.mu.Lock()
	a.last = r
	a.mu.Unlock()
}

func (a *Arranger) snapshot(displayID int, windows []platform.Window) {
	snap := make(map[platform.WindowID]platform.Rect, len(windows))
	for _, w := range windows {
		snap[w.ID] = w.Bounds
	}

	a.mu.Lock()
	a.snapshots[displayID] = snap
	a.mu.Unlock()
}
