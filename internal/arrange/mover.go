package arrange

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/platform"
)

// Status classifies the outcome of one window's move.
type Status string

const (
	StatusMoved   Status = "moved"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the per-window result of applying a plan.
type Outcome struct {
	Window      platform.Window
	SlotIndex   int
	Target      platform.Rect
	Overlapping bool
	Status      Status
	Reason      string
}

const (
	// defaultTolerance allows for window decorations and WM snapping when
	// verifying a move.
	defaultTolerance = 4
	defaultRetryWait = 150 * time.Millisecond
)

// Mover applies a plan through the platform backend and verifies each move
// by reading the geometry back.
type Mover struct {
	backend   platform.Backend
	log       zerolog.Logger
	tolerance int
	retryWait time.Duration
}

// NewMover creates a mover with default verification tolerance.
func NewMover(backend platform.Backend, log zerolog.Logger) *Mover {
	return &Mover{
		backend:   backend,
		log:       log,
		tolerance: defaultTolerance,
		retryWait: defaultRetryWait,
	}
}

// Apply moves every assigned window to its target. A rejected move gets one
// retry after a short delay, then is recorded as failed. Per-window failures
// never abort the pass.
func (m *Mover) Apply(plan Plan) []Outcome {
	outcomes := make([]Outcome, 0, len(plan.Assignments))

	for _, a := range plan.Assignments {
		out := Outcome{
			Window:      a.Window,
			SlotIndex:   a.SlotIndex,
			Target:      a.Target,
			Overlapping: a.Overlapping,
		}

		if withinTolerance(a.Window.Bounds, a.Target, m.tolerance) {
			out.Status = StatusSkipped
			out.Reason = "already in place"
			outcomes = append(outcomes, out)
			continue
		}

		if m.moveVerified(a.Window.ID, a.Target) {
			out.Status = StatusMoved
		} else {
			m.log.Warn().
				Uint32("window", uint32(a.Window.ID)).
				Str("title", a.Window.Title).
				Int("slot", a.SlotIndex).
				Msg("move rejected by window manager")
			out.Status = StatusFailed
			out.Reason = "move rejected"
		}
		outcomes = append(outcomes, out)
	}

	return outcomes
}

func (m *Mover) moveVerified(id platform.WindowID, target platform.Rect) bool {
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(m.retryWait)
		}
		if err := m.backend.MoveResize(id, target); err != nil {
			continue
		}

		// Give the WM a moment to apply the request before reading back.
		time.Sleep(m.retryWait / 3)
		actual, err := m.backend.WindowRect(id)
		if err == nil && withinTolerance(actual, target, m.tolerance) {
			return true
		}
	}
	return false
}

func withinTolerance(a, b platform.Rect, tol int) bool {
	return abs(a.X-b.X) <= tol &&
		abs(a.Y-b.Y) <= tol &&
		abs(a.Width-b.Width) <= tol &&
		abs(a.Height-b.Height) <= tol
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
