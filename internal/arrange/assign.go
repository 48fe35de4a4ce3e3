package arrange

import (
	"github.com/paneshift/paneshift/internal/layout"
	"github.com/paneshift/paneshift/internal/platform"
)

// Assignment pairs one window with its target slot. Overlapping marks
// overflow windows that share the last slot with others.
type Assignment struct {
	Window      platform.Window
	SlotIndex   int
	Target      platform.Rect
	Overlapping bool
}

// Plan is the outcome of pairing windows with slots, before any window is
// moved. UnusedSlots lists slot indexes left without a window.
type Plan struct {
	Assignments []Assignment
	UnusedSlots []int
}

// Overflowed reports the number of windows stacked on the last slot beyond
// the first occupant.
func (p Plan) Overflowed() int {
	n := 0
	for _, a := range p.Assignments {
		if a.Overlapping {
			n++
		}
	}
	return n
}

// Assign pairs windows with slots index for index, in enumeration order
// against slot index order. Extra windows beyond the last slot stack on it
// and are flagged overlapping; extra slots are recorded unused. Windows are
// never silently dropped.
func Assign(windows []platform.Window, slots []layout.Slot) Plan {
	var plan Plan
	if len(slots) == 0 {
		return plan
	}

	plan.Assignments = make([]Assignment, 0, len(windows))
	for i, w := range windows {
		slotIdx := i
		overflow := false
		if slotIdx >= len(slots) {
			slotIdx = len(slots) - 1
			overflow = true
		}
		s := slots[slotIdx]
		plan.Assignments = append(plan.Assignments, Assignment{
			Window:      w,
			SlotIndex:   s.Index,
			Target:      platform.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height},
			Overlapping: overflow,
		})
	}

	// The first overflow window shares its slot too.
	if len(windows) > len(slots) {
		plan.Assignments[len(slots)-1].Overlapping = true
	}

	for i := len(windows); i < len(slots); i++ {
		plan.UnusedSlots = append(plan.UnusedSlots, slots[i].Index)
	}

	return plan
}
