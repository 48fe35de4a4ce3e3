package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidPreset reports malformed preset parameters. It is fatal to an
// arrangement pass and is raised before any window is touched.
var ErrInvalidPreset = errors.New("invalid layout preset")

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Slot is one rectangular target region for a window. Index defines the
// assignment order: row-major for grids, left-to-right / top-to-bottom
// otherwise.
type Slot struct {
	Index  int
	X      int
	Y      int
	Width  int
	Height int
}

// Compute turns a preset into concrete slot rectangles inside area. It is a
// pure function: identical inputs always yield identical slot lists.
//
// Adjacent slots are separated by exactly gap pixels; outer edges stay flush
// with the area boundary. Rectangles are integer pixels, with the division
// remainder absorbed by the last row/column so total coverage is exact.
//
// slotCount is honored by scalable presets (columns, rows, main-side without
// a fixed count); grids and two-pane presets fix their own count.
func Compute(p Preset, area Rect, gap, slotCount int) ([]Slot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if gap < 0 {
		return nil, fmt.Errorf("%w: gap must be >= 0 (got %d)", ErrInvalidPreset, gap)
	}
	if slotCount < 1 {
		return nil, fmt.Errorf("%w: slot count must be >= 1 (got %d)", ErrInvalidPreset, slotCount)
	}
	if area.Width < 1 || area.Height < 1 {
		return nil, fmt.Errorf("area has no usable space: %dx%d at %d,%d", area.Width, area.Height, area.X, area.Y)
	}

	switch p.Kind {
	case KindGrid:
		return computeGrid(area, gap, p.Rows, p.Cols)
	case KindColumns:
		n := p.Count
		if n == 0 {
			n = slotCount
		}
		return computeGrid(area, gap, 1, n)
	case KindRows:
		n := p.Count
		if n == 0 {
			n = slotCount
		}
		return computeGrid(area, gap, n, 1)
	case KindLeftRight:
		return computeGrid(area, gap, 1, 2)
	case KindTopBottom:
		return computeGrid(area, gap, 2, 1)
	case KindMainSide:
		return computeMainSide(area, gap, p.Ratio, slotCount)
	}
	return nil, fmt.Errorf("%w: unknown preset kind %q", ErrInvalidPreset, p.Kind)
}

// span is one cell extent along a single axis.
type span struct {
	off  int
	size int
}

// splitSpan divides total pixels into n cells separated by gap, remainder in
// the last cell so the spans cover total exactly.
func splitSpan(start, total, n, gap int) []span {
	usable := total - (n-1)*gap
	base := usable / n
	rem := usable - base*n

	spans := make([]span, n)
	off := start
	for i := 0; i < n; i++ {
		size := base
		if i == n-1 {
			size += rem
		}
		spans[i] = span{off: off, size: size}
		off += size + gap
	}
	return spans
}

func computeGrid(area Rect, gap, rows, cols int) ([]Slot, error) {
	if (area.Width-(cols-1)*gap)/cols < 1 || (area.Height-(rows-1)*gap)/rows < 1 {
		return nil, fmt.Errorf(
			"insufficient space for layout: area=%dx%d rows=%d cols=%d gap=%d",
			area.Width, area.Height, rows, cols, gap,
		)
	}

	colSpans := splitSpan(area.X, area.Width, cols, gap)
	rowSpans := splitSpan(area.Y, area.Height, rows, gap)

	slots := make([]Slot, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			slots = append(slots, Slot{
				Index:  r*cols + c,
				X:      colSpans[c].off,
				Y:      rowSpans[r].off,
				Width:  colSpans[c].size,
				Height: rowSpans[r].size,
			})
		}
	}
	return slots, nil
}

func computeMainSide(area Rect, gap int, ratio float64, slotCount int) ([]Slot, error) {
	mainWidth := int(ratio * float64(area.Width-gap))

	if slotCount == 1 {
		// Single window: only the main pane, no side stack.
		if mainWidth < 1 {
			return nil, fmt.Errorf("insufficient space for main pane: area=%dx%d gap=%d", area.Width, area.Height, gap)
		}
		return []Slot{{Index: 0, X: area.X, Y: area.Y, Width: mainWidth, Height: area.Height}}, nil
	}

	sideWidth := area.Width - mainWidth - gap
	sideCount := slotCount - 1
	if mainWidth < 1 || sideWidth < 1 || (area.Height-(sideCount-1)*gap)/sideCount < 1 {
		return nil, fmt.Errorf(
			"insufficient space for main-side layout: area=%dx%d sides=%d gap=%d",
			area.Width, area.Height, sideCount, gap,
		)
	}

	slots := make([]Slot, 0, slotCount)
	slots = append(slots, Slot{Index: 0, X: area.X, Y: area.Y, Width: mainWidth, Height: area.Height})

	sideX := area.X + mainWidth + gap
	for i, sp := range splitSpan(area.Y, area.Height, sideCount, gap) {
		slots = append(slots, Slot{
			Index:  i + 1,
			X:      sideX,
			Y:      sp.off,
			Width:  sideWidth,
			Height: sp.size,
		})
	}
	return slots, nil
}
