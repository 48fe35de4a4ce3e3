package layout

import "fmt"

// ComputeWeightedGrid computes grid slots with per-column and per-row weight
// fractions. Weights are normalized before use, so any positive values work;
// leftover pixels from rounding go to the last row/column. len(colWeights)
// must equal cols and len(rowWeights) must equal rows.
func ComputeWeightedGrid(rows, cols int, area Rect, gap int, rowWeights, colWeights []float64) ([]Slot, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid requires positive rows and cols (got %dx%d)", ErrInvalidPreset, cols, rows)
	}
	if len(rowWeights) != rows || len(colWeights) != cols {
		return nil, fmt.Errorf("%w: weight counts must match grid (%d rows, %d cols; got %d, %d)",
			ErrInvalidPreset, rows, cols, len(rowWeights), len(colWeights))
	}

	colSpans, err := weightedSpans(area.X, area.Width, gap, colWeights)
	if err != nil {
		return nil, err
	}
	rowSpans, err := weightedSpans(area.Y, area.Height, gap, rowWeights)
	if err != nil {
		return nil, err
	}

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

func weightedSpans(start, total, gap int, weights []float64) ([]span, error) {
	var sum float64
	for _, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: weights must be positive (got %g)", ErrInvalidPreset, w)
		}
		sum += w
	}

	n := len(weights)
	usable := total - (n-1)*gap
	if usable < n {
		return nil, fmt.Errorf("insufficient space for weighted layout: %dpx across %d cells with gap %d", total, n, gap)
	}

	sizes := make([]int, n)
	allocated := 0
	for i, w := range weights {
		sizes[i] = int(float64(usable) * (w / sum))
		allocated += sizes[i]
	}
	sizes[n-1] += usable - allocated

	spans := make([]span, n)
	off := start
	for i, size := range sizes {
		spans[i] = span{off: off, size: size}
		off += size + gap
	}
	return spans, nil
}
