package tui

import (
	"fmt"
	"strings"

	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/layout"
)

// renderPreview draws the slots a preset would produce onto a character
// canvas. The canvas simulates a monitor at double resolution so thin slots
// still get visible borders.
func renderPreview(cfg *config.Config, presetName string, windowCount, gap, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	preset, pc, err := cfg.ResolvePreset(presetName)
	if err != nil {
		return messageCanvas(err.Error(), width, height)
	}

	area := layout.Rect{Width: width * 2, Height: height * 2}
	count := preset.SlotCount(windowCount)

	// Scale the pixel gap down to canvas resolution, keeping at least a
	// visible seam when a gap is configured.
	canvasGap := gap / 8
	if gap > 0 && canvasGap == 0 {
		canvasGap = 1
	}

	var slots []layout.Slot
	rowWeights, colWeights := config.WeightsFor(preset, pc)
	if preset.Kind == layout.KindGrid && (rowWeights != nil || colWeights != nil) {
		slots, err = layout.ComputeWeightedGrid(preset.Rows, preset.Cols, area, canvasGap, rowWeights, colWeights)
	} else {
		slots, err = layout.Compute(preset, area, canvasGap, count)
	}
	if err != nil {
		return messageCanvas(err.Error(), width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, slot := range slots {
		occupants := 1
		if slot.Index == len(slots)-1 && windowCount > len(slots) {
			occupants += windowCount - len(slots)
		}
		drawSlot(canvas, slot, occupants, area.Width, area.Height, width, height)
	}

	drawBorder(canvas, width, height)

	lines := make([]string, height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawSlot(canvas [][]rune, slot layout.Slot, occupants, monW, monH, canvasW, canvasH int) {
	x1 := slot.X * canvasW / monW
	y1 := slot.Y * canvasH / monH
	x2 := (slot.X + slot.Width) * canvasW / monW
	y2 := (slot.Y + slot.Height) * canvasH / monH

	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 >= canvasW-1 {
		x2 = canvasW - 2
	}
	if y2 >= canvasH-1 {
		y2 = canvasH - 2
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	label := fmt.Sprintf("%d", slot.Index+1)
	if occupants > 1 {
		label = fmt.Sprintf("%d (+%d)", slot.Index+1, occupants-1)
	}
	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	startX := centerX - len(label)/2
	if centerY > y1 && centerY < y2 {
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}

func messageCanvas(msg string, width, height int) []string {
	lines := emptyCanvas(width, height)
	if len(msg) > width {
		msg = msg[:width]
	}
	lines[height/2] = msg + strings.Repeat(" ", width-len(msg))
	return lines
}
