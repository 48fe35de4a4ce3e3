package layout

import (
	"errors"
	"reflect"
	"testing"
)

func TestComputeGrid_ExactCoverage(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1200, Height: 800}
	slots, err := Compute(Preset{Kind: KindGrid, Rows: 2, Cols: 3}, area, 10, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}

	// Interior gaps only: usable width = 1200 - 2*10 = 1180, base 393,
	// remainder 1 on the last column. Heights: (800-10)/2 = 395.
	if slots[0].X != 0 || slots[0].Y != 0 {
		t.Fatalf("first slot must be flush with the area origin, got (%d,%d)", slots[0].X, slots[0].Y)
	}
	if slots[0].Width != 393 || slots[0].Height != 395 {
		t.Fatalf("expected first slot 393x395, got %dx%d", slots[0].Width, slots[0].Height)
	}
	if slots[1].X != 403 {
		t.Fatalf("expected gap of 10 between columns, second slot at x=403, got %d", slots[1].X)
	}
	if slots[2].Width != 394 {
		t.Fatalf("expected remainder in last column (394), got %d", slots[2].Width)
	}
	if got := slots[2].X + slots[2].Width; got != 1200 {
		t.Fatalf("last column must end at the area edge, got %d", got)
	}
	if got := slots[5].Y + slots[5].Height; got != 800 {
		t.Fatalf("last row must end at the area edge, got %d", got)
	}
}

func TestCompute_SlotsWithinAreaAndDisjoint(t *testing.T) {
	area := Rect{X: 100, Y: 50, Width: 1111, Height: 777}
	presets := []Preset{
		{Kind: KindGrid, Rows: 3, Cols: 4},
		{Kind: KindColumns, Count: 5},
		{Kind: KindRows, Count: 3},
		{Kind: KindLeftRight},
		{Kind: KindTopBottom},
		{Kind: KindMainSide, Ratio: 0.6},
	}

	for _, p := range presets {
		slots, err := Compute(p, area, 7, 5)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		for i, s := range slots {
			if s.Width < 1 || s.Height < 1 {
				t.Fatalf("%s: slot %d has degenerate size %dx%d", p, i, s.Width, s.Height)
			}
			if s.X < area.X || s.Y < area.Y ||
				s.X+s.Width > area.X+area.Width || s.Y+s.Height > area.Y+area.Height {
				t.Fatalf("%s: slot %d extends outside the area: %+v", p, i, s)
			}
			for j, o := range slots[:i] {
				if s.X < o.X+o.Width && o.X < s.X+s.Width &&
					s.Y < o.Y+o.Height && o.Y < s.Y+s.Height {
					t.Fatalf("%s: slots %d and %d overlap", p, j, i)
				}
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1921, Height: 1033}
	p := Preset{Kind: KindGrid, Rows: 2, Cols: 2}

	first, err := Compute(p, area, 9, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(p, area, 9, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different slot lists:\n%v\n%v", first, second)
	}
}

func TestCompute_ColumnsScaleWithSlotCount(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1000, Height: 500}

	slots, err := Compute(Preset{Kind: KindColumns}, area, 0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected 4 columns from slotCount, got %d", len(slots))
	}
	for i, s := range slots {
		if s.Height != 500 {
			t.Fatalf("column %d should span the full height, got %d", i, s.Height)
		}
		if s.Width != 250 {
			t.Fatalf("column %d expected width 250, got %d", i, s.Width)
		}
	}

	// A fixed count overrides the requested slot count.
	slots, err = Compute(Preset{Kind: KindColumns, Count: 2}, area, 0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected fixed count of 2 columns, got %d", len(slots))
	}
}

func TestCompute_LeftRight(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1000, Height: 600}
	slots, err := Compute(Preset{Kind: KindLeftRight}, area, 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].Width != 495 || slots[1].Width != 495 {
		t.Fatalf("expected both panes 495 wide, got %d and %d", slots[0].Width, slots[1].Width)
	}
	if slots[1].X != 505 {
		t.Fatalf("expected right pane at x=505, got %d", slots[1].X)
	}
}

func TestCompute_MainSide(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 1200, Height: 900}
	slots, err := Compute(Preset{Kind: KindMainSide, Ratio: 0.5}, area, 10, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots (main + 3 side), got %d", len(slots))
	}

	main := slots[0]
	if main.X != 0 || main.Y != 0 || main.Width != 595 || main.Height != 900 {
		t.Fatalf("unexpected main pane geometry: %+v", main)
	}

	sideX := main.Width + 10
	for i, s := range slots[1:] {
		if s.X != sideX {
			t.Fatalf("side pane %d expected x=%d, got %d", i, sideX, s.X)
		}
		if s.Width != 1200-main.Width-10 {
			t.Fatalf("side pane %d expected width %d, got %d", i, 1200-main.Width-10, s.Width)
		}
	}
	// 3 stacked panes, 2 interior gaps: usable 880, base 293, remainder 1.
	if slots[1].Height != 293 || slots[3].Height != 294 {
		t.Fatalf("expected side heights 293/293/294, got %d/%d/%d",
			slots[1].Height, slots[2].Height, slots[3].Height)
	}
	if got := slots[3].Y + slots[3].Height; got != 900 {
		t.Fatalf("last side pane must end at the area edge, got %d", got)
	}
}

func TestCompute_MainSideSingleWindow(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 900, Height: 600}
	slots, err := Compute(Preset{Kind: KindMainSide, Ratio: 0.6}, area, 8, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected a single main pane, got %d slots", len(slots))
	}
	if slots[0].Height != 600 {
		t.Fatalf("main pane should span the full height, got %d", slots[0].Height)
	}
}

func TestCompute_RejectsInvalidPresets(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 800, Height: 600}

	cases := []struct {
		name      string
		preset    Preset
		gap       int
		slotCount int
	}{
		{"zero rows", Preset{Kind: KindGrid, Rows: 0, Cols: 2}, 0, 1},
		{"zero cols", Preset{Kind: KindGrid, Rows: 2, Cols: 0}, 0, 1},
		{"ratio too low", Preset{Kind: KindMainSide, Ratio: 0}, 0, 2},
		{"ratio too high", Preset{Kind: KindMainSide, Ratio: 1}, 0, 2},
		{"negative gap", Preset{Kind: KindLeftRight}, -1, 2},
		{"zero slot count", Preset{Kind: KindColumns}, 0, 0},
		{"unknown kind", Preset{Kind: "spiral"}, 0, 1},
	}

	for _, tc := range cases {
		if _, err := Compute(tc.preset, area, tc.gap, tc.slotCount); !errors.Is(err, ErrInvalidPreset) {
			t.Fatalf("%s: expected ErrInvalidPreset, got %v", tc.name, err)
		}
	}
}

func TestCompute_ErrorsWhenInsufficientSpace(t *testing.T) {
	area := Rect{X: 0, Y: 0, Width: 20, Height: 10}
	if _, err := Compute(Preset{Kind: KindGrid, Rows: 1, Cols: 2}, area, 20, 2); err == nil {
		t.Fatalf("expected error for insufficient space")
	}
	if errors.Is(func() error {
		_, err := Compute(Preset{Kind: KindGrid, Rows: 1, Cols: 2}, area, 20, 2)
		return err
	}(), ErrInvalidPreset) {
		t.Fatalf("insufficient space is not an invalid preset")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		spec string
		want Preset
	}{
		{"2x3", Preset{Kind: KindGrid, Rows: 3, Cols: 2}},
		{" 4X2 ", Preset{Kind: KindGrid, Rows: 2, Cols: 4}},
		{"columns:4", Preset{Kind: KindColumns, Count: 4}},
		{"columns 3", Preset{Kind: KindColumns, Count: 3}},
		{"columns", Preset{Kind: KindColumns}},
		{"rows:2", Preset{Kind: KindRows, Count: 2}},
		{"left-right", Preset{Kind: KindLeftRight}},
		{"split", Preset{Kind: KindLeftRight}},
		{"top-bottom", Preset{Kind: KindTopBottom}},
		{"main-side", Preset{Kind: KindMainSide, Ratio: DefaultMainRatio}},
		{"main-side:0.75", Preset{Kind: KindMainSide, Ratio: 0.75}},
		{"focus", Preset{Kind: KindMainSide, Ratio: 0.75}},
	}

	for _, tc := range cases {
		got, err := Parse(tc.spec)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.spec, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", tc.spec, got, tc.want)
		}
	}

	for _, bad := range []string{"", "0x2", "2x0", "columns:0", "main-side:2", "spiral"} {
		if _, err := Parse(bad); !errors.Is(err, ErrInvalidPreset) {
			t.Fatalf("Parse(%q): expected ErrInvalidPreset, got %v", bad, err)
		}
	}
}

func TestSlotCount(t *testing.T) {
	cases := []struct {
		preset  Preset
		windows int
		want    int
	}{
		{Preset{Kind: KindGrid, Rows: 2, Cols: 3}, 1, 6},
		{Preset{Kind: KindGrid, Rows: 2, Cols: 3}, 10, 6},
		{Preset{Kind: KindColumns}, 5, 5},
		{Preset{Kind: KindColumns, Count: 3}, 5, 3},
		{Preset{Kind: KindRows}, 0, 1},
		{Preset{Kind: KindLeftRight}, 7, 2},
		{Preset{Kind: KindMainSide, Ratio: 0.5}, 4, 4},
	}
	for _, tc := range cases {
		if got := tc.preset.SlotCount(tc.windows); got != tc.want {
			t.Fatalf("%s with %d windows: expected %d slots, got %d", tc.preset, tc.windows, tc.want, got)
		}
	}
}
