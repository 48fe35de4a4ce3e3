package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a layout preset variant.
type Kind string

const (
	KindGrid      Kind = "grid"       // Fixed rows × cols.
	KindColumns   Kind = "columns"    // Side-by-side columns.
	KindRows      Kind = "rows"       // Stacked rows.
	KindLeftRight Kind = "left-right" // Two panes splitting the width 50/50.
	KindTopBottom Kind = "top-bottom" // Two panes splitting the height 50/50.
	KindMainSide  Kind = "main-side"  // One main pane left, stacked panes right.
)

// DefaultMainRatio is the main pane width fraction used when a main-side
// preset does not carry an explicit ratio.
const DefaultMainRatio = 2.0 / 3.0

// Preset describes one layout rule. Exactly the fields relevant to Kind are
// meaningful; the rest stay zero.
type Preset struct {
	Kind Kind

	// Grid dimensions (KindGrid).
	Rows int
	Cols int

	// Count fixes the slot count for KindColumns/KindRows. Zero means the
	// preset scales with the enumerated window count.
	Count int

	// Ratio is the main pane width fraction for KindMainSide, in (0, 1).
	Ratio float64
}

// Parse interprets a preset spec string. Accepted spellings:
//
//	"2x3"              grid with 2 columns and 3 rows
//	"columns:4"        four columns ("columns 4" also works)
//	"rows:3"           three rows
//	"left-right"       two panes side by side ("split" is an alias)
//	"top-bottom"       two panes stacked
//	"main-side"        main pane plus stacked side panes
//	"main-side:0.75"   main pane taking 75% of the width
//	"focus"            alias for main-side with a 3/4 main pane
func Parse(s string) (Preset, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return Preset{}, fmt.Errorf("%w: empty preset spec", ErrInvalidPreset)
	}

	if c, r, ok := strings.Cut(spec, "x"); ok {
		cols, errC := strconv.Atoi(strings.TrimSpace(c))
		rows, errR := strconv.Atoi(strings.TrimSpace(r))
		if errC == nil && errR == nil {
			p := Preset{Kind: KindGrid, Rows: rows, Cols: cols}
			return p, p.Validate()
		}
	}

	if rest, ok := cutPrefix(spec, "columns"); ok {
		n, err := parseCount(rest)
		if err != nil {
			return Preset{}, err
		}
		p := Preset{Kind: KindColumns, Count: n}
		return p, p.Validate()
	}

	if rest, ok := cutPrefix(spec, "rows"); ok {
		n, err := parseCount(rest)
		if err != nil {
			return Preset{}, err
		}
		p := Preset{Kind: KindRows, Count: n}
		return p, p.Validate()
	}

	switch spec {
	case "left-right", "leftright", "split":
		return Preset{Kind: KindLeftRight}, nil
	case "top-bottom", "topbottom":
		return Preset{Kind: KindTopBottom}, nil
	}

	if rest, ok := cutPrefix(spec, "main-side"); ok {
		return parseMainSide(rest, DefaultMainRatio)
	}
	if rest, ok := cutPrefix(spec, "mainside"); ok {
		return parseMainSide(rest, DefaultMainRatio)
	}
	if rest, ok := cutPrefix(spec, "focus"); ok {
		return parseMainSide(rest, 3.0/4.0)
	}

	return Preset{}, fmt.Errorf("%w: unrecognized preset spec %q", ErrInvalidPreset, s)
}

func parseMainSide(rest string, defaultRatio float64) (Preset, error) {
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	ratio := defaultRatio
	if rest != "" {
		parsed, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Preset{}, fmt.Errorf("%w: bad main-side ratio %q", ErrInvalidPreset, rest)
		}
		ratio = parsed
	}
	p := Preset{Kind: KindMainSide, Ratio: ratio}
	return p, p.Validate()
}

func parseCount(rest string) (int, error) {
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if rest == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad count %q", ErrInvalidPreset, rest)
	}
	return n, nil
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// Validate rejects malformed preset parameters.
func (p Preset) Validate() error {
	switch p.Kind {
	case KindGrid:
		if p.Rows < 1 || p.Cols < 1 {
			return fmt.Errorf("%w: grid requires positive rows and cols (got %dx%d)", ErrInvalidPreset, p.Cols, p.Rows)
		}
	case KindColumns, KindRows:
		if p.Count < 0 {
			return fmt.Errorf("%w: count must be >= 0 (got %d)", ErrInvalidPreset, p.Count)
		}
	case KindLeftRight, KindTopBottom:
	case KindMainSide:
		if p.Ratio <= 0 || p.Ratio >= 1 {
			return fmt.Errorf("%w: main-side ratio must be in (0, 1) (got %g)", ErrInvalidPreset, p.Ratio)
		}
	default:
		return fmt.Errorf("%w: unknown preset kind %q", ErrInvalidPreset, p.Kind)
	}
	return nil
}

// SlotCount returns the number of slots this preset produces for the given
// enumerated window count. Scalable presets follow the window count (minimum
// 1); fixed presets impose their own count.
func (p Preset) SlotCount(windowCount int) int {
	if windowCount < 1 {
		windowCount = 1
	}
	switch p.Kind {
	case KindGrid:
		return p.Rows * p.Cols
	case KindColumns, KindRows:
		if p.Count > 0 {
			return p.Count
		}
		return windowCount
	case KindLeftRight, KindTopBottom:
		return 2
	case KindMainSide:
		return windowCount
	}
	return windowCount
}

// String renders a human-readable preset name.
func (p Preset) String() string {
	switch p.Kind {
	case KindGrid:
		return fmt.Sprintf("%dx%d grid", p.Cols, p.Rows)
	case KindColumns:
		if p.Count > 0 {
			return fmt.Sprintf("%d columns", p.Count)
		}
		return "columns"
	case KindRows:
		if p.Count > 0 {
			return fmt.Sprintf("%d rows", p.Count)
		}
		return "rows"
	case KindLeftRight:
		return "left / right"
	case KindTopBottom:
		return "top / bottom"
	case KindMainSide:
		return fmt.Sprintf("main-side (%.0f%%)", p.Ratio*100)
	}
	return string(p.Kind)
}
