package mcp

// ArrangeWindowsInput is the input for the arrange_windows tool.
type ArrangeWindowsInput struct {
	Preset  string `json:"preset,omitempty" jsonschema:"Preset name from config or a raw layout spec such as 2x3, columns:4, left-right, main-side:0.66 (default: the configured default preset)"`
	Monitor string `json:"monitor,omitempty" jsonschema:"Monitor selector: primary or a zero-based index (default: the configured monitor)"`
	Gap     *int   `json:"gap,omitempty" jsonschema:"Gap in pixels between adjacent slots (default: the configured gap)"`
	Target  string `json:"target,omitempty" jsonschema:"Which windows to arrange: terminals, all, or a comma-separated process list (default: the configured target)"`
	Title   string `json:"title,omitempty" jsonschema:"Only arrange windows whose title contains this substring (case-insensitive)"`
}

// ArrangedWindow describes one window's outcome in an arrangement pass.
type ArrangedWindow struct {
	ID          uint32 `json:"id"`
	Process     string `json:"process"`
	Title       string `json:"title"`
	Slot        int    `json:"slot"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Overlapping bool   `json:"overlapping,omitempty"`
}

// ArrangeWindowsOutput is the result of the arrange_windows tool.
type ArrangeWindowsOutput struct {
	Monitor     string           `json:"monitor"`
	Preset      string           `json:"preset"`
	Moved       int              `json:"moved"`
	Skipped     int              `json:"skipped"`
	Failed      int              `json:"failed"`
	UnusedSlots []int            `json:"unused_slots,omitempty"`
	Windows     []ArrangedWindow `json:"windows"`
}

// UndoArrangeInput is the input for the undo_arrange tool.
type UndoArrangeInput struct {
	Monitor string `json:"monitor,omitempty" jsonschema:"Monitor selector: primary or a zero-based index (default: the configured monitor)"`
}

// UndoArrangeOutput is the result of the undo_arrange tool.
type UndoArrangeOutput struct {
	Restored int `json:"restored"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Monitor string `json:"monitor,omitempty" jsonschema:"Monitor selector: primary or a zero-based index (default: the configured monitor)"`
	Target  string `json:"target,omitempty" jsonschema:"Which windows to list: terminals, all, or a comma-separated process list (default: the configured target)"`
}

// WindowEntry describes one candidate window.
type WindowEntry struct {
	ID      uint32 `json:"id"`
	PID     int    `json:"pid"`
	Process string `json:"process"`
	Title   string `json:"title"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	ZRank   int    `json:"z_rank"`
}

// ListWindowsOutput is the result of the list_windows tool.
type ListWindowsOutput struct {
	Monitor string        `json:"monitor"`
	Windows []WindowEntry `json:"windows"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorEntry describes one connected monitor.
type MonitorEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	UsableX int    `json:"usable_x"`
	UsableY int    `json:"usable_y"`
	UsableW int    `json:"usable_width"`
	UsableH int    `json:"usable_height"`
}

// ListMonitorsOutput is the result of the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorEntry `json:"monitors"`
}

// ListPresetsInput is the input for the list_presets tool.
type ListPresetsInput struct{}

// PresetEntry describes one configured preset.
type PresetEntry struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

// ListPresetsOutput is the result of the list_presets tool.
type ListPresetsOutput struct {
	Default string        `json:"default"`
	Presets []PresetEntry `json:"presets"`
}
