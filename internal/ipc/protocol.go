package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandArrange     CommandType = "ARRANGE"
	CommandUndo        CommandType = "UNDO"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandListPresets CommandType = "LIST_PRESETS"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// ArrangePayload is the payload for the ARRANGE command. Preset is a named
// preset or a raw spec string; empty fields fall back to the daemon's config.
type ArrangePayload struct {
	Preset  string `json:"preset,omitempty"`
	Monitor string `json:"monitor,omitempty"`
	Gap     *int   `json:"gap,omitempty"`
	Target  string `json:"target,omitempty"`
	Title   string `json:"title,omitempty"`
}

// WindowOutcome is the per-window result inside ArrangeData.
type WindowOutcome struct {
	ID          uint32 `json:"id"`
	Process     string `json:"process,omitempty"`
	Title       string `json:"title,omitempty"`
	Slot        int    `json:"slot"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Overlapping bool   `json:"overlapping,omitempty"`
}

// ArrangeData is returned by ARRANGE.
type ArrangeData struct {
	Monitor     string          `json:"monitor"`
	Preset      string          `json:"preset"`
	Moved       int             `json:"moved"`
	Skipped     int             `json:"skipped"`
	Failed      int             `json:"failed"`
	UnusedSlots []int           `json:"unused_slots,omitempty"`
	Windows     []WindowOutcome `json:"windows"`
}

// UndoPayload is the payload for the UNDO command.
type UndoPayload struct {
	Monitor string `json:"monitor,omitempty"`
}

// UndoData is returned by UNDO.
type UndoData struct {
	Restored int `json:"restored"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool   `json:"daemon_running"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	AutoArrange   bool   `json:"auto_arrange"`
	LastPass      string `json:"last_pass,omitempty"`
	LastPreset    string `json:"last_preset,omitempty"`
	LastMoved     int    `json:"last_moved"`
	LastFailed    int    `json:"last_failed"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
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

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ListWindowsPayload is the payload for LIST_WINDOWS.
type ListWindowsPayload struct {
	Monitor string `json:"monitor,omitempty"`
	Target  string `json:"target,omitempty"`
}

// WindowInfo describes one enumerated window.
type WindowInfo struct {
	ID      uint32 `json:"id"`
	PID     int    `json:"pid,omitempty"`
	Process string `json:"process,omitempty"`
	Title   string `json:"title,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	ZRank   int    `json:"z_rank"`
}

// WindowsData represents the data returned by LIST_WINDOWS.
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// PresetInfo is one named preset.
type PresetInfo struct {
	Name   string `json:"name"`
	Layout string `json:"layout"`
}

// PresetsData represents the data returned by LIST_PRESETS.
type PresetsData struct {
	Presets []PresetInfo `json:"presets"`
	Default string       `json:"default"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
