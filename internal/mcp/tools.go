package mcp

import (
	"context"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/daemon"
	"github.com/paneshift/paneshift/internal/ipc"
)

func (s *Server) handleArrangeWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ArrangeWindowsInput) (*mcpsdk.CallToolResult, ArrangeWindowsOutput, error) {
	req, err := daemon.BuildRequest(s.cfg, ipc.ArrangePayload{
		Preset:  args.Preset,
		Monitor: args.Monitor,
		Gap:     args.Gap,
		Target:  args.Target,
		Title:   args.Title,
	})
	if err != nil {
		return nil, ArrangeWindowsOutput{}, err
	}

	result, err := s.arranger.Arrange(req)
	if err != nil {
		return nil, ArrangeWindowsOutput{}, err
	}

	out := ArrangeWindowsOutput{
		Monitor:     result.Display.Name,
		Preset:      result.Preset.String(),
		Moved:       result.Moved(),
		Skipped:     result.Skipped(),
		Failed:      result.Failed(),
		UnusedSlots: result.UnusedSlots,
		Windows:     make([]ArrangedWindow, 0, len(result.Outcomes)),
	}
	for _, o := range result.Outcomes {
		out.Windows = append(out.Windows, ArrangedWindow{
			ID:          uint32(o.Window.ID),
			Process:     o.Window.Process,
			Title:       o.Window.Title,
			Slot:        o.SlotIndex,
			Status:      string(o.Status),
			Reason:      o.Reason,
			Overlapping: o.Overlapping,
		})
	}

	s.log.Info().
		Str("monitor", out.Monitor).
		Str("preset", out.Preset).
		Int("moved", out.Moved).
		Int("failed", out.Failed).
		Msg("arrange_windows")

	return nil, out, nil
}

func (s *Server) handleUndoArrange(_ context.Context, _ *mcpsdk.CallToolRequest, args UndoArrangeInput) (*mcpsdk.CallToolResult, UndoArrangeOutput, error) {
	monitor := args.Monitor
	if monitor == "" {
		monitor = s.cfg.Monitor
	}

	restored, err := s.arranger.Undo(monitor)
	if err != nil {
		return nil, UndoArrangeOutput{}, err
	}
	return nil, UndoArrangeOutput{Restored: restored}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	monitor := args.Monitor
	if monitor == "" {
		monitor = s.cfg.Monitor
	}

	displays, err := s.backend.Displays()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	display, err := arrange.ResolveDisplay(displays, monitor)
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows, err := arrange.Enumerate(s.backend, display.ID, daemon.FilterFor(s.cfg, args.Target))
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{
		Monitor: display.Name,
		Windows: make([]WindowEntry, 0, len(windows)),
	}
	for _, w := range windows {
		out.Windows = append(out.Windows, WindowEntry{
			ID:      uint32(w.ID),
			PID:     w.PID,
			Process: w.Process,
			Title:   w.Title,
			X:       w.Bounds.X,
			Y:       w.Bounds.Y,
			Width:   w.Bounds.Width,
			Height:  w.Bounds.Height,
			ZRank:   w.ZRank,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	displays, err := s.backend.Displays()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	out := ListMonitorsOutput{Monitors: make([]MonitorEntry, 0, len(displays))}
	for _, d := range displays {
		out.Monitors = append(out.Monitors, MonitorEntry{
			ID:      d.ID,
			Name:    d.Name,
			Primary: d.Primary,
			X:       d.Bounds.X,
			Y:       d.Bounds.Y,
			Width:   d.Bounds.Width,
			Height:  d.Bounds.Height,
			UsableX: d.Usable.X,
			UsableY: d.Usable.Y,
			UsableW: d.Usable.Width,
			UsableH: d.Usable.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListPresets(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListPresetsInput) (*mcpsdk.CallToolResult, ListPresetsOutput, error) {
	names := make([]string, 0, len(s.cfg.Presets))
	for name := range s.cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ListPresetsOutput{Default: s.cfg.DefaultPreset}
	for _, name := range names {
		out.Presets = append(out.Presets, PresetEntry{
			Name:   name,
			Layout: s.cfg.Presets[name].Layout,
		})
	}
	return nil, out, nil
}
