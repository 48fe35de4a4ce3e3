package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/daemon"
	"github.com/paneshift/paneshift/internal/ipc"
	"github.com/paneshift/paneshift/internal/platform"
)

func newMonitorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List connected monitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := fetchMonitors()
			if err != nil {
				return err
			}
			for _, m := range data.Monitors {
				marker := " "
				if m.Primary {
					marker = "*"
				}
				fmt.Printf("%s %d  %-10s %dx%d+%d+%d  usable %dx%d+%d+%d\n",
					marker, m.ID, m.Name,
					m.Width, m.Height, m.X, m.Y,
					m.UsableW, m.UsableH, m.UsableX, m.UsableY)
			}
			return nil
		},
	}
}

func fetchMonitors() (*ipc.MonitorsData, error) {
	client := ipc.NewClient()
	if client.Ping() == nil {
		return client.GetMonitors()
	}

	backend, err := platform.NewX11Backend()
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	displays, err := backend.Displays()
	if err != nil {
		return nil, err
	}

	data := &ipc.MonitorsData{}
	for _, d := range displays {
		data.Monitors = append(data.Monitors, ipc.MonitorInfo{
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
	return data, nil
}

func newWindowsCmd() *cobra.Command {
	var (
		monitor string
		target  string
	)

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List the windows a pass would arrange, frontmost first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := fetchWindows(ipc.ListWindowsPayload{Monitor: monitor, Target: target})
			if err != nil {
				return err
			}
			if len(data.Windows) == 0 {
				fmt.Println("no matching windows")
				return nil
			}
			for _, w := range data.Windows {
				fmt.Printf("%2d  0x%08x  %-14s %dx%d+%d+%d  %s\n",
					w.ZRank, w.ID, w.Process,
					w.Width, w.Height, w.X, w.Y, truncate(w.Title, 50))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&monitor, "monitor", "m", "", "monitor: primary or zero-based index")
	cmd.Flags().StringVarP(&target, "target", "t", "", "windows to list: terminals, all or a process list")
	return cmd
}

func fetchWindows(p ipc.ListWindowsPayload) (*ipc.WindowsData, error) {
	client := ipc.NewClient()
	if client.Ping() == nil {
		return client.ListWindows(p)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	backend, err := platform.NewX11Backend()
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	monitor := p.Monitor
	if monitor == "" {
		monitor = cfg.Monitor
	}
	displays, err := backend.Displays()
	if err != nil {
		return nil, err
	}
	display, err := arrange.ResolveDisplay(displays, monitor)
	if err != nil {
		return nil, err
	}

	windows, err := arrange.Enumerate(backend, display.ID, daemon.FilterFor(cfg, p.Target))
	if err != nil {
		return nil, err
	}

	data := &ipc.WindowsData{}
	for _, w := range windows {
		data.Windows = append(data.Windows, ipc.WindowInfo{
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
	return data, nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the configured layout presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			d := daemon.PresetsFromConfig(cfg)
			for _, p := range d.Presets {
				marker := " "
				if p.Name == d.Default {
					marker = "*"
				}
				fmt.Printf("%s %-10s %s\n", marker, p.Name, p.Layout)
			}
			return nil
		},
	}
}
