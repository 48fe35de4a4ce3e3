package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/daemon"
	"github.com/paneshift/paneshift/internal/ipc"
	"github.com/paneshift/paneshift/internal/platform"
)

func newArrangeCmd() *cobra.Command {
	var (
		preset  string
		monitor string
		gap     int
		target  string
		title   string
	)

	cmd := &cobra.Command{
		Use:   "arrange [preset]",
		Short: "Run one arrangement pass",
		Long: `Run one arrangement pass on a monitor.

The preset is a configured name (grid, columns, split, main, focus, ...) or a
raw layout spec such as 2x3, columns:4, left-right or main-side:0.66. The pass
goes through the daemon when one is running, otherwise it talks to the display
server directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				preset = args[0]
			}

			payload := ipc.ArrangePayload{
				Preset:  preset,
				Monitor: monitor,
				Target:  target,
				Title:   title,
			}
			if cmd.Flags().Changed("gap") {
				payload.Gap = &gap
			}

			client := ipc.NewClient()
			if client.Ping() == nil {
				data, err := client.Arrange(payload)
				if err != nil {
					return err
				}
				printArrangeData(data)
				return nil
			}

			data, err := arrangeInProcess(payload)
			if err != nil {
				return err
			}
			printArrangeData(data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "", "layout preset name or spec")
	cmd.Flags().StringVarP(&monitor, "monitor", "m", "", "monitor: primary or zero-based index")
	cmd.Flags().IntVarP(&gap, "gap", "g", 0, "gap in pixels between slots")
	cmd.Flags().StringVarP(&target, "target", "t", "", "windows to arrange: terminals, all or a process list")
	cmd.Flags().StringVar(&title, "title", "", "only arrange windows whose title contains this text")

	return cmd
}

// arrangeInProcess runs a pass against the display server directly, without a
// daemon.
func arrangeInProcess(payload ipc.ArrangePayload) (*ipc.ArrangeData, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	req, err := daemon.BuildRequest(cfg, payload)
	if err != nil {
		return nil, err
	}

	backend, err := platform.NewX11Backend()
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	result, err := arrange.New(backend, log).Arrange(req)
	if err != nil {
		return nil, err
	}
	return daemon.ResultData(result), nil
}

func printArrangeData(data *ipc.ArrangeData) {
	fmt.Printf("%s on %s: %d moved, %d skipped, %d failed\n",
		data.Preset, data.Monitor, data.Moved, data.Skipped, data.Failed)

	for _, w := range data.Windows {
		line := fmt.Sprintf("  slot %d  %-12s %s", w.Slot, w.Process, truncate(w.Title, 40))
		var notes []string
		if w.Status == "failed" {
			notes = append(notes, "failed: "+w.Reason)
		}
		if w.Overlapping {
			notes = append(notes, "overlapping")
		}
		if len(notes) > 0 {
			line += "  (" + strings.Join(notes, ", ") + ")"
		}
		fmt.Println(line)
	}
	if len(data.UnusedSlots) > 0 {
		fmt.Printf("  unused slots: %v\n", data.UnusedSlots)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
