package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paneshift/paneshift/internal/ipc"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ipc.NewClient()
			status, err := client.GetStatus()
			if err != nil {
				fmt.Println("daemon: not running")
				return nil
			}

			fmt.Println("daemon: running")
			fmt.Printf("uptime: %ds\n", status.UptimeSeconds)
			fmt.Printf("auto-arrange: %v\n", status.AutoArrange)
			if status.LastPass != "" {
				fmt.Printf("last pass: %s (%s, %d moved, %d failed)\n",
					status.LastPass, status.LastPreset, status.LastMoved, status.LastFailed)
			} else {
				fmt.Println("last pass: none")
			}
			return nil
		},
	}
}

func newUndoCmd() *cobra.Command {
	var monitor string

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore window geometry from before the last pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ipc.NewClient()
			data, err := client.Undo(monitor)
			if err != nil {
				return err
			}
			fmt.Printf("restored %d windows\n", data.Restored)
			return nil
		},
	}

	cmd.Flags().StringVarP(&monitor, "monitor", "m", "", "monitor: primary or zero-based index")
	return cmd
}
