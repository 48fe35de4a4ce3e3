package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paneshift/paneshift/internal/daemon"
	"github.com/paneshift/paneshift/internal/platform"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the arranger daemon",
		Long: `Run the daemon that serves IPC requests on the paneshift socket and,
when auto_arrange is enabled, re-runs the default preset as windows open
and close.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			backend, err := platform.NewX11Backend()
			if err != nil {
				return err
			}
			defer backend.Close()

			d, err := daemon.New(cfg, backend, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return d.Run(ctx)
		},
	}
}
