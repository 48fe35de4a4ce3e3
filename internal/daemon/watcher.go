package daemon

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/ipc"
)

// Watcher polls the window count on the configured monitor and triggers an
// arrangement pass when it changes. Triggers that land while a pass is
// running are dropped by the arranger's guard.
type Watcher struct {
	daemon    *Daemon
	log       zerolog.Logger
	lastCount int
	primed    bool
}

// NewWatcher creates a watcher bound to the daemon's arranger and config.
func NewWatcher(d *Daemon, log zerolog.Logger) *Watcher {
	return &Watcher{daemon: d, log: log}
}

// Run polls until the context is cancelled. Auto-arrange being disabled in
// the config pauses polling without stopping the loop, so a config reload
// can switch it on.
func (w *Watcher) Run(ctx context.Context) {
	for {
		cfg := w.daemon.config()

		interval := time.Duration(cfg.AutoArrange.IntervalMS) * time.Millisecond
		if interval <= 0 {
			interval = time.Duration(config.DefaultIntervalMS) * time.Millisecond
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}

		if !cfg.AutoArrange.Enabled {
			w.primed = false
			continue
		}

		w.poll(cfg)
	}
}

func (w *Watcher) poll(cfg *config.Config) {
	count, err := w.windowCount(cfg)
	if err != nil {
		w.log.Debug().Err(err).Msg("watcher poll failed")
		return
	}

	// First observation only primes the baseline.
	if !w.primed {
		w.lastCount = count
		w.primed = true
		return
	}

	if count == w.lastCount {
		return
	}
	w.log.Info().Int("was", w.lastCount).Int("now", count).Msg("window count changed")
	w.lastCount = count

	preset := cfg.AutoArrange.Preset
	if preset == "" {
		preset = cfg.DefaultPreset
	}

	_, err = w.daemon.Arrange(ipc.ArrangePayload{Preset: preset})
	switch {
	case errors.Is(err, arrange.ErrPassInFlight):
		w.log.Debug().Msg("auto-arrange trigger dropped, pass in flight")
	case err != nil:
		w.log.Warn().Err(err).Msg("auto-arrange pass failed")
	}
}

func (w *Watcher) windowCount(cfg *config.Config) (int, error) {
	displays, err := w.daemon.backend.Displays()
	if err != nil {
		return 0, err
	}
	display, err := arrange.ResolveDisplay(displays, cfg.Monitor)
	if err != nil {
		return 0, err
	}
	windows, err := arrange.Enumerate(w.daemon.backend, display.ID, cfg.Filter())
	if err != nil {
		return 0, err
	}
	return len(windows), nil
}
