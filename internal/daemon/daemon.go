package daemon

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/paneshift/paneshift/internal/arrange"
	"github.com/paneshift/paneshift/internal/config"
	"github.com/paneshift/paneshift/internal/hotkeys"
	"github.com/paneshift/paneshift/internal/ipc"
	"github.com/paneshift/paneshift/internal/platform"
)

// Daemon runs the IPC server and the optional auto-arrange watcher around a
// shared arranger.
type Daemon struct {
	backend   platform.Backend
	arranger  *arrange.Arranger
	log       zerolog.Logger
	server    *ipc.Server
	hotkeys   *hotkeys.Handler
	startTime time.Time

	cfgMu sync.RWMutex
	cfg   *config.Config
}

// New creates a daemon.
func New(cfg *config.Config, backend platform.Backend, log zerolog.Logger) (*Daemon, error) {
	d := &Daemon{
		backend:   backend,
		arranger:  arrange.New(backend, log),
		log:       log,
		startTime: time.Now(),
		cfg:       cfg,
	}

	server, err := ipc.NewServer(d, log)
	if err != nil {
		return nil, err
	}
	d.server = server
	return d, nil
}

// Run starts the IPC server and blocks until the context is cancelled. When
// auto-arrange is enabled a watcher triggers passes on window count changes.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	watcher := NewWatcher(d, d.log)
	go watcher.Run(ctx)

	d.registerHotkeys()

	d.log.Info().Msg("daemon started")
	<-ctx.Done()
	d.log.Info().Msg("daemon shutting down")
	if d.hotkeys != nil {
		d.hotkeys.Stop()
	}
	return nil
}

// registerHotkeys binds the configured global shortcuts. Hotkeys are best
// effort: a backend without X11 access or a bad key sequence logs a warning
// and the daemon keeps running.
func (d *Daemon) registerHotkeys() {
	cfg := d.config()
	if len(cfg.Hotkeys) == 0 {
		return
	}

	handler, err := hotkeys.NewHandler(d.backend)
	if err != nil {
		d.log.Warn().Err(err).Msg("hotkeys unavailable")
		return
	}

	for key, preset := range cfg.Hotkeys {
		preset := preset
		err := handler.Register(key, func() {
			if _, err := d.Arrange(ipc.ArrangePayload{Preset: preset}); err != nil {
				d.log.Warn().Err(err).Str("preset", preset).Msg("hotkey pass failed")
			}
		})
		if err != nil {
			d.log.Warn().Err(err).Str("key", key).Msg("failed to register hotkey")
			continue
		}
		d.log.Info().Str("key", key).Str("preset", preset).Msg("hotkey registered")
	}

	d.hotkeys = handler
	go handler.Run()
}

func (d *Daemon) config() *config.Config {
	d.cfgMu.RLock()
	defer d.cfgMu.RUnlock()
	return d.cfg
}

// buildRequest merges an arrange payload with the config defaults.
func (d *Daemon) buildRequest(p ipc.ArrangePayload) (arrange.Request, error) {
	return BuildRequest(d.config(), p)
}

// BuildRequest merges an arrange payload with the config defaults. It is
// shared with the CLI's daemonless path and the MCP server.
func BuildRequest(cfg *config.Config, p ipc.ArrangePayload) (arrange.Request, error) {
	presetName := p.Preset
	if presetName == "" {
		presetName = cfg.DefaultPreset
	}
	preset, pc, err := cfg.ResolvePreset(presetName)
	if err != nil {
		return arrange.Request{}, err
	}
	rowWeights, colWeights := config.WeightsFor(preset, pc)

	monitor := p.Monitor
	if monitor == "" {
		monitor = cfg.Monitor
	}

	gap := cfg.Gap
	if p.Gap != nil {
		gap = *p.Gap
	}

	filter := FilterFor(cfg, p.Target)
	if p.Title != "" {
		filter.TitleContains = p.Title
	}

	return arrange.Request{
		Preset:     preset,
		Monitor:    monitor,
		Gap:        gap,
		Filter:     filter,
		RowWeights: rowWeights,
		ColWeights: colWeights,
	}, nil
}

// FilterFor interprets a target override: "terminals", "all", a
// comma-separated process list, or empty for the config default.
func FilterFor(cfg *config.Config, target string) arrange.Filter {
	switch target {
	case "":
		return cfg.Filter()
	case "terminals":
		return arrange.TerminalFilter()
	case "all":
		return arrange.AllFilter()
	default:
		procs := strings.Split(target, ",")
		for i := range procs {
			procs[i] = strings.TrimSpace(procs[i])
		}
		return arrange.Filter{Processes: procs, Exclude: arrange.DefaultExcludedProcesses}
	}
}

// Arrange implements ipc.Handler.
func (d *Daemon) Arrange(p ipc.ArrangePayload) (*ipc.ArrangeData, error) {
	req, err := d.buildRequest(p)
	if err != nil {
		return nil, err
	}

	result, err := d.arranger.Arrange(req)
	if err != nil {
		return nil, err
	}
	return ResultData(result), nil
}

// ResultData converts a pass result to its IPC representation.
func ResultData(result *arrange.Result) *ipc.ArrangeData {
	data := &ipc.ArrangeData{
		Monitor:     result.Display.Name,
		Preset:      result.Preset.String(),
		Moved:       result.Moved(),
		Skipped:     result.Skipped(),
		Failed:      result.Failed(),
		UnusedSlots: result.UnusedSlots,
		Windows:     make([]ipc.WindowOutcome, 0, len(result.Outcomes)),
	}
	for _, o := range result.Outcomes {
		data.Windows = append(data.Windows, ipc.WindowOutcome{
			ID:          uint32(o.Window.ID),
			Process:     o.Window.Process,
			Title:       o.Window.Title,
			Slot:        o.SlotIndex,
			Status:      string(o.Status),
			Reason:      o.Reason,
			Overlapping: o.Overlapping,
		})
	}
	return data
}

// Undo implements ipc.Handler.
func (d *Daemon) Undo(monitor string) (*ipc.UndoData, error) {
	if monitor == "" {
		monitor = d.config().Monitor
	}
	restored, err := d.arranger.Undo(monitor)
	if err != nil {
		return nil, err
	}
	return &ipc.UndoData{Restored: restored}, nil
}

// Status implements ipc.Handler.
func (d *Daemon) Status() ipc.StatusData {
	status := ipc.StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(d.startTime).Seconds()),
		AutoArrange:   d.config().AutoArrange.Enabled,
	}
	if last := d.arranger.LastResult(); last != nil {
		status.LastPass = last.Timestamp.Format(time.RFC3339)
		status.LastPreset = last.Preset.String()
		status.LastMoved = last.Moved()
		status.LastFailed = last.Failed()
	}
	return status
}

// Monitors implements ipc.Handler.
func (d *Daemon) Monitors() (*ipc.MonitorsData, error) {
	displays, err := d.backend.Displays()
	if err != nil {
		return nil, err
	}

	data := &ipc.MonitorsData{Monitors: make([]ipc.MonitorInfo, 0, len(displays))}
	for _, disp := range displays {
		data.Monitors = append(data.Monitors, ipc.MonitorInfo{
			ID:      disp.ID,
			Name:    disp.Name,
			Primary: disp.Primary,
			X:       disp.Bounds.X,
			Y:       disp.Bounds.Y,
			Width:   disp.Bounds.Width,
			Height:  disp.Bounds.Height,
			UsableX: disp.Usable.X,
			UsableY: disp.Usable.Y,
			UsableW: disp.Usable.Width,
			UsableH: disp.Usable.Height,
		})
	}
	return data, nil
}

// Windows implements ipc.Handler.
func (d *Daemon) Windows(p ipc.ListWindowsPayload) (*ipc.WindowsData, error) {
	cfg := d.config()

	monitor := p.Monitor
	if monitor == "" {
		monitor = cfg.Monitor
	}

	displays, err := d.backend.Displays()
	if err != nil {
		return nil, err
	}
	display, err := arrange.ResolveDisplay(displays, monitor)
	if err != nil {
		return nil, err
	}

	windows, err := arrange.Enumerate(d.backend, display.ID, FilterFor(cfg, p.Target))
	if err != nil {
		return nil, err
	}

	data := &ipc.WindowsData{Windows: make([]ipc.WindowInfo, 0, len(windows))}
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

// Presets implements ipc.Handler.
func (d *Daemon) Presets() ipc.PresetsData {
	return PresetsFromConfig(d.config())
}

// PresetsFromConfig lists the configured presets sorted by name.
func PresetsFromConfig(cfg *config.Config) ipc.PresetsData {
	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	data := ipc.PresetsData{Default: cfg.DefaultPreset}
	for _, name := range names {
		data.Presets = append(data.Presets, ipc.PresetInfo{
			Name:   name,
			Layout: cfg.Presets[name].Layout,
		})
	}
	return data
}

// Reload implements ipc.Handler.
func (d *Daemon) Reload() error {
	newCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	d.cfgMu.Lock()
	d.cfg = newCfg
	d.cfgMu.Unlock()

	d.log.Info().Msg("config reloaded")
	return nil
}
