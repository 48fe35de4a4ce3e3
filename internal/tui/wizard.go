package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/paneshift/paneshift/internal/config"
)

// RunWizard walks the user through an initial config and writes it to path.
// It starts from the built-in defaults so the result is always complete.
func RunWizard(path string) error {
	cfg := config.DefaultConfig()

	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	presetOpts := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		presetOpts = append(presetOpts, huh.NewOption(
			fmt.Sprintf("%s (%s)", name, cfg.Presets[name].Layout), name))
	}

	var (
		target      = cfg.Target
		processes   string
		monitor     = cfg.Monitor
		gap         = strconv.Itoa(cfg.Gap)
		autoArrange = cfg.AutoArrange.Enabled
		interval    = strconv.Itoa(cfg.AutoArrange.IntervalMS)
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default preset").
				Description("Layout used when no preset is given on the command line.").
				Options(presetOpts...).
				Value(&cfg.DefaultPreset),

			huh.NewSelect[string]().
				Title("Windows to arrange").
				Options(
					huh.NewOption("Terminal emulators", "terminals"),
					huh.NewOption("All normal windows", "all"),
					huh.NewOption("Specific processes", "custom"),
				).
				Value(&target),

			huh.NewInput().
				Title("Processes").
				Description("Comma-separated process names, only used for the specific-processes target.").
				Placeholder("alacritty, kitty").
				Value(&processes),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Monitor").
				Description("primary or a zero-based monitor index.").
				Value(&monitor),

			huh.NewInput().
				Title("Gap (pixels)").
				Validate(validateInt(0, 200)).
				Value(&gap),

			huh.NewConfirm().
				Title("Auto-arrange").
				Description("Re-run the default preset when windows open or close.").
				Value(&autoArrange),

			huh.NewInput().
				Title("Auto-arrange poll interval (ms)").
				Validate(validateInt(100, 60000)).
				Value(&interval),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Target = target
	if target == "custom" {
		for _, p := range strings.Split(processes, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Processes = append(cfg.Processes, p)
			}
		}
	}
	cfg.Monitor = monitor
	cfg.Gap, _ = strconv.Atoi(gap)
	cfg.AutoArrange.Enabled = autoArrange
	cfg.AutoArrange.IntervalMS, _ = strconv.Atoi(interval)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func validateInt(min, max int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}
