package arrange

import (
	"sort"
	"strings"

	"github.com/paneshift/paneshift/internal/platform"
)

// DefaultTerminalProcesses lists the process names recognized as terminal
// emulators when the target filter is "terminals".
var DefaultTerminalProcesses = []string{
	"alacritty",
	"kitty",
	"wezterm",
	"wezterm-gui",
	"foot",
	"ghostty",
	"konsole",
	"gnome-terminal-server",
	"gnome-terminal",
	"xfce4-terminal",
	"terminator",
	"tilix",
	"xterm",
	"urxvt",
	"rxvt",
	"st",
}

// DefaultExcludedProcesses lists desktop-shell processes that own normal-type
// windows but should never be arranged.
var DefaultExcludedProcesses = []string{
	"plasmashell",
	"gnome-shell",
	"xfdesktop",
	"polybar",
	"xfce4-panel",
	"lxpanel",
	"conky",
}

// Filter selects which windows an arrangement pass targets. An empty
// Processes list means every window matches (the "all" target). Matching is
// case-insensitive against both the process name and the WM class.
type Filter struct {
	Processes     []string
	TitleContains string
	Exclude       []string
}

// TerminalFilter returns a filter targeting known terminal emulators.
func TerminalFilter() Filter {
	return Filter{Processes: DefaultTerminalProcesses, Exclude: DefaultExcludedProcesses}
}

// AllFilter returns a filter matching every arrangeable window.
func AllFilter() Filter {
	return Filter{Exclude: DefaultExcludedProcesses}
}

// Matches reports whether a window passes the filter.
func (f Filter) Matches(w platform.Window) bool {
	for _, name := range f.Exclude {
		if equalName(w, name) {
			return false
		}
	}

	if len(f.Processes) > 0 {
		found := false
		for _, name := range f.Processes {
			if equalName(w, name) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.TitleContains != "" &&
		!strings.Contains(strings.ToLower(w.Title), strings.ToLower(f.TitleContains)) {
		return false
	}

	return true
}

func equalName(w platform.Window, name string) bool {
	return strings.EqualFold(w.Process, name) || strings.EqualFold(w.Class, name)
}

// Enumerate lists the windows on a display that pass the filter, ordered by
// stacking rank (frontmost first) with the window handle as tie-break.
// Duplicate handles collapse to one entry. An empty result is valid.
func Enumerate(backend platform.Backend, displayID int, f Filter) ([]platform.Window, error) {
	listed, err := backend.ListWindows(displayID)
	if err != nil {
		return nil, err
	}

	seen := make(map[platform.WindowID]bool, len(listed))
	windows := make([]platform.Window, 0, len(listed))
	for _, w := range listed {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		if f.Matches(w) {
			windows = append(windows, w)
		}
	}

	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].ZRank != windows[j].ZRank {
			return windows[i].ZRank < windows[j].ZRank
		}
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}
