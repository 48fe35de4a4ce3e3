//go:build linux

package platform

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/paneshift/paneshift/internal/x11"
)

// X11Backend implements Backend on top of an X11 connection.
type X11Backend struct {
	conn *x11.Connection
}

var _ Backend = (*X11Backend)(nil)

// NewX11Backend opens a fresh X11 connection and wraps it.
func NewX11Backend() (*X11Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Backend{conn: conn}, nil
}

// NewX11BackendFromConnection wraps an existing X11 connection.
func NewX11BackendFromConnection(conn *x11.Connection) *X11Backend {
	return &X11Backend{conn: conn}
}

// Close disconnects from the X server.
func (b *X11Backend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// XUtil exposes the underlying xgbutil connection for event-loop consumers.
func (b *X11Backend) XUtil() *xgbutil.XUtil {
	return b.conn.XUtil
}

// RootWindow returns the root window of the default screen.
func (b *X11Backend) RootWindow() xproto.Window {
	return b.conn.Root
}

// Displays returns all active displays, ordered by ID.
func (b *X11Backend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ListWindows lists visible normal windows whose centers lie inside the
// display bounds, ordered front to back. Duplicate window handles collapse
// to one entry (terminal tab hosts report one handle for many tabs).
func (b *X11Backend) ListWindows(displayID int) ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	displays, err := b.Displays()
	if err != nil {
		return nil, err
	}

	var target *Display
	for i := range displays {
		if displays[i].ID == displayID {
			target = &displays[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("display with id %d not found", displayID)
	}

	clients, err := conn.StackingList()
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := conn.GetCurrentDesktop()
	hasCurrentDesktop := desktopErr == nil

	seen := make(map[xproto.Window]bool, len(clients))
	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if seen[windowID] {
			continue
		}
		seen[windowID] = true

		if !conn.IsNormalWindow(windowID) || !conn.IsViewable(windowID) {
			continue
		}

		// Filter by current desktop; sticky windows (-1) pass.
		if hasCurrentDesktop {
			if desktop, err := conn.WindowDesktop(windowID); err == nil && desktop >= 0 && desktop != currentDesktop {
				continue
			}
		}

		area, err := conn.WindowRect(windowID)
		if err != nil {
			continue
		}
		rect := Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}

		if !containsPoint(target.Bounds, rect.X+rect.Width/2, rect.Y+rect.Height/2) {
			continue
		}

		pid := conn.WindowPid(windowID)
		instance, class := conn.WindowClass(windowID)

		windows = append(windows, Window{
			ID:      WindowID(windowID),
			PID:     pid,
			Process: processName(pid, instance),
			Class:   class,
			Title:   strings.TrimSpace(conn.WindowTitle(windowID)),
			Bounds:  rect,
			ZRank:   len(windows),
		})
	}

	return windows, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *X11Backend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// WindowRect reads back a window's current geometry.
func (b *X11Backend) WindowRect(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}

	area, err := conn.WindowRect(xproto.Window(windowID))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}, nil
}

func (b *X11Backend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:      m.ID,
		Name:    m.Name,
		Primary: m.Primary,
		Bounds:  Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		Usable:  Rect{X: m.Usable.X, Y: m.Usable.Y, Width: m.Usable.Width, Height: m.Usable.Height},
	}
}

func containsPoint(r Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// processName resolves the owning process's executable name via /proc,
// falling back to the WM_CLASS instance when the PID is unknown.
func processName(pid int, instance string) string {
	if pid > 0 {
		if comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid)); err == nil {
			if name := strings.TrimSpace(string(comm)); name != "" {
				return name
			}
		}
	}
	return strings.ToLower(strings.TrimSpace(instance))
}
