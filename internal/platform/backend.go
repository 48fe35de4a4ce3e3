package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display. Usable is the bounds with reserved
// system UI (docks, panels) excluded; when the platform cannot report
// reservations it equals Bounds.
type Display struct {
	ID      int
	Name    string
	Primary bool
	Bounds  Rect
	Usable  Rect
}

// Window contains metadata and geometry for a top-level window. ZRank is the
// stacking position among the listed windows, 0 being frontmost. Process is
// the owning process's executable name when it can be determined, otherwise
// the WM_CLASS instance.
type Window struct {
	ID      WindowID
	PID     int
	Process string
	Class   string
	Title   string
	Bounds  Rect
	ZRank   int
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	// Displays returns all connected displays, ordered by ID.
	Displays() ([]Display, error)
	// ListWindows returns the visible top-level windows on a display,
	// ordered front to back.
	ListWindows(displayID int) ([]Window, error)
	// MoveResize requests new geometry for a window. The request is advisory;
	// callers verify via WindowRect.
	MoveResize(windowID WindowID, bounds Rect) error
	// WindowRect reads back a window's current geometry.
	WindowRect(windowID WindowID) (Rect, error)
}
