package arrange

import "errors"

var (
	// ErrMonitorNotFound reports a monitor selector that matched nothing. It
	// is fatal to an arrangement pass and raised before any window moves.
	ErrMonitorNotFound = errors.New("monitor not found")

	// ErrPassInFlight reports a trigger that arrived while another pass was
	// still running. The trigger is dropped, not queued.
	ErrPassInFlight = errors.New("arrangement pass already in progress")
)
