package arrange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paneshift/paneshift/internal/platform"
)

// ResolveDisplay picks a display by selector. "primary" (or an empty
// selector) returns the primary display, falling back to the first when the
// platform reports no primary. A numeric selector is a zero-based index into
// the display list.
func ResolveDisplay(displays []platform.Display, selector string) (platform.Display, error) {
	if len(displays) == 0 {
		return platform.Display{}, fmt.Errorf("%w: no displays detected", ErrMonitorNotFound)
	}

	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" || sel == "primary" {
		for _, d := range displays {
			if d.Primary {
				return d, nil
			}
		}
		return displays[0], nil
	}

	idx, err := strconv.Atoi(sel)
	if err != nil {
		return platform.Display{}, fmt.Errorf("%w: bad selector %q", ErrMonitorNotFound, selector)
	}
	if idx < 0 || idx >= len(displays) {
		return platform.Display{}, fmt.Errorf("%w: index %d out of range (have %d displays)", ErrMonitorNotFound, idx, len(displays))
	}
	return displays[idx], nil
}
