package domain

import (
	"fmt"
)

// Window is the trailing day-count over which signals are computed.
// Only a small fixed set of windows is supported.
type Window int

const (
	Window30  Window = 30
	Window90  Window = 90
	Window180 Window = 180
)

// ParseWindow validates a raw day count against the supported set.
func ParseWindow(days int) (Window, error) {
	switch Window(days) {
	case Window30, Window90, Window180:
		return Window(days), nil
	}
	return 0, fmt.Errorf("%w: %d days (supported: 30, 90, 180)", ErrInvalidWindow, days)
}

// Days returns the window length in days.
func (w Window) Days() int { return int(w) }

// Months returns the window length in 30-day months, used to extrapolate
// per-month rates from window totals.
func (w Window) Months() float64 { return float64(w) / 30.0 }

// String renders the persisted window form, e.g. "30d".
func (w Window) String() string { return fmt.Sprintf("%dd", int(w)) }
