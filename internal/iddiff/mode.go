package iddiff

import "fmt"

// Mode selects the output format.
type Mode int

const (
	SideBySide Mode = iota
	WDiff
	HWDiff
	ChangeBars
	ABDiff
	Unified
)

var modeNames = []string{
	SideBySide: "side-by-side",
	WDiff:      "wdiff",
	HWDiff:     "hwdiff",
	ChangeBars: "chbars",
	ABDiff:     "abdiff",
	Unified:    "unified",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes lists all modes, in order.
func Modes() []Mode {
	mm := make([]Mode, len(modeNames))
	for i := range mm {
		mm[i] = Mode(i)
	}
	return mm
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return SideBySide, fmt.Errorf("%q: unknown mode: %w", name, ErrUsage)
}
