package common

import "github.com/jakecoffman/cp"

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	FPS          = 60

	// DespawnMargin is how far past each screen edge a hostile may travel
	// before it is removed.
	DespawnMargin = 50.0
)

// ScreenBB is the visible play field.
func ScreenBB() cp.BB {
	return cp.BB{L: 0, B: 0, R: ScreenWidth, T: ScreenHeight}
}

// Inflate grows bb by margin on every side.
func Inflate(bb cp.BB, margin float64) cp.BB {
	return cp.BB{L: bb.L - margin, B: bb.B - margin, R: bb.R + margin, T: bb.T + margin}
}
