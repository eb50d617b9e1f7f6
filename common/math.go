package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Direction returns the unit vector from -> to. ok is false when the two
// points coincide, in which case no direction exists.
func Direction(from, to cp.Vector) (cp.Vector, bool) {
	d := to.Sub(from)
	l := d.Length()
	if l == 0 {
		return cp.Vector{}, false
	}
	return d.Mult(1 / l), true
}

// WrapAngle maps an angle in radians to [-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
