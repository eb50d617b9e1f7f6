package behavior

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/common"
)

type MovementKind int

const (
	MoveNone MovementKind = iota
	MoveStraight
	MoveZigzag
	MoveTargetSeeking
	MoveHover
)

func (k MovementKind) String() string {
	switch k {
	case MoveStraight:
		return "straight"
	case MoveZigzag:
		return "zigzag"
	case MoveTargetSeeking:
		return "target_seeking"
	case MoveHover:
		return "hover"
	default:
		return "none"
	}
}

// Body is the kinematic view of an entity that strategies read.
type Body struct {
	Pos   cp.Vector
	HalfW float64
	HalfH float64
	Age   float64
}

// Movement moves one entity. It is owned by exactly one entity and keeps
// per-entity state (sweep sign, seeking heading).
type Movement struct {
	Kind            MovementKind
	Speed           float64
	HorizontalSpeed float64
	BoundLeft       float64
	BoundRight      float64
	TurnRate        float64
	HoverY          float64

	sign    float64
	heading cp.Vector
}

// Sign is the current horizontal sweep direction (+1 right, -1 left).
func (m *Movement) Sign() float64 {
	if m.sign == 0 {
		return 1
	}
	return m.sign
}

// Next returns the position the body moves to over dt. It does not mutate
// the body; the caller commits the result.
func (m *Movement) Next(dt float64, body Body, target *cp.Vector) cp.Vector {
	next := body.Pos
	switch m.Kind {
	case MoveStraight:
		next.Y += m.Speed * dt
	case MoveZigzag:
		next.Y += m.Speed * dt
		next.X = m.sweep(dt, next.X, body.HalfW)
	case MoveTargetSeeking:
		next = next.Add(m.steer(dt, body.Pos, target).Mult(m.Speed * dt))
	case MoveHover:
		if next.Y < m.HoverY {
			next.Y = math.Min(next.Y+m.Speed*dt, m.HoverY)
		} else {
			next.X = m.sweep(dt, next.X, body.HalfW)
		}
	}
	return next
}

// sweep advances x horizontally and reflects the direction once the box
// touches a bound while moving toward it.
func (m *Movement) sweep(dt, x, halfW float64) float64 {
	if m.sign == 0 {
		m.sign = 1
	}
	x += m.sign * m.HorizontalSpeed * dt
	if m.sign < 0 && x-halfW <= m.BoundLeft {
		m.sign = 1
	} else if m.sign > 0 && x+halfW >= m.BoundRight {
		m.sign = -1
	}
	return x
}

func (m *Movement) steer(dt float64, pos cp.Vector, target *cp.Vector) cp.Vector {
	if m.heading.LengthSq() == 0 {
		m.heading = cp.Vector{X: 0, Y: 1}
	}
	if target == nil {
		return m.heading
	}
	want, ok := common.Direction(pos, *target)
	if !ok {
		return m.heading
	}
	if m.TurnRate <= 0 {
		m.heading = want
		return m.heading
	}
	cur := m.heading.ToAngle()
	delta := common.WrapAngle(want.ToAngle() - cur)
	maxTurn := m.TurnRate * dt
	delta = common.Clamp(delta, -maxTurn, maxTurn)
	m.heading = cp.ForAngle(cur + delta)
	return m.heading
}
