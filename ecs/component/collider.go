package component

import "github.com/jakecoffman/cp"

// Collider is an axis-aligned box centered on the entity's transform.
type Collider struct {
	Width  float64
	Height float64
}

// BB returns the collider box at pos.
func (c Collider) BB(pos cp.Vector) cp.BB {
	return cp.NewBBForExtents(pos, c.Width/2, c.Height/2)
}

func (c Collider) HalfExtents() (float64, float64) {
	return c.Width / 2, c.Height / 2
}

var ColliderComponent = NewComponent[Collider]()
