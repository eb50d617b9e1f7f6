package component

import "github.com/jakecoffman/cp"

type Faction int

const (
	FactionPlayer Faction = iota
	FactionHostile
)

func (f Faction) String() string {
	if f == FactionHostile {
		return "hostile"
	}
	return "player"
}

// Projectile moves in a straight line until it hits something or leaves the
// screen.
type Projectile struct {
	Velocity  cp.Vector
	Faction   Faction
	Damage    int
	VisualKey string
}

var ProjectileComponent = NewComponent[Projectile]()
