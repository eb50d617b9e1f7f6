package component

import "github.com/milk9111/striker/behavior"

// SpawnSource records what created a hostile.
type SpawnSource int

const (
	SourceWave SpawnSource = iota
	SourceNetwork
)

func (s SpawnSource) String() string {
	if s == SourceNetwork {
		return "network"
	}
	return "wave"
}

// Hostile marks an enemy entity.
type Hostile struct {
	Category   string
	AssetKey   string
	ScoreValue int
	Age        float64
	Boss       bool
	Source     SpawnSource

	// Entered is set once the hostile's box has overlapped the despawn
	// region. Hostiles spawn above the screen and are not despawned before
	// that.
	Entered bool
}

var HostileComponent = NewComponent[Hostile]()

// Movement and Attack hold the strategies owned by a hostile.
var (
	MovementComponent = NewComponent[behavior.Movement]()
	AttackComponent   = NewComponent[behavior.Attack]()
)
