package behavior

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/common"
)

type AttackKind int

const (
	AttackNone AttackKind = iota
	AttackSingleShotTarget
	AttackSingleShotDown
	AttackSpread
	AttackCircular
	AttackBurst
)

func (k AttackKind) String() string {
	switch k {
	case AttackSingleShotTarget:
		return "single_shot_player"
	case AttackSingleShotDown:
		return "single_shot_down"
	case AttackSpread:
		return "spread_shot"
	case AttackCircular:
		return "circular_shot"
	case AttackBurst:
		return "burst_fire"
	default:
		return "none"
	}
}

type TargetMode int

const (
	TargetLive TargetMode = iota
	TargetFixed
)

type BurstPhase int

const (
	BurstIdle BurstPhase = iota
	BurstBursting
)

// Shot is a request to spawn one hostile projectile.
type Shot struct {
	Origin    cp.Vector
	Velocity  cp.Vector
	Damage    int
	VisualKey string
}

// ProjectileSink receives the shots an attack fires. The spawner hands each
// attack the sink it may write into when the entity is built.
type ProjectileSink interface {
	SpawnProjectile(Shot)
}

type ProjectileSinkFunc func(Shot)

func (f ProjectileSinkFunc) SpawnProjectile(s Shot) { f(s) }

var down = cp.Vector{X: 0, Y: 1}

// Attack fires projectiles on a cooldown. It is owned by exactly one entity.
type Attack struct {
	Kind        AttackKind
	Cooldown    float64
	BulletSpeed float64
	Damage      int
	Count       int
	HalfAngle   float64 // degrees
	TargetMode  TargetMode
	VisualKey   string
	BurstCount  int
	BurstDelay  float64

	elapsed    float64
	burstPhase BurstPhase
	burstShots int
	burstTimer float64

	admission *Admission
	sink      ProjectileSink
}

// Elapsed is the time accumulated toward the next trigger.
func (a *Attack) Elapsed() float64 { return a.elapsed }

// BurstState reports the burst sub-state and shots fired in the current
// burst.
func (a *Attack) BurstState() (BurstPhase, int) { return a.burstPhase, a.burstShots }

// Update polls the attack once per tick. self is the entity at the start of
// the tick and target is the live target position, nil when there is none.
// It returns the number of projectiles emitted.
func (a *Attack) Update(dt float64, self Body, target *cp.Vector) int {
	if a == nil || a.Kind == AttackNone {
		return 0
	}
	if a.Kind == AttackBurst && a.burstPhase == BurstBursting {
		return a.continueBurst(dt, self, target)
	}

	a.elapsed += dt
	if a.elapsed <= a.Cooldown {
		return 0
	}
	if !a.admits(self, target) {
		return 0
	}

	// Carry the overshoot, at most one tick, into the next cooldown.
	over := a.elapsed - a.Cooldown
	if over > dt {
		over = dt
	}
	a.elapsed = over

	if a.Kind == AttackBurst {
		a.burstPhase = BurstBursting
		a.burstShots = 0
		a.burstTimer = 0
		return a.burstShot(self, target)
	}
	return a.execute(self, target)
}

func (a *Attack) admits(self Body, target *cp.Vector) bool {
	if a.admission == nil {
		return true
	}
	return a.admission.Admit(self, target)
}

func (a *Attack) continueBurst(dt float64, self Body, target *cp.Vector) int {
	a.burstTimer += dt
	if a.burstTimer < a.BurstDelay {
		return 0
	}
	a.burstTimer -= a.BurstDelay
	if a.burstTimer > dt {
		a.burstTimer = dt
	}
	return a.burstShot(self, target)
}

func (a *Attack) burstShot(self Body, target *cp.Vector) int {
	fired := 0
	if dir, ok := aim(self.Pos, target); ok {
		a.emit(self.Pos, dir)
		fired = 1
	}
	a.burstShots++
	if a.burstShots >= a.BurstCount {
		a.burstPhase = BurstIdle
		a.burstShots = 0
		a.burstTimer = 0
		a.elapsed = 0
	}
	return fired
}

func (a *Attack) execute(self Body, target *cp.Vector) int {
	switch a.Kind {
	case AttackSingleShotTarget:
		dir, ok := aim(self.Pos, target)
		if !ok {
			return 0
		}
		a.emit(self.Pos, dir)
		return 1
	case AttackSingleShotDown:
		a.emit(self.Pos, down)
		return 1
	case AttackSpread:
		base := down
		if a.TargetMode == TargetLive {
			dir, ok := aim(self.Pos, target)
			if !ok {
				return 0
			}
			base = dir
		}
		for _, deg := range SpreadAngles(a.Count, a.HalfAngle) {
			a.emit(self.Pos, base.Rotate(cp.ForAngle(common.Deg2Rad(deg))))
		}
		return a.Count
	case AttackCircular:
		for _, dir := range CircleDirections(a.Count) {
			a.emit(self.Pos, dir)
		}
		return a.Count
	}
	return 0
}

func (a *Attack) emit(origin, dir cp.Vector) {
	if a.sink == nil {
		return
	}
	a.sink.SpawnProjectile(Shot{
		Origin:    origin,
		Velocity:  dir.Mult(a.BulletSpeed),
		Damage:    a.Damage,
		VisualKey: a.VisualKey,
	})
}

func aim(from cp.Vector, target *cp.Vector) (cp.Vector, bool) {
	if target == nil {
		return cp.Vector{}, false
	}
	return common.Direction(from, *target)
}

// SpreadAngles returns count angles in degrees evenly spaced across
// [-half, +half]. A single shot is always at 0.
func SpreadAngles(count int, half float64) []float64 {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []float64{0}
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = -half + 2*half*float64(i)/float64(count-1)
	}
	return out
}

// CircleDirections returns count unit vectors 2*pi/count apart, starting
// at angle 0.
func CircleDirections(count int) []cp.Vector {
	if count <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(count)
	out := make([]cp.Vector, count)
	for i := range out {
		out[i] = cp.ForAngle(float64(i) * step)
	}
	return out
}
