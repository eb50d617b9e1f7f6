// Package wave sequences ordinary waves and boss waves and decides what the
// simulation spawns next.
package wave

import (
	"log"

	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/prefabs"
)

type Phase int

const (
	Idle Phase = iota
	Active
	Transitioning
	BossActive
	Complete
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Transitioning:
		return "transitioning"
	case BossActive:
		return "boss"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// SpawnOrder asks the simulation to spawn one hostile.
type SpawnOrder struct {
	Category string
	Boss     bool
}

// Step is the result of one Update.
type Step struct {
	Spawns []SpawnOrder

	// Cleared is set on the tick a wave ends. Wave is the wave that ended.
	Cleared     bool
	BossCleared bool
	Wave        int

	// Completed is set on the tick the last wave's transition ends.
	Completed bool
}

// Machine tracks wave progress. It only refers to hostiles by handle and
// learns about them through OnSpawned and OnRemoved.
type Machine struct {
	cfg prefabs.WavesSpec
	rng *common.PRNG

	phase      Phase
	wave       int
	current    prefabs.WaveSpec
	mix        []common.Weighted
	remaining  int
	spawnTimer float64
	transition float64

	alive        map[ecs.Entity]struct{}
	boss         ecs.Entity
	bossPending  bool
	bossDefeated bool
}

func New(cfg prefabs.WavesSpec, rng *common.PRNG) *Machine {
	if rng == nil {
		rng = common.NewPRNG(0)
	}
	def := prefabs.DefaultWaves()
	if cfg.MaxWaves <= 0 {
		cfg.MaxWaves = def.MaxWaves
	}
	if cfg.BossEvery <= 0 {
		cfg.BossEvery = def.BossEvery
	}
	if cfg.BossCategory == "" {
		cfg.BossCategory = def.BossCategory
	}
	if cfg.TransitionDuration < 0 {
		cfg.TransitionDuration = 0
	}
	return &Machine{
		cfg:   cfg,
		rng:   rng,
		alive: make(map[ecs.Entity]struct{}),
	}
}

// Start begins wave 1. It has no effect once started.
func (m *Machine) Start() {
	if m.phase != Idle {
		return
	}
	m.enterWave(1)
}

func (m *Machine) IsBossWave(n int) bool {
	return n > 0 && n%m.cfg.BossEvery == 0
}

func (m *Machine) enterWave(n int) {
	m.wave = n
	m.spawnTimer = 0
	m.boss = 0
	m.bossDefeated = false
	clear(m.alive)

	if m.IsBossWave(n) {
		m.phase = BossActive
		m.remaining = 0
		m.bossPending = true
		m.current = prefabs.WaveSpec{Name: "Boss"}
		log.Printf("wave: %d begins, boss incoming", n)
		return
	}

	m.phase = Active
	m.bossPending = false
	m.current = m.cfg.Wave(n)
	m.remaining = max(m.current.Count, 0)
	m.mix = m.mix[:0]
	for _, w := range m.current.Mix {
		m.mix = append(m.mix, common.Weighted{Name: w.Category, Weight: w.Weight})
	}
	if len(m.mix) == 0 {
		m.mix = append(m.mix, common.Weighted{Name: prefabs.BasicCategory, Weight: 1})
	}
	log.Printf("wave: %d %q begins, %d hostiles", n, m.current.Name, m.remaining)
}

// Update advances timers and returns what to spawn this tick.
func (m *Machine) Update(dt float64) Step {
	var step Step
	switch m.phase {
	case Active:
		if m.remaining == 0 && len(m.alive) == 0 {
			m.clearWave(&step, false)
			return step
		}
		interval := m.current.Interval
		m.spawnTimer += dt
		for m.remaining > 0 && m.spawnTimer >= interval {
			m.spawnTimer -= interval
			m.remaining--
			step.Spawns = append(step.Spawns, SpawnOrder{Category: m.rng.ChooseWeighted(m.mix)})
		}
	case BossActive:
		if m.bossDefeated {
			m.clearWave(&step, true)
			return step
		}
		if m.bossPending {
			m.bossPending = false
			step.Spawns = append(step.Spawns, SpawnOrder{Category: m.cfg.BossCategory, Boss: true})
		} else if !m.boss.Valid() {
			// The last boss order was never acknowledged.
			m.bossPending = true
		}
	case Transitioning:
		m.transition -= dt
		if m.transition > 0 {
			return step
		}
		if m.wave >= m.cfg.MaxWaves {
			m.phase = Complete
			step.Completed = true
			log.Printf("wave: all %d waves complete", m.cfg.MaxWaves)
			return step
		}
		m.enterWave(m.wave + 1)
	}
	return step
}

func (m *Machine) clearWave(step *Step, boss bool) {
	step.Cleared = true
	step.BossCleared = boss
	step.Wave = m.wave
	m.phase = Transitioning
	m.transition = m.cfg.TransitionDuration
	log.Printf("wave: %d cleared", m.wave)
}

// OnSpawned records a hostile spawned from an order of this machine.
func (m *Machine) OnSpawned(e ecs.Entity, boss bool) {
	if boss {
		if m.phase == BossActive {
			m.boss = e
		}
		return
	}
	if m.phase == Active {
		m.alive[e] = struct{}{}
	}
}

// OnRemoved records that a hostile left the world. killed is true when it
// was destroyed by damage. A boss that leaves any other way is spawned
// again.
func (m *Machine) OnRemoved(e ecs.Entity, killed bool) {
	if m.boss.Valid() && e == m.boss {
		m.boss = 0
		if killed {
			m.bossDefeated = true
		} else if m.phase == BossActive {
			m.bossPending = true
		}
		return
	}
	delete(m.alive, e)
}

// AcceptsExtraSpawns reports whether hostiles from outside the wave table
// may currently enter.
func (m *Machine) AcceptsExtraSpawns() bool {
	return m.phase == Active || m.phase == BossActive
}

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) Wave() int { return m.wave }

func (m *Machine) MaxWaves() int { return m.cfg.MaxWaves }

func (m *Machine) WaveName() string { return m.current.Name }

// Remaining is the number of ordinary hostiles still to spawn this wave.
func (m *Machine) Remaining() int { return m.remaining }

// Alive is the number of wave-spawned hostiles still in the world.
func (m *Machine) Alive() int { return len(m.alive) }

// Boss returns the live boss handle, if any.
func (m *Machine) Boss() (ecs.Entity, bool) {
	return m.boss, m.boss.Valid()
}

// TransitionLeft is the time left before the next wave starts.
func (m *Machine) TransitionLeft() float64 {
	if m.phase != Transitioning {
		return 0
	}
	return max(m.transition, 0)
}
