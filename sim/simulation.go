// Package sim runs the fixed-step game simulation. A Simulation belongs to
// one goroutine; the only state it shares is the bridge it drains.
package sim

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/behavior"
	"github.com/milk9111/striker/bridge"
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/ecs/entity"
	"github.com/milk9111/striker/ecs/system"
	"github.com/milk9111/striker/prefabs"
	"github.com/milk9111/striker/wave"
)

// MaxDeltaTime caps a single step so a stalled frame cannot tunnel
// projectiles through hostiles.
const MaxDeltaTime = 0.06

// Wave clear rewards.
const (
	clearHealthBonus = 20
)

// Input is the player's intent for one step.
type Input struct {
	Up, Down, Left, Right bool
	Fire                  bool
	Pause                 bool
	Quit                  bool
	Restart               bool
}

type Options struct {
	Seed     int64
	Bridge   *bridge.Bridge
	Policy   *prefabs.SpawnPolicy
	Waves    prefabs.WavesSpec
	Player   prefabs.PlayerSpec
	Scripts  behavior.ScriptLoader
	MaxDelta float64
}

type Simulation struct {
	opts   Options
	runID  uuid.UUID
	bridge *bridge.Bridge
	policy *prefabs.SpawnPolicy
	rng    *common.PRNG

	world     *ecs.World
	scheduler *ecs.Scheduler
	factory   *behavior.Factory
	sink      *entity.HostileProjectiles
	waves     *wave.Machine
	player    ecs.Entity

	score   int
	kills   int
	tick    uint64
	elapsed float64

	paused   bool
	quit     bool
	gameOver bool
	victory  bool
	prev     Input
}

// New builds a simulation and starts wave 1. Missing options fall back to
// the built-in defaults.
func New(opts Options) (*Simulation, error) {
	if opts.Policy == nil {
		opts.Policy = prefabs.DefaultSpawnPolicy()
	}
	if opts.Player == (prefabs.PlayerSpec{}) {
		opts.Player = prefabs.DefaultPlayer()
	}
	if len(opts.Waves.Waves) == 0 {
		opts.Waves = prefabs.DefaultWaves()
	}
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = MaxDeltaTime
	}

	s := &Simulation{
		opts:   opts,
		bridge: opts.Bridge,
		policy: opts.Policy,
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) reset() error {
	s.runID = uuid.New()
	seed := s.opts.Seed
	if seed == 0 {
		seed = int64(s.runID.ID())
	}
	s.rng = common.NewPRNG(seed)

	s.world = ecs.NewWorld()
	s.factory = behavior.NewFactory(s.opts.Scripts)
	s.sink = entity.NewHostileProjectiles(s.world)
	s.scheduler = ecs.NewScheduler(
		system.NewPlayerControllerSystem(),
		system.NewHostileSystem(),
		system.NewProjectileSystem(),
		system.NewDespawnSystem(),
		system.NewCollisionResolver(s.opts.Player.ContactDamage),
	)
	s.waves = wave.New(s.opts.Waves, s.rng)

	player, err := entity.NewPlayer(s.world, s.opts.Player)
	if err != nil {
		return fmt.Errorf("sim: create player: %w", err)
	}
	s.player = player

	s.score, s.kills, s.tick, s.elapsed = 0, 0, 0, 0
	s.paused, s.gameOver, s.victory = false, false, false
	s.waves.Start()
	log.Printf("sim: run %s started", s.runID)
	return nil
}

// Restart discards the current run and starts a new one.
func (s *Simulation) Restart() error {
	return s.reset()
}

// Step advances the simulation by dt seconds and returns the resulting
// snapshot.
func (s *Simulation) Step(dt float64, in Input) Snapshot {
	dt = common.Clamp(dt, 0, s.opts.MaxDelta)
	pending := s.drainBridge()

	s.handleControls(in)
	if s.paused || s.quit || s.gameOver || s.victory {
		return s.snapshot()
	}

	s.tick++
	s.elapsed += dt

	s.spawnNetworkHostiles(pending)
	s.applyInput(in)
	s.scheduler.Update(s.world, dt)
	s.handleWorldEvents()
	if !s.gameOver {
		s.advanceWaves(dt)
	}
	return s.snapshot()
}

func (s *Simulation) drainBridge() []bridge.SpawnEvent {
	if s.bridge == nil {
		return nil
	}
	return s.bridge.Drain()
}

func (s *Simulation) handleControls(in Input) {
	pressed := func(now, before bool) bool { return now && !before }
	defer func() { s.prev = in }()

	if in.Quit {
		s.quit = true
		return
	}
	if pressed(in.Restart, s.prev.Restart) && (s.gameOver || s.victory) {
		if err := s.reset(); err != nil {
			log.Printf("sim: restart: %v", err)
		}
		return
	}
	if pressed(in.Pause, s.prev.Pause) && !s.gameOver && !s.victory {
		s.paused = !s.paused
	}
}

func (s *Simulation) spawnNetworkHostiles(events []bridge.SpawnEvent) {
	for _, evt := range events {
		if !s.waves.AcceptsExtraSpawns() {
			continue
		}
		category := s.policy.CategoryFor(string(evt.Category))
		pos := s.randomSpawnPos()
		if _, err := s.SpawnHostile(category, pos, component.SourceNetwork, false); err != nil {
			log.Printf("sim: network spawn %s: %v", category, err)
			continue
		}
		log.Printf("sim: spawning %q at (%.0f, %.0f) from %s traffic", category, pos.X, pos.Y, evt.Category)
	}
}

func (s *Simulation) randomSpawnPos() cp.Vector {
	return cp.Vector{
		X: s.rng.Range(common.DespawnMargin, common.ScreenWidth-common.DespawnMargin),
		Y: s.rng.Range(-100, -50),
	}
}

// SpawnHostile creates a hostile of the given category. Unknown categories
// fall back through the spawn policy.
func (s *Simulation) SpawnHostile(category string, pos cp.Vector, source component.SpawnSource, boss bool) (ecs.Entity, error) {
	name, spec := s.policy.Lookup(category)
	spec.Boss = spec.Boss || boss
	return entity.NewHostile(s.world, entity.HostileOptions{
		Category: name,
		Spec:     spec,
		Pos:      pos,
		Source:   source,
		Factory:  s.factory,
		Sink:     s.sink,
	})
}

func (s *Simulation) applyInput(in Input) {
	ctl, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind())
	if !ok {
		return
	}
	*ctl = component.Input{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right, Fire: in.Fire}
}

func (s *Simulation) handleWorldEvents() {
	for _, evt := range s.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventHostileDestroyed:
			data, _ := evt.Data.(ecs.HostileRemoved)
			s.score += data.Score
			s.kills++
			s.waves.OnRemoved(data.Entity, true)
		case ecs.EventHostileEscaped, ecs.EventHostileRammed:
			data, _ := evt.Data.(ecs.HostileRemoved)
			s.waves.OnRemoved(data.Entity, false)
		case ecs.EventPlayerLifeLost:
			data, _ := evt.Data.(ecs.PlayerDamaged)
			log.Printf("sim: life lost, %d left", data.Lives)
		case ecs.EventPlayerDied:
			s.gameOver = true
			log.Printf("sim: game over, score %d", s.score)
		}
	}
}

func (s *Simulation) advanceWaves(dt float64) {
	step := s.waves.Update(dt)
	for _, order := range step.Spawns {
		pos := s.randomSpawnPos()
		if order.Boss {
			pos = cp.Vector{X: common.ScreenWidth / 2, Y: -60}
		}
		e, err := s.SpawnHostile(order.Category, pos, component.SourceWave, order.Boss)
		if err != nil {
			log.Printf("sim: wave spawn %s: %v", order.Category, err)
			continue
		}
		s.waves.OnSpawned(e, order.Boss)
	}

	if step.Cleared {
		s.reward(step.BossCleared)
	}
	if step.Completed {
		s.victory = true
		log.Printf("sim: victory, score %d", s.score)
	}
}

func (s *Simulation) reward(boss bool) {
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok || p.Dead {
		return
	}
	p.UpgradeWeapon()
	p.RestoreHealth(clearHealthBonus)
	if boss {
		p.AddLife()
	}
}

func (s *Simulation) World() *ecs.World { return s.world }

func (s *Simulation) Player() ecs.Entity { return s.player }

func (s *Simulation) RunID() uuid.UUID { return s.runID }
