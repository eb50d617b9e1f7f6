package sim

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/bridge"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/wave"
)

// HostileView is the render view of one hostile.
type HostileView struct {
	Category  string
	VisualKey string
	Pos       cp.Vector
	Width     float64
	Height    float64
	Health    int
	MaxHealth int
	Boss      bool
}

type ProjectileView struct {
	Faction   component.Faction
	VisualKey string
	Pos       cp.Vector
	Width     float64
	Height    float64
}

type PlayerView struct {
	Pos          cp.Vector
	Width        float64
	Height       float64
	Invulnerable bool
	Health       int
	MaxHealth    int
	Lives        int
	WeaponLevel  int
	Dead         bool
}

// Snapshot is a read-only copy of everything a renderer may show. It shares
// no memory with the simulation.
type Snapshot struct {
	RunID string
	Tick  uint64
	Time  float64

	Hostiles    []HostileView
	Projectiles []ProjectileView
	Player      PlayerView

	Score int
	Kills int

	Wave           int
	MaxWaves       int
	WaveName       string
	Phase          wave.Phase
	TransitionLeft float64

	HasBoss       bool
	BossHealth    int
	BossMaxHealth int

	Paused   bool
	GameOver bool
	Victory  bool
	Quit     bool

	Bridge bridge.Stats
}

func (s *Simulation) snapshot() Snapshot {
	snap := Snapshot{
		RunID:          s.runID.String(),
		Tick:           s.tick,
		Time:           s.elapsed,
		Score:          s.score,
		Kills:          s.kills,
		Wave:           s.waves.Wave(),
		MaxWaves:       s.waves.MaxWaves(),
		WaveName:       s.waves.WaveName(),
		Phase:          s.waves.Phase(),
		TransitionLeft: s.waves.TransitionLeft(),
		Paused:         s.paused,
		GameOver:       s.gameOver,
		Victory:        s.victory,
		Quit:           s.quit,
	}
	if s.bridge != nil {
		snap.Bridge = s.bridge.Stats()
	}

	w := s.world
	ecs.ForEach3(w, component.HostileComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, h *component.Hostile, tr *component.Transform, col *component.Collider) {
		view := HostileView{
			Category:  h.Category,
			VisualKey: h.AssetKey,
			Pos:       tr.Pos,
			Width:     col.Width,
			Height:    col.Height,
			Boss:      h.Boss,
		}
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			view.Health, view.MaxHealth = health.Current, health.Max
		}
		snap.Hostiles = append(snap.Hostiles, view)
	})

	if boss, ok := s.waves.Boss(); ok {
		if health, ok := ecs.Get(w, boss, component.HealthComponent.Kind()); ok {
			snap.HasBoss = true
			snap.BossHealth, snap.BossMaxHealth = health.Current, health.Max
		}
	}

	ecs.ForEach3(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, p *component.Projectile, tr *component.Transform, col *component.Collider) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Faction:   p.Faction,
			VisualKey: p.VisualKey,
			Pos:       tr.Pos,
			Width:     col.Width,
			Height:    col.Height,
		})
	})

	if p, ok := ecs.Get(w, s.player, component.PlayerComponent.Kind()); ok {
		snap.Player = PlayerView{
			Invulnerable: p.Invulnerable(),
			Health:       p.Health,
			MaxHealth:    p.MaxHealth,
			Lives:        p.Lives,
			WeaponLevel:  p.WeaponLevel,
			Dead:         p.Dead,
		}
		if tr, ok := ecs.Get(w, s.player, component.TransformComponent.Kind()); ok {
			snap.Player.Pos = tr.Pos
		}
		if col, ok := ecs.Get(w, s.player, component.ColliderComponent.Kind()); ok {
			snap.Player.Width, snap.Player.Height = col.Width, col.Height
		}
	}
	return snap
}
