package entity

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/behavior"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
)

// Projectile box sizes per faction.
const (
	PlayerBulletWidth   = 6
	PlayerBulletHeight  = 14
	HostileBulletWidth  = 8
	HostileBulletHeight = 8
)

func NewProjectile(w *ecs.World, pos cp.Vector, p component.Projectile) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &p); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: pos}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}

	col := component.Collider{Width: PlayerBulletWidth, Height: PlayerBulletHeight}
	if p.Faction == component.FactionHostile {
		col = component.Collider{Width: HostileBulletWidth, Height: HostileBulletHeight}
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &col); err != nil {
		return 0, fmt.Errorf("projectile: add collider: %w", err)
	}

	return e, nil
}

// HostileProjectiles is the sink hostile attacks fire into.
type HostileProjectiles struct {
	w *ecs.World
}

func NewHostileProjectiles(w *ecs.World) *HostileProjectiles {
	return &HostileProjectiles{w: w}
}

func (h *HostileProjectiles) SpawnProjectile(s behavior.Shot) {
	if h == nil || h.w == nil {
		return
	}
	_, err := NewProjectile(h.w, s.Origin, component.Projectile{
		Velocity:  s.Velocity,
		Faction:   component.FactionHostile,
		Damage:    s.Damage,
		VisualKey: s.VisualKey,
	})
	if err != nil {
		log.Printf("entity: spawn hostile projectile: %v", err)
	}
}
