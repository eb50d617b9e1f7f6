package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
)

const DefaultContactDamage = 30

// CollisionResolver resolves overlaps once per tick in a fixed order:
// player shots against hostiles, then player contact with hostiles, then
// hostile shots against the player. Every hit on the player goes through
// Player.TakeDamage.
type CollisionResolver struct {
	ContactDamage int
}

func NewCollisionResolver(contactDamage int) *CollisionResolver {
	if contactDamage <= 0 {
		contactDamage = DefaultContactDamage
	}
	return &CollisionResolver{ContactDamage: contactDamage}
}

type collidable struct {
	e  ecs.Entity
	bb cp.BB
}

func (s *CollisionResolver) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	hostiles := liveHostiles(w)
	s.playerShots(w, hostiles)

	pe, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	s.contact(w, pe, hostiles)
	s.hostileShots(w, pe)
}

func liveHostiles(w *ecs.World) []collidable {
	var out []collidable
	ecs.ForEach3(w, component.HostileComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, _ *component.Hostile, tr *component.Transform, col *component.Collider) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			return
		}
		out = append(out, collidable{e: e, bb: col.BB(tr.Pos)})
	})
	return out
}

// playerShots lets each player projectile damage at most one hostile. The
// projectile is consumed on that hit whether or not the hostile survives.
func (s *CollisionResolver) playerShots(w *ecs.World, hostiles []collidable) {
	ecs.ForEach3(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(pe ecs.Entity, p *component.Projectile, tr *component.Transform, col *component.Collider) {
		if p.Faction != component.FactionPlayer {
			return
		}
		bb := col.BB(tr.Pos)
		for _, h := range hostiles {
			if !ecs.IsAlive(w, h.e) || !bb.Intersects(h.bb) {
				continue
			}
			health, ok := ecs.Get(w, h.e, component.HealthComponent.Kind())
			if !ok || !health.IsAlive() {
				continue
			}
			ecs.DestroyEntity(w, pe)
			if _, died := health.ApplyDamage(p.Damage); died {
				score := 0
				if hc, ok := ecs.Get(w, h.e, component.HostileComponent.Kind()); ok {
					score = hc.ScoreValue
				}
				removeHostile(w, h.e, ecs.EventHostileDestroyed, score)
			}
			return
		}
	})
}

// contact applies contact damage once and removes exactly one touching
// hostile, without score, unless the player is invulnerable or dead.
func (s *CollisionResolver) contact(w *ecs.World, pe ecs.Entity, hostiles []collidable) {
	p, ok := ecs.Get(w, pe, component.PlayerComponent.Kind())
	if !ok || p.Dead || p.Invulnerable() {
		return
	}
	bb, ok := entityBB(w, pe)
	if !ok {
		return
	}
	for _, h := range hostiles {
		if !ecs.IsAlive(w, h.e) || !bb.Intersects(h.bb) {
			continue
		}
		hit := p.TakeDamage(s.ContactDamage)
		s.reportPlayerHit(w, pe, p, hit, s.ContactDamage)
		removeHostile(w, h.e, ecs.EventHostileRammed, 0)
		return
	}
}

// hostileShots consumes every hostile projectile touching the player. Each
// one applies its damage independently.
func (s *CollisionResolver) hostileShots(w *ecs.World, pe ecs.Entity) {
	p, ok := ecs.Get(w, pe, component.PlayerComponent.Kind())
	if !ok || p.Dead {
		return
	}
	bb, ok := entityBB(w, pe)
	if !ok {
		return
	}
	ecs.ForEach3(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, proj *component.Projectile, tr *component.Transform, col *component.Collider) {
		if proj.Faction != component.FactionHostile || !bb.Intersects(col.BB(tr.Pos)) {
			return
		}
		damage := proj.Damage
		ecs.DestroyEntity(w, e)
		hit := p.TakeDamage(damage)
		s.reportPlayerHit(w, pe, p, hit, damage)
	})
}

func (s *CollisionResolver) reportPlayerHit(w *ecs.World, pe ecs.Entity, p *component.Player, hit component.PlayerHit, amount int) {
	if !hit.Applied {
		return
	}
	data := ecs.PlayerDamaged{Entity: pe, Amount: amount, Health: p.Health, Lives: p.Lives}
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Data: data})
	if hit.LifeLost {
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerLifeLost, Data: data})
		if !hit.Died {
			if tr, ok := ecs.Get(w, pe, component.TransformComponent.Kind()); ok {
				tr.Pos = p.SpawnPos
			}
		}
	}
	if hit.Died {
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Data: data})
	}
}

func entityBB(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	return col.BB(tr.Pos), true
}
