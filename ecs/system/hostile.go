package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/behavior"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
)

// HostileSystem ages hostiles and runs their strategies. Attacks aim from
// the position at the start of the tick; the moved position is committed
// after both strategies ran.
type HostileSystem struct{}

func NewHostileSystem() *HostileSystem {
	return &HostileSystem{}
}

func (s *HostileSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	target := playerTarget(w)

	ecs.ForEach3(w, component.HostileComponent.Kind(), component.TransformComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Hostile, tr *component.Transform, health *component.Health) {
		if !health.IsAlive() {
			return
		}
		h.Age += dt

		body := behavior.Body{Pos: tr.Pos, Age: h.Age}
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			body.HalfW, body.HalfH = col.HalfExtents()
		}

		next := tr.Pos
		if mv, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
			next = mv.Next(dt, body, target)
		}
		if atk, ok := ecs.Get(w, e, component.AttackComponent.Kind()); ok {
			atk.Update(dt, body, target)
		}
		tr.Pos = next
	})
}

// playerTarget returns the live player position, nil when there is no
// living player.
func playerTarget(w *ecs.World) *cp.Vector {
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return nil
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if p == nil || p.Dead {
		return nil
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	pos := tr.Pos
	return &pos
}
