package system

import (
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
)

// MaxApproachTime bounds how long a hostile may stay outside the play area
// without ever entering it.
const MaxApproachTime = 10.0

// DespawnSystem removes hostiles that left the screen expanded by the
// despawn margin. A hostile only becomes eligible once it has been inside
// that region, since spawns start above the screen.
type DespawnSystem struct{}

func NewDespawnSystem() *DespawnSystem {
	return &DespawnSystem{}
}

func (s *DespawnSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	region := common.Inflate(common.ScreenBB(), common.DespawnMargin)

	ecs.ForEach3(w, component.HostileComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, h *component.Hostile, tr *component.Transform, col *component.Collider) {
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && health.Dead {
			return
		}
		if col.BB(tr.Pos).Intersects(region) {
			h.Entered = true
			return
		}
		if !h.Entered && h.Age < MaxApproachTime {
			return
		}
		removeHostile(w, e, ecs.EventHostileEscaped, 0)
	})
}

// removeHostile emits the removal event for e and destroys it.
func removeHostile(w *ecs.World, e ecs.Entity, event string, score int) {
	h, ok := ecs.Get(w, e, component.HostileComponent.Kind())
	if !ok {
		return
	}
	evt := ecs.HostileRemoved{
		Entity:   e,
		Category: h.Category,
		Score:    score,
		Boss:     h.Boss,
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		evt.Position = tr.Pos
	}
	w.Events().Push(ecs.Event{Type: event, Data: evt})
	ecs.DestroyEntity(w, e)
}
