package system

import (
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
)

// ProjectileSystem moves projectiles and removes the ones that left the
// screen.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	screen := common.ScreenBB()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, tr *component.Transform) {
		tr.Pos = tr.Pos.Add(p.Velocity.Mult(dt))

		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok {
			col = &component.Collider{}
		}
		if !col.BB(tr.Pos).Intersects(screen) {
			ecs.DestroyEntity(w, e)
		}
	})
}
