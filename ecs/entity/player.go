package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/prefabs"
)

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	spawn := cp.Vector{X: spec.SpawnX, Y: spec.SpawnY}
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Speed:          spec.Speed,
		ShootDelay:     spec.ShootDelay,
		BulletSpeed:    spec.BulletSpeed,
		BulletDamage:   spec.BulletDamage,
		Health:         spec.Health,
		MaxHealth:      spec.Health,
		Lives:          spec.Lives,
		MaxLives:       spec.MaxLives,
		InvulnDuration: spec.InvulnDuration,
		WeaponLevel:    1,
		SpawnPos:       spawn,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: spawn}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}

	return e, nil
}
