package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/behavior"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/prefabs"
)

// HostileOptions describes one hostile to spawn.
type HostileOptions struct {
	Category string
	Spec     prefabs.EnemySpec
	Pos      cp.Vector
	Source   component.SpawnSource
	Factory  *behavior.Factory
	Sink     behavior.ProjectileSink
}

// NewHostile builds a hostile entity with its own movement and attack
// strategies.
func NewHostile(w *ecs.World, opts HostileOptions) (ecs.Entity, error) {
	factory := opts.Factory
	if factory == nil {
		factory = behavior.NewFactory(nil)
	}
	spec := opts.Spec

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.HostileComponent.Kind(), &component.Hostile{
		Category:   opts.Category,
		AssetKey:   spec.AssetKey,
		ScoreValue: spec.Score,
		Boss:       spec.Boss,
		Source:     opts.Source,
	}); err != nil {
		return 0, fmt.Errorf("hostile: add hostile: %w", err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: opts.Pos}); err != nil {
		return 0, fmt.Errorf("hostile: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, fmt.Errorf("hostile: add collider: %w", err)
	}

	if err := ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.Health)); err != nil {
		return 0, fmt.Errorf("hostile: add health: %w", err)
	}

	movement := factory.NewMovement(spec.Movement)
	if err := ecs.Add(w, e, component.MovementComponent.Kind(), &movement); err != nil {
		return 0, fmt.Errorf("hostile: add movement: %w", err)
	}

	attack := factory.NewAttack(spec.Attack, opts.Sink)
	if err := ecs.Add(w, e, component.AttackComponent.Kind(), &attack); err != nil {
		return 0, fmt.Errorf("hostile: add attack: %w", err)
	}

	return e, nil
}
