package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/ecs/entity"
)

const (
	// sideGunInset is how far the side guns sit inside the hull edges.
	sideGunInset = 8.0
	sideGunAngle = 15.0
)

// PlayerControllerSystem moves the player from its Input component, keeps it
// on screen, fires its weapon and counts down its timers.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input, tr *component.Transform) {
		if p.Dead {
			return
		}
		p.Tick(dt)

		dir := cp.Vector{}
		if in.Left {
			dir.X--
		}
		if in.Right {
			dir.X++
		}
		if in.Up {
			dir.Y--
		}
		if in.Down {
			dir.Y++
		}
		if dir.LengthSq() > 0 {
			dir = dir.Normalize()
		}
		tr.Pos = tr.Pos.Add(dir.Mult(p.Speed * dt))

		halfW, halfH := 0.0, 0.0
		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if ok {
			halfW, halfH = col.HalfExtents()
		}
		tr.Pos.X = common.Clamp(tr.Pos.X, halfW, common.ScreenWidth-halfW)
		tr.Pos.Y = common.Clamp(tr.Pos.Y, halfH, common.ScreenHeight-halfH)

		if in.Fire && p.ShotTimer <= 0 {
			fireWeapon(w, p, tr.Pos, halfW, halfH)
			p.ShotTimer = p.ShootDelay
		}
	})
}

type muzzle struct {
	offset cp.Vector
	angle  float64 // degrees off vertical, positive to the right
}

// weaponPattern lists the muzzles for a weapon level.
func weaponPattern(level int, halfW, halfH float64) []muzzle {
	top := -halfH
	left := cp.Vector{X: -halfW + sideGunInset, Y: top}
	right := cp.Vector{X: halfW - sideGunInset, Y: top}
	center := cp.Vector{X: 0, Y: top}

	switch {
	case level <= 1:
		return []muzzle{{offset: center}}
	case level == 2:
		return []muzzle{{offset: left}, {offset: right}}
	default:
		return []muzzle{
			{offset: center},
			{offset: left, angle: -sideGunAngle},
			{offset: right, angle: sideGunAngle},
		}
	}
}

func fireWeapon(w *ecs.World, p *component.Player, pos cp.Vector, halfW, halfH float64) {
	for _, m := range weaponPattern(p.WeaponLevel, halfW, halfH) {
		a := common.Deg2Rad(m.angle)
		vel := cp.Vector{X: math.Sin(a) * p.BulletSpeed, Y: -math.Cos(a) * p.BulletSpeed}
		_, err := entity.NewProjectile(w, pos.Add(m.offset), component.Projectile{
			Velocity:  vel,
			Faction:   component.FactionPlayer,
			Damage:    p.BulletDamage,
			VisualKey: "bullet",
		})
		if err != nil {
			log.Printf("player: fire: %v", err)
		}
	}
}
