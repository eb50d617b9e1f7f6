package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/render"
	"github.com/milk9111/striker/sim"
)

// prefabWatcher reports prefab files changed on disk.
type prefabWatcher interface {
	Changed() []string
}

type Game struct {
	sim      *sim.Simulation
	renderer *render.Renderer
	watcher  prefabWatcher

	snap sim.Snapshot
}

func NewGame(s *sim.Simulation, r *render.Renderer, w prefabWatcher) *Game {
	return &Game{sim: s, renderer: r, watcher: w}
}

func (g *Game) Update() error {
	if g.watcher != nil {
		if names := g.watcher.Changed(); len(names) > 0 {
			g.sim.ApplyPrefabChanges(names)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.renderer.Debug = !g.renderer.Debug
	}

	g.snap = g.sim.Step(1/float64(ebiten.TPS()), readInput())
	if g.snap.Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.snap)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func readInput() sim.Input {
	const stickDeadzone = 0.2

	in := sim.Input{
		Up:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:    ebiten.IsKeyPressed(ebiten.KeySpace),
		Pause:   ebiten.IsKeyPressed(ebiten.KeyP) || ebiten.IsKeyPressed(ebiten.KeyEscape),
		Quit:    ebiten.IsKeyPressed(ebiten.KeyQ),
		Restart: ebiten.IsKeyPressed(ebiten.KeyR),
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone {
			in.Left = in.Left || x < 0
			in.Right = in.Right || x > 0
		}
		if math.Abs(y) > stickDeadzone {
			in.Up = in.Up || y < 0
			in.Down = in.Down || y > 0
		}
		in.Fire = in.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Pause = in.Pause || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight)
		in.Restart = in.Restart || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightTop)
	}
	return in
}
