// Package render draws simulation snapshots with ebiten. It never touches the
// simulation itself.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/bridge"
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/sim"
	"golang.org/x/image/colornames"
)

const bossBarHeight = 10

type Renderer struct {
	images *Registry
	Debug  bool
}

func NewRenderer(images *Registry) *Renderer {
	if images == nil {
		images = NewRegistry("")
	}
	return &Renderer{images: images}
}

// Images exposes the image cache so callers can drop it after asset edits.
func (r *Renderer) Images() *Registry { return r.images }

func (r *Renderer) Draw(screen *ebiten.Image, snap sim.Snapshot) {
	screen.Fill(colornames.Midnightblue)

	for _, h := range snap.Hostiles {
		r.drawBox(screen, h.VisualKey, h.Pos, h.Width, h.Height)
	}
	for _, p := range snap.Projectiles {
		key := p.VisualKey
		if key == "" {
			key = "bullet"
			if p.Faction == component.FactionHostile {
				key = "bullet_hostile"
			}
		}
		r.drawBox(screen, key, p.Pos, p.Width, p.Height)
	}
	if !snap.Player.Dead && !(snap.Player.Invulnerable && snap.Tick/6%2 == 1) {
		r.drawBox(screen, "player", snap.Player.Pos, snap.Player.Width, snap.Player.Height)
	}

	if snap.HasBoss {
		drawBossBar(screen, snap.BossHealth, snap.BossMaxHealth)
	}
	r.drawHUD(screen, snap)

	switch {
	case snap.GameOver:
		drawOverlay(screen, "GAME OVER", fmt.Sprintf("score %d\npress R to restart", snap.Score))
	case snap.Victory:
		drawOverlay(screen, "VICTORY", fmt.Sprintf("score %d\npress R to play again", snap.Score))
	case snap.Paused:
		drawOverlay(screen, "PAUSED", "press P to resume")
	}
}

// drawBox draws the image for key stretched over the box centered on pos.
func (r *Renderer) drawBox(screen *ebiten.Image, key string, pos cp.Vector, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	img := r.images.Image(key)
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(pos.X-w/2, pos.Y-h/2)
	screen.DrawImage(img, op)

	if r.Debug {
		vector.StrokeRect(screen, float32(pos.X-w/2), float32(pos.Y-h/2), float32(w), float32(h), 1, colornames.Lime, false)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	p := snap.Player
	lines := []string{
		fmt.Sprintf("SCORE %d   KILLS %d", snap.Score, snap.Kills),
		fmt.Sprintf("WAVE %d/%d %s", snap.Wave, snap.MaxWaves, snap.WaveName),
		fmt.Sprintf("HP %d/%d   LIVES %d   WEAPON %d", p.Health, p.MaxHealth, p.Lives, p.WeaponLevel),
	}
	if snap.TransitionLeft > 0 {
		lines = append(lines, fmt.Sprintf("next wave in %.1fs", snap.TransitionLeft))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8+bossBarHeight)

	if r.Debug {
		debug := fmt.Sprintf("TPS %.1f  FPS %.1f  tick %d\nrun %s\n%s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), snap.Tick, snap.RunID, trafficLine(snap.Bridge))
		ebitenutil.DebugPrintAt(screen, debug, 8, common.ScreenHeight-56)
	}
}

func trafficLine(stats bridge.Stats) string {
	var b strings.Builder
	for _, c := range bridge.Categories {
		fmt.Fprintf(&b, "%s %d/%d  ", c, stats.Accepted[c], stats.Dropped[c])
	}
	fmt.Fprintf(&b, "queued %d", stats.Queued)
	return b.String()
}

func drawBossBar(screen *ebiten.Image, health, max int) {
	if max <= 0 {
		return
	}
	frac := float32(health) / float32(max)
	vector.DrawFilledRect(screen, 0, 0, common.ScreenWidth, bossBarHeight, colornames.Darkslategray, false)
	vector.DrawFilledRect(screen, 0, 0, common.ScreenWidth*frac, bossBarHeight, colornames.Crimson, false)
}

func drawOverlay(screen *ebiten.Image, title, detail string) {
	vector.DrawFilledRect(screen, 0, 0, common.ScreenWidth, common.ScreenHeight, color.RGBA{A: 160}, false)
	x := common.ScreenWidth/2 - 60
	y := common.ScreenHeight/2 - 20
	ebitenutil.DebugPrintAt(screen, title, x, y)
	ebitenutil.DebugPrintAt(screen, detail, x, y+20)
}
