package behavior

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	shots []Shot
}

func (c *collector) SpawnProjectile(s Shot) { c.shots = append(c.shots, s) }

const tick = 1.0 / 60.0

func newTestAttack(t *testing.T, cfg Config) (*Attack, *collector) {
	t.Helper()
	sink := &collector{}
	a := NewFactory(nil).NewAttack(cfg, sink)
	return &a, sink
}

// runUntilFire ticks the attack until it emits or the step budget runs out.
func runUntilFire(a *Attack, self Body, target *cp.Vector, steps int) int {
	for i := 0; i < steps; i++ {
		if n := a.Update(tick, self, target); n > 0 {
			return i
		}
	}
	return -1
}

func angleBetween(a, b cp.Vector) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b)) * 180 / math.Pi
}

func TestSpreadShotSingleBulletHasNoSpread(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "spread_shot", Params: map[string]any{
		"bullet_count": 1, "spread_angle": 40, "cooldown": 0.1,
	}})
	self := Body{Pos: cp.Vector{X: 100, Y: 100}}
	target := cp.Vector{X: 100, Y: 400}

	require.GreaterOrEqual(t, runUntilFire(a, self, &target, 30), 0)
	require.Len(t, sink.shots, 1)
	assert.InDelta(t, 0, angleBetween(cp.Vector{X: 0, Y: 1}, sink.shots[0].Velocity), 1e-9)
	assert.InDelta(t, 300, sink.shots[0].Velocity.Length(), 1e-9)
}

func TestSpreadShotEvenlySpaced(t *testing.T) {
	cases := []struct {
		name  string
		count int
		half  float64
	}{
		{"three_fifteen", 3, 15},
		{"five_thirty", 5, 30},
		{"two_ten", 2, 10},
		{"seven_sixty", 7, 60},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, sink := newTestAttack(t, Config{Type: "spread_shot", Params: map[string]any{
				"bullet_count": c.count, "spread_angle": c.half, "cooldown": 0.05,
			}})
			self := Body{Pos: cp.Vector{X: 0, Y: 0}}
			target := cp.Vector{X: 200, Y: 200}
			base := cp.Vector{X: 1, Y: 1}.Normalize()

			require.GreaterOrEqual(t, runUntilFire(a, self, &target, 30), 0)
			require.Len(t, sink.shots, c.count)

			step := 2 * c.half / float64(c.count-1)
			for i, s := range sink.shots {
				assert.InDelta(t, -c.half+step*float64(i), angleBetween(base, s.Velocity), 1e-6)
			}
			assert.InDelta(t, -c.half, angleBetween(base, sink.shots[0].Velocity), 1e-6)
			assert.InDelta(t, c.half, angleBetween(base, sink.shots[c.count-1].Velocity), 1e-6)
		})
	}
}

func TestSpreadShotFixedModeIgnoresTarget(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "spread_shot", Params: map[string]any{
		"bullet_count": 1, "target_mode": "fixed", "cooldown": 0.05,
	}})
	self := Body{Pos: cp.Vector{X: 50, Y: 50}}

	require.GreaterOrEqual(t, runUntilFire(a, self, nil, 30), 0)
	require.Len(t, sink.shots, 1)
	assert.InDelta(t, 0, sink.shots[0].Velocity.X, 1e-9)
	assert.Greater(t, sink.shots[0].Velocity.Y, 0.0)
}

func TestCircularShotCoversFullCircle(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "circular_shot", Params: map[string]any{"bullet_count": 4, "cooldown": 0.05}})

	require.GreaterOrEqual(t, runUntilFire(a, Body{}, nil, 30), 0)
	require.Len(t, sink.shots, 4)
	for i := 1; i < 4; i++ {
		assert.InDelta(t, 90, math.Abs(angleBetween(sink.shots[i-1].Velocity, sink.shots[i].Velocity)), 1e-6)
	}
}

func TestZeroDirectionSuppressesShot(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "single_shot_player", Params: map[string]any{"cooldown": 0.05}})
	self := Body{Pos: cp.Vector{X: 10, Y: 10}}
	same := self.Pos

	for i := 0; i < 30; i++ {
		a.Update(tick, self, &same)
	}
	assert.Empty(t, sink.shots)

	other := cp.Vector{X: 10, Y: 50}
	require.GreaterOrEqual(t, runUntilFire(a, self, &other, 30), 0)
	assert.Len(t, sink.shots, 1)
}

func TestCooldownKeepsTriggerOvershoot(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "single_shot_down", Params: map[string]any{"cooldown": 0.25}})

	n := a.Update(0.1, Body{}, nil)
	assert.Zero(t, n)
	n = a.Update(0.1, Body{}, nil)
	assert.Zero(t, n)
	n = a.Update(0.1, Body{}, nil)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 0.05, a.Elapsed(), 1e-9)
	assert.Len(t, sink.shots, 1)
}

func TestBurstFireShotsPerBurst(t *testing.T) {
	const (
		cooldown = 0.5
		delay    = 0.1
		count    = 3
	)
	a, sink := newTestAttack(t, Config{Type: "burst_fire", Params: map[string]any{
		"cooldown": cooldown, "burst_count": count, "burst_delay": delay,
	}})
	self := Body{Pos: cp.Vector{X: 0, Y: 0}}
	target := cp.Vector{X: 0, Y: 300}

	var times []float64
	for i := 1; i <= 60*5; i++ {
		n := a.Update(tick, self, &target)
		for j := 0; j < n; j++ {
			times = append(times, float64(i)*tick)
		}
	}
	require.Len(t, sink.shots, len(times))

	var bursts [][]float64
	for i, ts := range times {
		if i == 0 || ts-times[i-1] > cooldown/2 {
			bursts = append(bursts, nil)
		}
		bursts[len(bursts)-1] = append(bursts[len(bursts)-1], ts)
	}
	require.GreaterOrEqual(t, len(bursts), 3)

	for i, b := range bursts {
		if i == len(bursts)-1 && len(b) < count {
			continue // cut off by the end of the run
		}
		require.Len(t, b, count, "burst %d", i)
		for j := 1; j < len(b); j++ {
			gap := b[j] - b[j-1]
			assert.InDelta(t, delay, gap, tick+1e-9, "burst %d shot %d", i, j)
		}
		if i > 0 {
			prevEnd := bursts[i-1][len(bursts[i-1])-1]
			assert.GreaterOrEqual(t, b[0]-prevEnd, cooldown-1e-6, "burst %d re-triggered early", i)
		}
	}
}

func TestBurstFireStateMachine(t *testing.T) {
	a, _ := newTestAttack(t, Config{Type: "burst_fire", Params: map[string]any{
		"cooldown": 0.2, "burst_count": 2, "burst_delay": 0.1,
	}})
	target := cp.Vector{X: 0, Y: 10}

	phase, _ := a.BurstState()
	assert.Equal(t, BurstIdle, phase)

	require.GreaterOrEqual(t, runUntilFire(a, Body{}, &target, 60), 0)
	phase, shots := a.BurstState()
	assert.Equal(t, BurstBursting, phase)
	assert.Equal(t, 1, shots)

	require.GreaterOrEqual(t, runUntilFire(a, Body{}, &target, 60), 0)
	phase, _ = a.BurstState()
	assert.Equal(t, BurstIdle, phase)
	assert.Zero(t, a.Elapsed())
}

func TestAdmissionPredicateGatesTrigger(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "single_shot_player", Params: map[string]any{
		"cooldown": 0.05, "admit": "has_target && distance < 100",
	}})
	self := Body{Pos: cp.Vector{X: 0, Y: 0}}
	far := cp.Vector{X: 0, Y: 500}
	near := cp.Vector{X: 0, Y: 50}

	assert.Equal(t, -1, runUntilFire(a, self, &far, 30))
	assert.Empty(t, sink.shots)

	assert.GreaterOrEqual(t, runUntilFire(a, self, &near, 2), 0)
	assert.Len(t, sink.shots, 1)
}

func TestAdmissionCompileErrorAdmits(t *testing.T) {
	a, sink := newTestAttack(t, Config{Type: "single_shot_down", Params: map[string]any{
		"cooldown": 0.05, "admit": "distance <<<",
	}})

	assert.GreaterOrEqual(t, runUntilFire(a, Body{}, nil, 30), 0)
	assert.Len(t, sink.shots, 1)
}
