package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/striker/bridge"
	"github.com/milk9111/striker/ecs"
	"github.com/milk9111/striker/ecs/component"
	"github.com/milk9111/striker/ecs/entity"
	"github.com/milk9111/striker/prefabs"
	"github.com/milk9111/striker/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

// quietWaves never spawns on its own during a test.
func quietWaves() prefabs.WavesSpec {
	return prefabs.WavesSpec{
		MaxWaves:           3,
		BossEvery:          5,
		BossCategory:       "boss",
		TransitionDuration: 1,
		Waves:              []prefabs.WaveSpec{{Name: "Quiet", Count: 1, Interval: 1000}},
	}
}

func emptyWaves(maxWaves int, transition float64) prefabs.WavesSpec {
	return prefabs.WavesSpec{
		MaxWaves:           maxWaves,
		BossEvery:          5,
		BossCategory:       "boss",
		TransitionDuration: transition,
		Waves:              []prefabs.WaveSpec{{Name: "Empty", Count: 0, Interval: 1}},
	}
}

func newSim(t *testing.T, opts Options) *Simulation {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func fire(t *testing.T, w *ecs.World, pos cp.Vector, faction component.Faction, damage int) {
	t.Helper()
	_, err := entity.NewProjectile(w, pos, component.Projectile{Faction: faction, Damage: damage})
	require.NoError(t, err)
}

func TestThreeShotsOneKill(t *testing.T) {
	s := newSim(t, Options{Waves: quietWaves()})
	pos := cp.Vector{X: 300, Y: 200}
	_, err := s.SpawnHostile(prefabs.BasicCategory, pos, component.SourceNetwork, false)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		fire(t, s.World(), pos, component.FactionPlayer, 10)
	}

	snap := s.Step(frame, Input{})

	assert.Equal(t, 1, snap.Kills)
	assert.Equal(t, 75, snap.Score)
	assert.Empty(t, snap.Hostiles)
	assert.Len(t, snap.Projectiles, 1, "third projectile misses once the hostile is gone")
}

func TestBridgeEventsSpawnHostiles(t *testing.T) {
	b := bridge.New()
	s := newSim(t, Options{Waves: quietWaves(), Bridge: b})
	require.True(t, b.Publish(bridge.TCP))

	snap := s.Step(frame, Input{})

	require.Len(t, snap.Hostiles, 1)
	h := snap.Hostiles[0]
	assert.Equal(t, prefabs.BasicCategory, h.Category, "unmapped category falls back to basic")
	assert.GreaterOrEqual(t, h.Pos.X, 50.0)
	assert.LessOrEqual(t, h.Pos.X, 750.0)
	assert.Less(t, h.Pos.Y, 0.0)
	assert.Zero(t, snap.Bridge.Queued)
	assert.Equal(t, uint64(1), snap.Bridge.Accepted[bridge.TCP])
}

func TestNetworkSpawnsDoNotCountTowardWave(t *testing.T) {
	b := bridge.New()
	s := newSim(t, Options{Waves: emptyWaves(3, 1), Bridge: b})
	require.True(t, b.Publish(bridge.UDP))

	snap := s.Step(frame, Input{})

	assert.Len(t, snap.Hostiles, 1)
	assert.Equal(t, wave.Transitioning, snap.Phase, "wave clears with a network hostile alive")
}

func TestPauseDiscardsNetworkEvents(t *testing.T) {
	b := bridge.New()
	s := newSim(t, Options{Waves: quietWaves(), Bridge: b})

	snap := s.Step(frame, Input{Pause: true})
	require.True(t, snap.Paused)

	require.True(t, b.Publish(bridge.ICMP))
	snap = s.Step(frame, Input{Pause: true})
	assert.True(t, snap.Paused, "holding the key does not toggle again")
	assert.Empty(t, snap.Hostiles)
	assert.Zero(t, snap.Bridge.Queued)
	tick := snap.Tick

	s.Step(frame, Input{})
	snap = s.Step(frame, Input{Pause: true})
	assert.False(t, snap.Paused)
	assert.Empty(t, snap.Hostiles)
	assert.Equal(t, tick+1, snap.Tick)
}

func TestGameOverAndRestart(t *testing.T) {
	spec := prefabs.DefaultPlayer()
	spec.Lives, spec.MaxLives = 1, 1
	s := newSim(t, Options{Waves: quietWaves(), Player: spec})
	first := s.RunID()

	snap := s.Step(frame, Input{Restart: true})
	assert.Equal(t, first, s.RunID(), "restart is ignored mid-run")

	fire(t, s.World(), snap.Player.Pos, component.FactionHostile, spec.Health*2)
	snap = s.Step(frame, Input{})
	require.True(t, snap.GameOver)
	assert.True(t, snap.Player.Dead)

	tick := snap.Tick
	snap = s.Step(frame, Input{})
	assert.Equal(t, tick, snap.Tick, "terminal runs do not advance")

	snap = s.Step(frame, Input{Restart: true})
	assert.NotEqual(t, first, s.RunID())
	assert.False(t, snap.GameOver)
	assert.False(t, snap.Player.Dead)
	assert.Equal(t, 1, snap.Player.Lives)
	assert.Zero(t, snap.Score)
	assert.Equal(t, 1, snap.Wave)
}

func TestWaveClearRewardsPlayer(t *testing.T) {
	s := newSim(t, Options{Waves: emptyWaves(3, 1)})
	p, ok := ecs.Get(s.World(), s.Player(), component.PlayerComponent.Kind())
	require.True(t, ok)
	p.Health = 50

	snap := s.Step(frame, Input{})

	assert.Equal(t, wave.Transitioning, snap.Phase)
	assert.Equal(t, 2, snap.Player.WeaponLevel)
	assert.Equal(t, 70, snap.Player.Health)
}

func TestVictoryAfterLastWave(t *testing.T) {
	s := newSim(t, Options{Waves: emptyWaves(1, 0)})

	snap := s.Step(frame, Input{})
	require.False(t, snap.Victory)
	snap = s.Step(frame, Input{})
	assert.True(t, snap.Victory)
	assert.Equal(t, wave.Complete, snap.Phase)
}

func TestBossWave(t *testing.T) {
	policy, err := prefabs.LoadSpawnPolicy()
	require.NoError(t, err)
	waves := emptyWaves(3, 1)
	waves.BossEvery = 1
	s := newSim(t, Options{Waves: waves, Policy: policy})

	snap := s.Step(frame, Input{})
	require.Equal(t, wave.BossActive, snap.Phase)
	require.True(t, snap.HasBoss)
	require.Len(t, snap.Hostiles, 1)
	assert.True(t, snap.Hostiles[0].Boss)
	assert.Equal(t, 500, snap.BossMaxHealth)

	boss, ok := ecs.First(s.World(), component.HostileComponent.Kind())
	require.True(t, ok)
	tr, ok := ecs.Get(s.World(), boss, component.TransformComponent.Kind())
	require.True(t, ok)
	tr.Pos = cp.Vector{X: 400, Y: 200}
	fire(t, s.World(), tr.Pos, component.FactionPlayer, 500)

	snap = s.Step(frame, Input{})
	assert.Equal(t, 1000, snap.Score)
	assert.False(t, snap.HasBoss)

	snap = s.Step(frame, Input{})
	assert.Equal(t, wave.Transitioning, snap.Phase)
}

func TestStepClampsDelta(t *testing.T) {
	s := newSim(t, Options{Waves: quietWaves()})
	snap := s.Step(5, Input{})
	assert.InDelta(t, MaxDeltaTime, snap.Time, 1e-9)
}

func TestQuit(t *testing.T) {
	s := newSim(t, Options{Waves: quietWaves()})
	snap := s.Step(frame, Input{Quit: true})
	assert.True(t, snap.Quit)
	assert.Zero(t, snap.Tick)
}

func TestReloadPolicy(t *testing.T) {
	b := bridge.New()
	s := newSim(t, Options{Waves: quietWaves(), Bridge: b})
	policy, err := prefabs.ParseSpawnPolicy([]byte(`
default: basic
packet_map:
  arp: drone
categories:
  drone:
    health: 5
    score: 10
    asset_key: drone
`))
	require.NoError(t, err)
	s.ReloadPolicy(policy)

	require.True(t, b.Publish(bridge.ARP))
	snap := s.Step(frame, Input{})

	require.Len(t, snap.Hostiles, 1)
	assert.Equal(t, "drone", snap.Hostiles[0].Category)
	assert.Equal(t, "drone", snap.Hostiles[0].VisualKey)
	assert.Equal(t, 5, snap.Hostiles[0].MaxHealth)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newSim(t, Options{Waves: quietWaves()})
	_, err := s.SpawnHostile(prefabs.BasicCategory, cp.Vector{X: 100, Y: 100}, component.SourceNetwork, false)
	require.NoError(t, err)

	snap := s.Step(0, Input{})
	require.Len(t, snap.Hostiles, 1)
	snap.Hostiles[0].Pos = cp.Vector{X: -1000, Y: -1000}

	again := s.Step(0, Input{})
	assert.Equal(t, 100.0, again.Hostiles[0].Pos.X)
}

func TestApplyPrefabChangesReadsDisk(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	require.NoError(t, os.WriteFile(filepath.Join(dir, prefabs.EnemiesFile), []byte(`
default: basic
packet_map:
  udp: tank
categories:
  tank:
    health: 90
    asset_key: tank
`), 0o644))

	b := bridge.New()
	s := newSim(t, Options{Waves: quietWaves(), Bridge: b})
	s.ApplyPrefabChanges([]string{prefabs.EnemiesFile, "unrelated.txt"})

	require.True(t, b.Publish(bridge.UDP))
	snap := s.Step(frame, Input{})
	require.Len(t, snap.Hostiles, 1)
	assert.Equal(t, "tank", snap.Hostiles[0].Category)
	assert.Equal(t, 90, snap.Hostiles[0].Health)
}

func TestApplyPrefabChangesKeepsPolicyOnError(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })
	require.NoError(t, os.WriteFile(filepath.Join(dir, prefabs.EnemiesFile), []byte("categories: [broken"), 0o644))

	s := newSim(t, Options{Waves: quietWaves()})
	before := s.policy
	s.ApplyPrefabChanges([]string{prefabs.EnemiesFile})
	assert.Same(t, before, s.policy)
}
