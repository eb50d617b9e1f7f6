package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/striker/bridge"
	"github.com/milk9111/striker/common"
	"github.com/milk9111/striker/netmon"
	"github.com/milk9111/striker/prefabs"
	"github.com/milk9111/striker/render"
	"github.com/milk9111/striker/sim"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	prefabs.Dir = cfg.PrefabDir

	policy, err := prefabs.LoadSpawnPolicy()
	if err != nil {
		log.Printf("main: %v, using built-in spawn policy", err)
		policy = prefabs.DefaultSpawnPolicy()
	}
	waves, err := prefabs.LoadWaves()
	if err != nil {
		log.Printf("main: %v, using built-in waves", err)
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("main: %v, using built-in player", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bridge.New(bridge.WithCooldown(cfg.SpawnCooldown))
	if !cfg.Offline {
		src, err := packetSource(ctx, cfg)
		if err != nil {
			log.Printf("main: %v, running without traffic", err)
		} else if err := b.Start(ctx, netmon.NewMonitor(src)); err != nil {
			log.Printf("main: start traffic: %v", err)
		}
	}
	defer func() {
		if err := b.Stop(cfg.StopTimeout); err != nil {
			log.Printf("main: %v", err)
		}
	}()

	var watcher *prefabs.Watcher
	if cfg.HotReload {
		watcher, err = prefabs.NewWatcher(cfg.PrefabDir, filepath.Join(cfg.PrefabDir, "scripts"))
		switch {
		case errors.Is(err, prefabs.ErrNothingToWatch):
			watcher = nil
			log.Printf("main: no prefab directory at %s, hot reload off", cfg.PrefabDir)
		case err != nil:
			watcher = nil
			log.Printf("main: hot reload off: %v", err)
		default:
			defer watcher.Close()
		}
	}

	s, err := sim.New(sim.Options{
		Seed:    cfg.Seed,
		Bridge:  b,
		Policy:  policy,
		Waves:   waves,
		Player:  player,
		Scripts: prefabs.LoadScript,
	})
	if err != nil {
		log.Fatal(err)
	}

	renderer := render.NewRenderer(render.NewRegistry(cfg.AssetDir))
	renderer.Debug = cfg.Debug

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("striker")
	ebiten.SetTPS(common.FPS)

	var game *Game
	if watcher != nil {
		game = NewGame(s, renderer, watcher)
	} else {
		game = NewGame(s, renderer, nil)
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// packetSource picks the remote feed when one is configured and synthetic
// traffic otherwise.
func packetSource(ctx context.Context, cfg Config) (netmon.PacketSource, error) {
	if cfg.FeedURL != "" {
		return netmon.DialWebSocket(ctx, cfg.FeedURL)
	}
	return netmon.NewSyntheticSource(cfg.Seed, cfg.TrafficInterval), nil
}
