package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings. Environment variables set the defaults and
// command line flags override them.
type Config struct {
	Seed            int64         `env:"STRIKER_SEED"`
	FeedURL         string        `env:"STRIKER_FEED_URL"`
	Offline         bool          `env:"STRIKER_OFFLINE"`
	TrafficInterval time.Duration `env:"STRIKER_TRAFFIC_INTERVAL" envDefault:"250ms"`
	SpawnCooldown   time.Duration `env:"STRIKER_SPAWN_COOLDOWN"   envDefault:"1s"`
	StopTimeout     time.Duration `env:"STRIKER_STOP_TIMEOUT"     envDefault:"2s"`
	PrefabDir       string        `env:"STRIKER_PREFAB_DIR"       envDefault:"prefabs"`
	AssetDir        string        `env:"STRIKER_ASSET_DIR"`
	HotReload       bool          `env:"STRIKER_HOT_RELOAD"       envDefault:"true"`
	Debug           bool          `env:"STRIKER_DEBUG"`
	BaseMonitor     bool          `env:"STRIKER_BASE_MONITOR"`
}

func LoadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	fs := flag.NewFlagSet("striker", flag.ContinueOnError)
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one per run")
	fs.StringVar(&cfg.FeedURL, "feed", cfg.FeedURL, "websocket packet feed URL, empty uses synthetic traffic")
	fs.BoolVar(&cfg.Offline, "offline", cfg.Offline, "run without any traffic producer")
	fs.DurationVar(&cfg.TrafficInterval, "traffic", cfg.TrafficInterval, "mean gap between synthetic packets")
	fs.DurationVar(&cfg.SpawnCooldown, "cooldown", cfg.SpawnCooldown, "minimum gap between spawns of one traffic category")
	fs.StringVar(&cfg.PrefabDir, "prefabs", cfg.PrefabDir, "prefab directory that overrides the embedded copies")
	fs.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "image directory, empty draws placeholders")
	fs.BoolVar(&cfg.HotReload, "watch", cfg.HotReload, "reload prefabs when they change on disk")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if cfg.SpawnCooldown < 0 {
		return Config{}, fmt.Errorf("config: negative spawn cooldown %s", cfg.SpawnCooldown)
	}
	if cfg.TrafficInterval <= 0 {
		return Config{}, fmt.Errorf("config: traffic interval must be positive, got %s", cfg.TrafficInterval)
	}
	return cfg, nil
}
