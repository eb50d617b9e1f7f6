package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.TrafficInterval)
	assert.Equal(t, time.Second, cfg.SpawnCooldown)
	assert.Equal(t, "prefabs", cfg.PrefabDir)
	assert.True(t, cfg.HotReload)
	assert.Empty(t, cfg.FeedURL)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("STRIKER_SEED", "42")
	t.Setenv("STRIKER_FEED_URL", "ws://env")
	t.Setenv("STRIKER_SPAWN_COOLDOWN", "3s")

	cfg, err := LoadConfig([]string{"-feed", "ws://flag", "-watch=false"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "ws://flag", cfg.FeedURL)
	assert.Equal(t, 3*time.Second, cfg.SpawnCooldown)
	assert.False(t, cfg.HotReload)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad env duration", env: map[string]string{"STRIKER_STOP_TIMEOUT": "soon"}},
		{name: "bad flag", args: []string{"-nope"}},
		{name: "negative cooldown", args: []string{"-cooldown", "-1s"}},
		{name: "zero traffic", args: []string{"-traffic", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}
