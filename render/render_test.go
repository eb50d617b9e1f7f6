package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/striker/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, colornames.Deepskyblue, paletteFor("player"))
	assert.Equal(t, paletteFor("enemy_scout"), paletteFor("enemy_scout"))
	assert.Contains(t, fallbackColors, paletteFor("something_new"))
}

func TestTrafficLine(t *testing.T) {
	line := trafficLine(bridge.Stats{
		Accepted: map[bridge.Category]uint64{bridge.TCP: 3},
		Dropped:  map[bridge.Category]uint64{bridge.TCP: 7},
		Queued:   2,
	})
	assert.Contains(t, line, "tcp 3/7")
	assert.Contains(t, line, "udp 0/0")
	assert.Contains(t, line, "queued 2")
}

func TestLoadImageErrors(t *testing.T) {
	_, err := loadImage("", "enemy")
	assert.Error(t, err)

	dir := t.TempDir()
	_, err = loadImage(dir, "missing")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644))
	_, err = loadImage(dir, "broken")
	assert.ErrorContains(t, err, "decode")
}
