package prefabs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsEditedPrefab(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnemiesFile), []byte("default: basic\n"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Changed()...)
		return slices.Contains(got, EnemiesFile)
	}, 2*time.Second, 20*time.Millisecond)
	assert.NotContains(t, got, "notes.txt")
}

func TestWatcherNothingToWatch(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, ErrNothingToWatch)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Empty(t, w.Changed())
}
