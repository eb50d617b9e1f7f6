package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// loadImage reads <dir>/<key>.png, falling back to <dir>/<key>.
func loadImage(dir, key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if dir == "" {
		return nil, fmt.Errorf("render: no image directory for %q", key)
	}
	tried := []string{filepath.Join(dir, key+".png"), filepath.Join(dir, key)}
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", p, err)
		}
		return ebiten.NewImageFromImage(im), nil
	}
	return nil, fmt.Errorf("render: no image for %q in %s", key, dir)
}
