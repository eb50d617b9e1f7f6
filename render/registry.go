package render

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const placeholderSize = 16

// Registry caches images by visual key. Keys without an image file get a
// generated placeholder in the key's color.
type Registry struct {
	dir    string
	images map[string]*ebiten.Image
}

// NewRegistry looks for images under dir. An empty dir uses placeholders
// only.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, images: make(map[string]*ebiten.Image)}
}

// Image returns the image for key, creating it on first use.
func (r *Registry) Image(key string) *ebiten.Image {
	if img, ok := r.images[key]; ok {
		return img
	}
	img, err := loadImage(r.dir, key)
	if err != nil {
		if r.dir != "" {
			log.Printf("render: %v, using placeholder", err)
		}
		img = placeholder(paletteFor(key))
	}
	r.images[key] = img
	return img
}

// Forget drops cached images so edited files are read again.
func (r *Registry) Forget() {
	clear(r.images)
}

func placeholder(fill color.Color) *ebiten.Image {
	img := ebiten.NewImage(placeholderSize, placeholderSize)
	img.Fill(fill)
	vector.StrokeRect(img, 0.5, 0.5, placeholderSize-1, placeholderSize-1, 1, color.White, false)
	return img
}
