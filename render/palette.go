package render

import (
	"hash/fnv"
	"image/color"

	"golang.org/x/image/colornames"
)

var keyColors = map[string]color.RGBA{
	"player":      colornames.Deepskyblue,
	"bullet":      colornames.Yellow,
	"enemy":       colornames.Crimson,
	"enemy_boss":  colornames.Darkmagenta,
	"bullet_boss": colornames.Hotpink,
}

var fallbackColors = []color.RGBA{
	colornames.Orangered,
	colornames.Limegreen,
	colornames.Mediumpurple,
	colornames.Darkorange,
	colornames.Teal,
	colornames.Goldenrod,
}

// paletteFor picks a stable color for a visual key.
func paletteFor(key string) color.RGBA {
	if c, ok := keyColors[key]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}
