package assets

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"

	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/config"
	"github.com/lafriks/go-tiled"
)

// DecorationGroup is the object group read from a decoration map.
const DecorationGroup = "clouds"

var defaultDecorationColor = color.RGBA{R: 22, G: 32, B: 58, A: 255}

// LoadDecorations reads the DecorationGroup objects of a Tiled map. Positions
// and sizes are returned as fractions of the map size, so the layer scales
// with the window.
func LoadDecorations(fsys fs.FS, path string) ([]components.Decoration, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, err
	}
	w := float64(m.Width * m.TileWidth)
	h := float64(m.Height * m.TileHeight)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%s: empty map", path)
	}

	var out []components.Decoration
	for _, og := range m.ObjectGroups {
		if og.Name != DecorationGroup {
			continue
		}
		for _, o := range og.Objects {
			d := components.Decoration{
				Name:    o.Name,
				X:       float32(o.X / w),
				Y:       float32(o.Y / h),
				Width:   float32(o.Width / w),
				Height:  float32(o.Height / h),
				Color:   defaultDecorationColor,
				Opacity: 1,
			}
			if s := o.Properties.GetString("color"); s != "" {
				c, err := config.ParseHexColor(s)
				if err != nil {
					log.Printf("Warning: decoration %q: %v", o.Name, err)
				} else {
					d.Color = c.Color()
				}
			}
			if a := o.Properties.GetFloat("opacity"); a > 0 {
				d.Opacity = float32(min(a, 1))
			}
			out = append(out, d)
		}
	}
	return out, nil
}
