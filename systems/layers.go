package systems

import (
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewDrawLayers returns the renderer for the flat background layers of st:
// falling stars first, then the clouds over them.
func NewDrawLayers(st *stage.Stage) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		w := st.World
		width := float32(screen.Bounds().Dx())
		height := float32(screen.Bounds().Dy())
		drawStars(screen, w, st.Stars, width, height)
		drawClouds(screen, w, st.Clouds, width, height)
	}
}

func layerOf(w donburi.World, e donburi.Entity) *components.LayerData {
	if !scenegraph.Visible(w, e) {
		return nil
	}
	return components.Layer.Get(w.Entry(e))
}

func drawStars(screen *ebiten.Image, w donburi.World, layer donburi.Entity, width, height float32) {
	l := layerOf(w, layer)
	if l == nil {
		return
	}
	c := cfg.Stars.Color.Color()
	for _, e := range scenegraph.Children(w, layer) {
		entry := w.Entry(e)
		if !entry.HasComponent(components.Effect) {
			continue
		}
		fx := components.Effect.Get(entry)
		if fx.Disposed || fx.Opacity <= 0 {
			continue
		}
		pos := components.Transform.Get(entry).Position
		r := cfg.Stars.Size
		if fx.Large {
			r = cfg.Stars.LargeSize
		}
		fillCircle(screen, pos.X*width+l.OffsetX, pos.Y*height+l.OffsetY, r, c, fx.Opacity)
	}
}

func drawClouds(screen *ebiten.Image, w donburi.World, layer donburi.Entity, width, height float32) {
	l := layerOf(w, layer)
	if l == nil {
		return
	}
	for _, d := range l.Decorations {
		rx, ry := d.Width*width/2, d.Height*height/2
		cx := d.X*width + rx + l.OffsetX
		cy := d.Y*height + ry + l.OffsetY
		fillEllipse(screen, cx, cy, rx, ry, d.Color, d.Opacity)
	}
}
