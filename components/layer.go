package components

import (
	"image/color"

	"github.com/yohamta/donburi"
)

// Decoration is one element of a 2D background layer, in screen fractions.
type Decoration struct {
	Name          string
	X, Y          float32
	Width, Height float32
	Color         color.RGBA
	Opacity       float32
}

// LayerData is a flat screen-space layer drawn behind the 3D scene.
// OffsetX/OffsetY are pixel offsets written by pointer parallax.
type LayerData struct {
	Name        string
	OffsetX     float32
	OffsetY     float32
	Decorations []Decoration
}

var Layer = donburi.NewComponentType[LayerData]()
