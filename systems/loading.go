package systems

import (
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewDrawLoading returns the renderer for the progress bar shown until the
// model is in place. A failed load leaves the bar stalled in the fail color.
func NewDrawLoading(st *stage.Stage) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		p := st.LoadProgress()
		if p.Complete {
			return
		}
		width := float32(screen.Bounds().Dx())
		height := float32(screen.Bounds().Dy())
		c := cfg.Loading

		vector.FillRect(screen, 0, 0, width, height, c.OverlayColor, false)

		x := (width - c.BarWidth) / 2
		y := height/2 + c.BarHeight
		fg := c.BarFgColor
		if p.Failed {
			fg = c.FailColor
		}
		vector.FillRect(screen, x, y, c.BarWidth, c.BarHeight, c.BarBgColor, false)
		vector.FillRect(screen, x, y, c.BarWidth*float32(p.Fraction), c.BarHeight, fg, false)
	}
}
