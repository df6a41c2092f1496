package systems

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/fonts"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/automoto/flyby/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const controlsHint = "F3 debug   F follow   V next variant   Esc quit"

var (
	axisX     = color.RGBA{255, 80, 80, 255}
	axisY     = color.RGBA{80, 255, 80, 255}
	axisZ     = color.RGBA{80, 80, 255, 255}
	bboxColor = color.RGBA{255, 255, 0, 255}
	textColor = color.RGBA{220, 220, 220, 255}
)

// NewDrawDebug returns the renderer for the debug overlay: world axes, the
// model bounding box, the key light and a block of counters.
func NewDrawDebug(st *stage.Stage) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		settings := GetOrCreateSettings(e)
		if !settings.Debug {
			return
		}
		cam := st.CameraData()
		if cam == nil {
			return
		}
		v := newView(cam, screen.Bounds().Dx(), screen.Bounds().Dy())

		md := st.ModelData()
		size := float32(1)
		if md != nil && md.Loaded {
			if d := md.Bounds.Diagonal(); d > 0 {
				size = d / 2
			}
			corners := md.Bounds.Corners()
			for _, edge := range gamemath.BoxEdges {
				drawSegment(screen, v, corners[edge[0]], corners[edge[1]], bboxColor)
			}
			if x, y, _, ok := v.point(md.Light.Position); ok {
				fillCircle(screen, x, y, 4, cfg.Light.Color.Color(), 1)
			}
		}

		origin := math32.Vector3{}
		drawSegment(screen, v, origin, math32.Vec3(size, 0, 0), axisX)
		drawSegment(screen, v, origin, math32.Vec3(0, size, 0), axisY)
		drawSegment(screen, v, origin, math32.Vec3(0, 0, size), axisZ)

		if !fonts.Mono.Loaded() {
			return
		}
		face := fonts.Mono.Get()
		lineHeight := face.Metrics().Height.Ceil()
		for i, line := range debugLines(st, settings) {
			text.Draw(screen, line, face, 8, 8+lineHeight*(i+1), textColor)
		}
		if fonts.Regular.Loaded() {
			text.Draw(screen, controlsHint, fonts.Regular.Get(), 8, screen.Bounds().Dy()-10, textColor)
		}
	}
}

func drawSegment(screen *ebiten.Image, v view, a, b math32.Vector3, c color.RGBA) {
	x0, y0, _, ok0 := v.point(a)
	x1, y1, _, ok1 := v.point(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)
}

// debugLines formats the counters shown by the overlay.
func debugLines(st *stage.Stage, settings *components.SettingsData) []string {
	lines := []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("variant %s  phase %v  follow %v", settings.Variant, st.Phase(), settings.Follow),
	}
	p := st.LoadProgress()
	lines = append(lines, fmt.Sprintf("load %d/%d (%.0f%%)", p.ItemsLoaded, p.ItemsTotal, p.Fraction*100))

	if md := st.ModelData(); md != nil && md.Loaded {
		lines = append(lines, fmt.Sprintf("model %s  parts %d  size %.2f", md.Name, md.Parts, md.Bounds.Diagonal()))
	}
	if cam := st.CameraData(); cam != nil {
		lines = append(lines, fmt.Sprintf("camera (%.2f, %.2f, %.2f)  distance %.2f",
			cam.Position.X, cam.Position.Y, cam.Position.Z, cam.Position.Sub(cam.Target).Length()))
	}
	if st.Ripples != nil {
		lines = append(lines, fmt.Sprintf("ripples %s  live %d  spawned %d",
			st.Ripples.State(), st.Ripples.Live(), st.Ripples.Spawned()))
	}
	lines = append(lines,
		fmt.Sprintf("stars live %d", st.Falling.Live()),
		fmt.Sprintf("tweens %d  timers %d", st.Tweens.Len(), st.Clock.Len()),
	)
	if f := particleField(st); f != nil {
		lines = append(lines, fmt.Sprintf("particles %d  recycled %d", len(f.Positions), f.Recycled))
	}
	return lines
}

func particleField(st *stage.Stage) *components.ParticleFieldData {
	if !scenegraph.Alive(st.World, st.Particles) {
		return nil
	}
	return components.ParticleField.Get(st.World.Entry(st.Particles))
}
