package systems

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/assets"
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/effects"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/automoto/flyby/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	ringSegments = 48
	vignette     = 0.6
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	// Reused between frames to avoid allocations
	meshVertices []ebiten.Vertex
	meshIndices  []uint16
	faceBuf      []face
	pointBuf     []math32.Vector3

	trianglesOp = &ebiten.DrawTrianglesOptions{AntiAlias: true}
)

func init() {
	whiteImage.Fill(color.White)
}

// view projects world points to pixels for one frame.
type view struct {
	proj       gamemath.Projector
	eye        math32.Vector3
	width      int
	height     int
	pixelScale float32 // pixels per world unit at view depth 1
}

func newView(cam *components.CameraData, width, height int) view {
	aspect := cam.Aspect
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	tanHalf := math32.Tan(math32.DegToRad(cam.FOV) / 2)
	scale := float32(0)
	if tanHalf > 0 {
		scale = float32(height) / (2 * tanHalf)
	}
	return view{
		proj:       gamemath.NewProjector(cam.Position, cam.Target, cam.Up, cam.FOV, aspect, cam.Near, cam.Far),
		eye:        cam.Position,
		width:      width,
		height:     height,
		pixelScale: scale,
	}
}

func (v view) point(p math32.Vector3) (x, y, depth float32, ok bool) {
	nx, ny, depth, ok := v.proj.Project(p)
	if !ok {
		return 0, 0, depth, false
	}
	x, y = gamemath.ToScreen(nx, ny, v.width, v.height)
	return x, y, depth, true
}

// face is one projected, lit quad of a model part.
type face struct {
	pts   [4][2]float32
	depth float32
	clr   color.RGBA
}

// modelFaces appends the camera-facing faces of every visible part under
// root, sorted far to near.
func modelFaces(w donburi.World, root donburi.Entity, v view, light components.LightData, faces []face) []face {
	scenegraph.Walk(w, root, func(e donburi.Entity, _ *components.NodeData, _ int) bool {
		entry := w.Entry(e)
		if !entry.HasComponent(components.Part) || !scenegraph.Visible(w, e) {
			return true
		}
		part := components.Part.Get(entry)
		corners := gamemath.NewBoundingVolume(part.Min, part.Max).Corners()
		scenegraph.WorldPoints(w, e, corners[:])

		for _, f := range gamemath.BoxFaces {
			a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
			normal := b.Sub(a).Cross(c.Sub(a))
			if normal.Length() == 0 {
				continue
			}
			normal = normal.Normal()
			center := a.Add(c).MulScalar(0.5)
			if normal.Dot(v.eye.Sub(center)) <= 0 {
				continue
			}

			var out face
			visible := true
			for k, idx := range f {
				x, y, depth, ok := v.point(corners[idx])
				if !ok {
					visible = false
					break
				}
				out.pts[k] = [2]float32{x, y}
				out.depth += depth / 4
			}
			if !visible {
				continue
			}
			out.clr = shade(part.Color, normal, gamemath.DirectionBetween(center, light.Position))
			faces = append(faces, out)
		}
		return true
	})
	slices.SortFunc(faces, func(a, b face) int { return cmp.Compare(b.depth, a.depth) })
	return faces
}

// shade applies the ambient term plus a diffuse term from the key light.
func shade(c color.RGBA, normal, toLight math32.Vector3) color.RGBA {
	amb := math32.Clamp(cfg.Light.Ambient, 0, 1)
	k := amb + (1-amb)*max(normal.Dot(toLight), 0)
	lc := cfg.Light.Color
	ch := func(v, l uint8) uint8 {
		return uint8(math32.Clamp(float32(v)*k*float32(l)/255, 0, 255))
	}
	return color.RGBA{R: ch(c.R, lc.R), G: ch(c.G, lc.G), B: ch(c.B, lc.B), A: c.A}
}

// DrawBackdrop fills the screen with the variant's background gradient.
func DrawBackdrop(_ *ecs.ECS, screen *ebiten.Image) {
	bg := cfg.Scene.Background.Color()
	if assets.BackdropShader == nil {
		screen.Fill(bg)
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	top := []float32{float32(bg.R) / 255, float32(bg.G) / 255, float32(bg.B) / 255, 1}
	bottom := []float32{min(top[0]*1.8, 1), min(top[1]*1.8, 1), min(top[2]*1.8, 1), 1}
	screen.DrawRectShader(w, h, assets.BackdropShader, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{
			"Top":      top,
			"Bottom":   bottom,
			"Size":     []float32{float32(w), float32(h)},
			"Vignette": float32(vignette),
		},
	})
}

// NewDrawScene returns the renderer for the 3D part of st: ground ripples,
// the particle field and the model, in that order.
func NewDrawScene(st *stage.Stage) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		cam := st.CameraData()
		if cam == nil {
			return
		}
		v := newView(cam, screen.Bounds().Dx(), screen.Bounds().Dy())
		w := st.World

		if st.Ripples != nil {
			for _, e := range st.Ripples.Instances() {
				drawRing(screen, w, e, v)
			}
		}
		drawParticles(screen, w, st.Particles, v)

		md := st.ModelData()
		if md == nil || !md.Loaded {
			return
		}
		faceBuf = modelFaces(w, st.ModelRoot, v, md.Light, faceBuf[:0])
		for i := range faceBuf {
			f := &faceBuf[i]
			fillPolygon(screen, f.pts[:], f.clr, 1)
		}
	}
}

func drawRing(screen *ebiten.Image, w donburi.World, e donburi.Entity, v view) {
	if !scenegraph.Visible(w, e) {
		return
	}
	entry := w.Entry(e)
	fx := components.Effect.Get(entry)
	ring := components.Ring.Get(entry)
	if fx.Disposed || fx.Opacity <= 0 || fx.Scale <= 0 {
		return
	}

	pointBuf = pointBuf[:0]
	for i := range ringSegments {
		a := float32(i) / ringSegments * 2 * math32.Pi
		s, c := math32.Sincos(a)
		pointBuf = append(pointBuf,
			math32.Vec3(c*ring.InnerRadius, s*ring.InnerRadius, 0),
			math32.Vec3(c*ring.OuterRadius, s*ring.OuterRadius, 0))
	}
	scenegraph.WorldPoints(w, e, pointBuf)

	meshVertices = meshVertices[:0]
	meshIndices = meshIndices[:0]
	for _, p := range pointBuf {
		x, y, _, ok := v.point(p)
		if !ok {
			return
		}
		meshVertices = append(meshVertices, vertex(x, y, ring.Color, fx.Opacity))
	}
	n := uint16(len(pointBuf))
	for i := uint16(0); i < n; i += 2 {
		in0, out0 := i, i+1
		in1, out1 := (i+2)%n, (i+3)%n
		meshIndices = append(meshIndices, in0, out0, out1, in0, out1, in1)
	}
	screen.DrawTriangles(meshVertices, meshIndices, whiteSubImage, trianglesOp)
}

func drawParticles(screen *ebiten.Image, w donburi.World, e donburi.Entity, v view) {
	if !scenegraph.Visible(w, e) {
		return
	}
	f := components.ParticleField.Get(w.Entry(e))
	pointBuf = append(pointBuf[:0], f.Positions...)
	scenegraph.WorldPoints(w, e, pointBuf)

	for i, p := range pointBuf {
		x, y, depth, ok := v.point(p)
		if !ok || depth <= 0 {
			continue
		}
		a := effects.ParticleAlpha(f, i)
		if a <= 0 {
			continue
		}
		r := max(f.Size*v.pixelScale/depth, 0.5)
		fillCircle(screen, x, y, r, f.Color, a)
	}
}

func vertex(x, y float32, c color.RGBA, alpha float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255 * alpha,
	}
}

// fillPolygon fills a convex polygon given in pixels.
func fillPolygon(dst *ebiten.Image, pts [][2]float32, c color.RGBA, alpha float32) {
	if len(pts) < 3 {
		return
	}
	meshVertices = meshVertices[:0]
	meshIndices = meshIndices[:0]
	for _, p := range pts {
		meshVertices = append(meshVertices, vertex(p[0], p[1], c, alpha))
	}
	for i := 1; i < len(pts)-1; i++ {
		meshIndices = append(meshIndices, 0, uint16(i), uint16(i+1))
	}
	dst.DrawTriangles(meshVertices, meshIndices, whiteSubImage, trianglesOp)
}

var ellipseBuf [][2]float32

// fillEllipse fills an axis-aligned ellipse centered on (cx, cy).
func fillEllipse(dst *ebiten.Image, cx, cy, rx, ry float32, c color.RGBA, alpha float32) {
	segments := 32
	if rx < 4 && ry < 4 {
		segments = 8
	}
	ellipseBuf = ellipseBuf[:0]
	for i := range segments {
		s, co := math32.Sincos(float32(i) / float32(segments) * 2 * math32.Pi)
		ellipseBuf = append(ellipseBuf, [2]float32{cx + co*rx, cy + s*ry})
	}
	fillPolygon(dst, ellipseBuf, c, alpha)
}

func fillCircle(dst *ebiten.Image, cx, cy, r float32, c color.RGBA, alpha float32) {
	fillEllipse(dst, cx, cy, r, r, c, alpha)
}
