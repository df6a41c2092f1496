// Package stage assembles the landing scene and drives it one tick at a time.
//
// A Stage owns everything the scene needs: the world, the scene groups, the
// camera, the tween registry, the effect timers and populations, the motion
// controller and the load progress. Nothing is global; a second Stage in the
// same process is independent of the first.
package stage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/archetypes"
	"github.com/automoto/flyby/assets"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/config"
	"github.com/automoto/flyby/effects"
	"github.com/automoto/flyby/framing"
	"github.com/automoto/flyby/motion"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/automoto/flyby/tags"
	"github.com/automoto/flyby/timer"
	"github.com/automoto/flyby/tween"
	"github.com/yohamta/donburi"
)

// ErrLoaderClosed is reported when the loader stops without a terminal event.
var ErrLoaderClosed = errors.New("loader closed without a result")

// Loader is the asset loading capability.
type Loader interface {
	Load(ctx context.Context, req assets.Request) <-chan assets.Event
}

// Phase is the lifecycle phase of a Stage.
type Phase int

const (
	Created Phase = iota
	Loading
	Ready
	Failed
	Disposed
)

func (p Phase) String() string {
	switch p {
	case Created:
		return "created"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Options configures a Stage. The scene parameters come from the config
// package globals at Init time.
type Options struct {
	Loader        Loader
	Width, Height int
	Seed          uint64
}

// Stage is the scene composition driver.
type Stage struct {
	World  donburi.World
	Tweens *tween.Registry
	Clock  *timer.Scheduler
	Motion *motion.Controller

	Root         donburi.Entity
	Drag         donburi.Entity
	ModelWrapper donburi.Entity
	ModelRoot    donburi.Entity
	RippleGroup  donburi.Entity
	Particles    donburi.Entity
	Clouds       donburi.Entity
	Stars        donburi.Entity
	Camera       donburi.Entity
	Progress     donburi.Entity

	Ripples *effects.Population
	Falling effects.Group

	loader        Loader
	rng           *rand.Rand
	field         effects.FieldConfig
	events        <-chan assets.Event
	cancel        context.CancelFunc
	phase         Phase
	width, height int
}

// New returns a stage over w. Call Init to build the scene.
func New(w donburi.World, opt Options) *Stage {
	seed := opt.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Stage{
		World:  w,
		Tweens: tween.NewRegistry(),
		Clock:  timer.NewScheduler(),
		loader: opt.Loader,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		width:  opt.Width,
		height: opt.Height,
	}
}

// Phase returns the lifecycle phase.
func (s *Stage) Phase() Phase { return s.phase }

// Init builds the scene groups, the camera, the ambient effects and the 2D
// layers, then starts loading the model.
func (s *Stage) Init(ctx context.Context) error {
	if s.phase != Created {
		return fmt.Errorf("stage init in phase %v", s.phase)
	}
	if s.loader == nil {
		return errors.New("stage has no loader")
	}
	ripple, err := rippleProfile()
	if err != nil {
		return err
	}
	w := s.World

	s.Root = archetypes.SceneRoot.Node(w, tags.NameSceneRoot, donburi.Null)
	s.Drag = archetypes.DragWrapper.Node(w, tags.NameDragWrapper, s.Root)
	s.ModelWrapper = archetypes.ModelWrapper.Node(w, tags.NameModelWrapper, s.Drag)
	scenegraph.Local(w, s.ModelWrapper).Rotation = degrees(config.Framing.ModelRotation)
	s.ModelRoot = archetypes.ModelRoot.Node(w, tags.NameModelRoot, s.ModelWrapper)
	components.Model.SetValue(w.Entry(s.ModelRoot), components.ModelData{Name: config.Scene.Model})

	// fixed offset above the ground plane, not derived from the model bounds
	s.RippleGroup = archetypes.RippleGroup.Node(w, tags.NameRippleGroup, s.Root)
	scenegraph.Local(w, s.RippleGroup).Position.Y = config.Ripple.GroupY

	s.field = fieldConfig()
	s.Particles = archetypes.ParticleField.Node(w, tags.NameParticles, s.Root)
	components.ParticleField.SetValue(w.Entry(s.Particles), effects.NewParticleField(s.field, s.rng))

	s.Clouds = archetypes.CloudLayer.Node(w, tags.NameCloudLayer, donburi.Null)
	components.Layer.SetValue(w.Entry(s.Clouds), components.LayerData{Name: tags.NameCloudLayer})
	s.Stars = archetypes.StarLayer.Node(w, tags.NameStarLayer, donburi.Null)
	components.Layer.SetValue(w.Entry(s.Stars), components.LayerData{Name: tags.NameStarLayer})

	cam := archetypes.Camera.Create(w)
	components.Camera.SetValue(cam, cameraData(s.width, s.height))
	s.Camera = cam.Entity()
	s.Progress = archetypes.LoadProgress.Create(w).Entity()

	s.Motion = motion.NewController(w, s.Tweens, motionConfig())
	s.Motion.SetTargets(s.Drag, s.ModelWrapper)
	s.Motion.AddLayer(layer(s.Clouds, config.Motion.Clouds))
	s.Motion.AddLayer(layer(s.Stars, config.Motion.Stars))

	env := effects.Env{World: w, Tweens: s.Tweens, Clock: s.Clock, Rand: s.rng}
	if s.Ripples, err = effects.NewPopulation(env, s.RippleGroup, ripple); err != nil {
		return err
	}
	if s.Falling, err = effects.NewLanes(env, s.Stars, starProfile(), config.Stars.Count); err != nil {
		return err
	}
	if err := s.Falling.Start(); err != nil {
		return err
	}

	lctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.phase = Loading
	s.events = s.loader.Load(lctx, assets.Request{
		Model:       config.Scene.Model,
		Decorations: config.Loading.DecorationMap,
	})
	return nil
}

// LoadProgress returns a copy of the load progress.
func (s *Stage) LoadProgress() components.LoadProgressData {
	if p := s.progress(); p != nil {
		return *p
	}
	return components.LoadProgressData{}
}

func (s *Stage) progress() *components.LoadProgressData {
	if s.Progress == donburi.Null || !s.World.Valid(s.Progress) {
		return nil
	}
	return components.LoadProgress.Get(s.World.Entry(s.Progress))
}

// CameraData returns the live camera component, or nil once disposed.
func (s *Stage) CameraData() *components.CameraData {
	if s.Camera == donburi.Null || !s.World.Valid(s.Camera) {
		return nil
	}
	return components.Camera.Get(s.World.Entry(s.Camera))
}

// ModelData returns the live model component, or nil once disposed.
func (s *Stage) ModelData() *components.ModelData {
	if !scenegraph.Alive(s.World, s.ModelRoot) {
		return nil
	}
	return components.Model.Get(s.World.Entry(s.ModelRoot))
}

// OnProgress records loader progress. The fraction never decreases.
func (s *Stage) OnProgress(loaded, total int) {
	p := s.progress()
	if p == nil || p.Complete || p.Failed {
		return
	}
	p.ItemsLoaded = loaded
	p.ItemsTotal = total
	if total > 0 {
		f := min(max(float64(loaded)/float64(total), 0), 1)
		p.Fraction = max(p.Fraction, f)
	}
}

// OnLoaded attaches the model, frames it once, starts the ripples and
// enables pointer and scroll routing. It is ignored unless the stage is loading.
func (s *Stage) OnLoaded(model *assets.Model, decorations []components.Decoration) error {
	if s.phase != Loading {
		return nil
	}
	if model == nil {
		return fmt.Errorf("%w: empty model", assets.ErrLoadFailure)
	}
	w := s.World

	parts := 0
	for _, r := range model.Roots {
		parts += s.attach(model, r, s.ModelRoot, 0)
	}
	if l := components.Layer.Get(w.Entry(s.Clouds)); l != nil {
		l.Decorations = decorations
	}

	bounds, center, err := s.modelBounds()
	if err != nil && !errors.Is(err, gamemath.ErrDegenerateGeometry) {
		return err
	}
	cam := s.CameraData()
	res, err := framing.Frame(bounds, *cam, framingOptions())
	if err != nil {
		log.Printf("Warning: framing %s: %v", model.Name, err)
	} else {
		res.Apply(cam)
	}

	md := s.ModelData()
	md.Name = model.Name
	md.Parts = parts
	md.Bounds = bounds
	md.Center = center
	md.Light = res.Light
	md.Loaded = true
	md.Degenerate = res.Degenerate

	if p := s.progress(); p != nil {
		p.Fraction = 1
		p.Complete = true
	}
	s.phase = Ready

	if err := s.Ripples.Start(); err != nil {
		log.Printf("Warning: ripples: %v", err)
	}
	s.Motion.Enable()
	s.Motion.StartSway(s.ModelRoot)
	return nil
}

const maxDepth = 64

// attach recreates node i of model under parent and returns how many parts it added.
func (s *Stage) attach(model *assets.Model, i int, parent donburi.Entity, depth int) int {
	if i < 0 || i >= len(model.Nodes) || depth > maxDepth {
		return 0
	}
	w := s.World
	n := model.Nodes[i]
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("node-%d", i)
	}

	var e donburi.Entity
	added := 0
	if n.Mesh != nil {
		e = archetypes.ModelPart.Node(w, name, parent)
		if e == donburi.Null {
			return 0
		}
		components.Part.SetValue(w.Entry(e), components.PartData{
			Min: n.Mesh.Min, Max: n.Mesh.Max, Color: n.Mesh.Color,
		})
		added++
	} else {
		if e = scenegraph.NewNode(w, name, parent); e == donburi.Null {
			return 0
		}
	}
	*scenegraph.Local(w, e) = n.Transform
	for _, c := range n.Children {
		added += s.attach(model, c, e, depth+1)
	}
	return added
}

// modelBounds returns the world bounds of every part under the model root
// and their center in model-root space.
func (s *Stage) modelBounds() (gamemath.BoundingVolume, math32.Vector3, error) {
	w := s.World
	var world, local []gamemath.Part
	scenegraph.Walk(w, s.ModelRoot, func(e donburi.Entity, n *components.NodeData, _ int) bool {
		entry := w.Entry(e)
		if !entry.HasComponent(components.Part) {
			return true
		}
		p := components.Part.Get(entry)
		corners := gamemath.NewBoundingVolume(p.Min, p.Max).Corners()
		inRoot := corners
		scenegraph.WorldPoints(w, e, corners[:])
		scenegraph.PointsIn(w, e, s.ModelRoot, inRoot[:])
		world = append(world, gamemath.Part{Name: n.Name, Corners: corners[:]})
		local = append(local, gamemath.Part{Name: n.Name, Corners: inRoot[:]})
		return true
	})
	bounds, err := gamemath.ComputeBoundingVolume(world)
	if err != nil {
		return bounds, math32.Vector3{}, err
	}
	lb, err := gamemath.ComputeBoundingVolume(local)
	return bounds, lb.Center(), err
}

// OnFailed marks the load as failed. The progress indicator stalls and the
// ambient effects keep running; nothing is retried.
func (s *Stage) OnFailed(err error) {
	if s.phase != Loading {
		return
	}
	s.phase = Failed
	if p := s.progress(); p != nil {
		p.Failed = true
		p.Err = err
	}
	log.Printf("Warning: loading %s: %v", config.Scene.Model, err)
}

// Tick runs one frame: loader events, timers, tweens, particles, then follow mode.
func (s *Stage) Tick(dt float64) {
	if s.phase == Disposed || s.phase == Created {
		return
	}
	s.drain()
	s.Clock.Advance(dt)
	s.Tweens.Update(float32(dt))
	s.stepParticles(float32(dt))
	s.follow()
}

func (s *Stage) drain() {
	for s.events != nil {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.events = nil
				s.OnFailed(ErrLoaderClosed)
				return
			}
			s.handle(ev)
		default:
			return
		}
	}
}

func (s *Stage) handle(ev assets.Event) {
	switch ev.Kind {
	case assets.EventProgress:
		s.OnProgress(ev.Loaded, ev.Total)
	case assets.EventComplete:
		s.OnProgress(ev.Loaded, ev.Total)
		if err := s.OnLoaded(ev.Model, ev.Decorations); err != nil {
			s.OnFailed(err)
		}
	case assets.EventFailed:
		s.OnFailed(ev.Err)
	}
}

func (s *Stage) stepParticles(dt float32) {
	if !scenegraph.Alive(s.World, s.Particles) {
		return
	}
	f := components.ParticleField.Get(s.World.Entry(s.Particles))
	effects.StepParticleField(f, s.field, dt, s.rng)
}

// follow re-aims the camera at the model's current center. The camera
// position set by framing is left alone.
func (s *Stage) follow() {
	cam := s.CameraData()
	md := s.ModelData()
	if cam == nil || md == nil || !cam.Follow || !md.Loaded {
		return
	}
	cam.Target = scenegraph.WorldPoint(s.World, s.ModelRoot, md.Center)
}

// SetFollow toggles follow mode.
func (s *Stage) SetFollow(on bool) {
	if cam := s.CameraData(); cam != nil {
		cam.Follow = on
		if !on {
			if md := s.ModelData(); md != nil && md.Loaded {
				cam.Target = md.Bounds.Center()
			}
		}
	}
}

// Resize updates the viewport used for pointer normalization and the camera aspect.
func (s *Stage) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	if cam := s.CameraData(); cam != nil {
		cam.Aspect = float32(width) / float32(height)
	}
}

// Size returns the viewport size in pixels.
func (s *Stage) Size() (width, height int) { return s.width, s.height }

// PointerMoved routes a normalized pointer position to the motion controller.
func (s *Stage) PointerMoved(x, y float32) {
	if s.Motion != nil && s.phase != Disposed {
		s.Motion.PointerMoved(x, y)
	}
}

// Scrolled routes scroll progress in [0,1] to the motion controller.
func (s *Stage) Scrolled(progress float32) {
	if s.Motion != nil && s.phase != Disposed {
		s.Motion.Scrolled(progress)
	}
}

// Dispose stops the load, tears down every population and tween, and
// removes every entity the stage created. It is idempotent.
func (s *Stage) Dispose() {
	if s.phase == Disposed {
		return
	}
	s.phase = Disposed
	if s.cancel != nil {
		s.cancel()
	}
	s.events = nil
	if s.Ripples != nil {
		s.Ripples.Teardown()
	}
	s.Falling.Teardown()
	if s.Motion != nil {
		s.Motion.Dispose()
	}
	s.Tweens.Clear()
	s.Clock.Close()

	w := s.World
	for _, e := range []donburi.Entity{s.Root, s.Clouds, s.Stars} {
		scenegraph.Dispose(w, e)
	}
	for _, e := range []donburi.Entity{s.Camera, s.Progress} {
		if e != donburi.Null && w.Valid(e) {
			w.Remove(e)
		}
	}
}
