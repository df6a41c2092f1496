package motion

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/tween"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type rig struct {
	world  donburi.World
	tweens *tween.Registry
	drag   donburi.Entity
	model  donburi.Entity
	ctrl   *Controller
}

func newRig() *rig {
	w := donburi.NewWorld()
	root := scenegraph.NewNode(w, "scene", donburi.Null)
	drag := scenegraph.NewNode(w, "drag-wrapper", root)
	model := scenegraph.NewNode(w, "model-wrapper", drag)
	scenegraph.Local(w, model).Rotation = math32.Vec3(0, 1, 0.15)

	reg := tween.NewRegistry()
	ctrl := NewController(w, reg, Config{
		TiltX:        0.1,
		TiltY:        0.3,
		Duration:     1,
		Easing:       tween.MustEasing("power2.out"),
		ScrollDelta:  math32.Vec3(-0.1, -0.8, 0),
		SwayAngle:    0.15,
		SwayDuration: 2.5,
		SwayEasing:   tween.MustEasing("sine.inOut"),
	})
	ctrl.SetTargets(drag, model)
	return &rig{world: w, tweens: reg, drag: drag, model: model, ctrl: ctrl}
}

func (r *rig) rotation(e donburi.Entity) math32.Vector3 {
	return scenegraph.Local(r.world, e).Rotation
}

func (r *rig) run(seconds float32) {
	for i := 0; i < int(seconds*60+0.5); i++ {
		r.tweens.Update(1.0 / 60)
	}
}

func TestPointerScenarioConverges(t *testing.T) {
	r := newRig()
	r.ctrl.Enable()

	r.ctrl.PointerMoved(-1, 0.5)
	r.run(0.3)
	r.ctrl.PointerMoved(1, 0)

	prev := r.rotation(r.drag).Y
	for i := 0; i < 61; i++ {
		r.tweens.Update(1.0 / 60)
		y := r.rotation(r.drag).Y
		assert.GreaterOrEqual(t, y, prev, "no pull back toward the stale target")
		prev = y
	}
	assert.InDelta(t, 0.3, r.rotation(r.drag).Y, 1e-6)
	assert.InDelta(t, 0, r.rotation(r.drag).X, 1e-6)
	assert.Equal(t, 0, r.tweens.Len())
}

func TestTiltSigns(t *testing.T) {
	r := newRig()
	tx, ty := r.ctrl.Tilt(0.5, 1)
	assert.InDelta(t, -0.1, tx, 1e-6)
	assert.InDelta(t, 0.15, ty, 1e-6)
}

func TestPointerIgnoredUntilEnabled(t *testing.T) {
	r := newRig()
	r.ctrl.PointerMoved(1, 1)
	r.run(2)
	assert.Equal(t, math32.Vector3{}, r.rotation(r.drag))
	assert.False(t, r.ctrl.Enabled())
}

func TestScrollScrubIsPureFunctionOfProgress(t *testing.T) {
	r := newRig()
	r.ctrl.Enable()
	base := math32.Vec3(0, 1, 0.15)

	r.ctrl.Scrolled(0.5)
	half := r.rotation(r.model)
	assert.InDelta(t, base.X-0.05, half.X, 1e-6)
	assert.InDelta(t, base.Y-0.4, half.Y, 1e-6)
	assert.InDelta(t, base.Z, half.Z, 1e-6)

	r.ctrl.Scrolled(1)
	r.run(3)
	r.ctrl.Scrolled(0.5)
	assert.Equal(t, half, r.rotation(r.model), "same progress, same pose")

	r.ctrl.Scrolled(0)
	assert.Equal(t, base, r.rotation(r.model))
	r.ctrl.Scrolled(4)
	assert.InDelta(t, base.Y-0.8, r.rotation(r.model).Y, 1e-6)
}

func TestScrollBeforeEnableAppliesOnEnable(t *testing.T) {
	r := newRig()
	base := math32.Vec3(0, 1, 0.15)

	r.ctrl.Scrolled(0.25)
	r.ctrl.Scrolled(1)
	assert.Equal(t, base, r.rotation(r.model), "disabled: pose untouched")

	r.ctrl.Enable()
	got := r.rotation(r.model)
	assert.InDelta(t, base.X-0.1, got.X, 1e-6)
	assert.InDelta(t, base.Y-0.8, got.Y, 1e-6)
}

func TestEnableWithoutScrollKeepsPose(t *testing.T) {
	r := newRig()
	r.ctrl.Enable()
	assert.Equal(t, math32.Vec3(0, 1, 0.15), r.rotation(r.model))
}

func TestScrollCancelsTweensOnScrubTarget(t *testing.T) {
	r := newRig()
	r.ctrl.Enable()
	r.tweens.Animate(tween.Request{
		Key: tween.Key{Target: r.model, Property: tween.RotationY}, From: 0, To: 5, Duration: 10,
		Apply: func(v float32) { scenegraph.Local(r.world, r.model).Rotation.Y = v },
	})
	r.ctrl.Scrolled(0.25)
	r.run(1)
	assert.InDelta(t, 1-0.2, r.rotation(r.model).Y, 1e-6)
}

func TestLayerParallax(t *testing.T) {
	r := newRig()
	clouds := scenegraph.NewNode(r.world, "clouds", donburi.Null, components.Layer)
	stars := scenegraph.NewNode(r.world, "stars", donburi.Null, components.Layer)
	r.ctrl.AddLayer(Layer{Entity: clouds, ScaleX: 30, ScaleY: -30, Duration: 1.5})
	r.ctrl.AddLayer(Layer{Entity: stars, ScaleX: 30, ScaleY: -20, Duration: 1.5})

	// layers follow the pointer even before the scene targets are enabled
	r.ctrl.PointerMoved(0.5, -1)
	r.run(1.6)

	c := components.Layer.Get(r.world.Entry(clouds))
	assert.InDelta(t, 15, c.OffsetX, 1e-5)
	assert.InDelta(t, 30, c.OffsetY, 1e-5)
	s := components.Layer.Get(r.world.Entry(stars))
	assert.InDelta(t, 15, s.OffsetX, 1e-5)
	assert.InDelta(t, 20, s.OffsetY, 1e-5)
	assert.Equal(t, math32.Vector3{}, r.rotation(r.drag))
}

func TestSwayRocksBackAndForth(t *testing.T) {
	r := newRig()
	r.ctrl.StartSway(r.model)
	require.True(t, r.ctrl.Swaying())

	r.run(2.5)
	assert.InDelta(t, 0.0, r.rotation(r.model).Z, 1e-4)
	r.run(2.5)
	assert.InDelta(t, 0.15, r.rotation(r.model).Z, 1e-4)
	for range 10 {
		r.run(5)
	}
	assert.InDelta(t, 0.15, r.rotation(r.model).Z, 1e-4, "legs stay in phase")

	r.run(1.25)
	z := r.rotation(r.model).Z
	assert.Greater(t, z, float32(0))
	assert.Less(t, z, float32(0.15))

	r.ctrl.StopSway()
	r.run(3)
	assert.Equal(t, z, r.rotation(r.model).Z)
	assert.Equal(t, 0, r.tweens.Len())
}

func TestDisposedTargetIsNoop(t *testing.T) {
	r := newRig()
	r.ctrl.Enable()
	r.ctrl.PointerMoved(1, 1)
	scenegraph.Dispose(r.world, r.drag)

	assert.NotPanics(t, func() {
		r.run(1)
		r.ctrl.PointerMoved(-1, -1)
		r.ctrl.Scrolled(0.5)
		r.ctrl.StartSway(r.model)
	})
	assert.False(t, r.ctrl.Swaying())
}

func TestDispose(t *testing.T) {
	r := newRig()
	r.ctrl.Enable()
	r.ctrl.StartSway(r.model)
	r.ctrl.PointerMoved(1, 1)
	require.Greater(t, r.tweens.Len(), 0)

	r.ctrl.Dispose()
	assert.Equal(t, 0, r.tweens.Len())
	assert.False(t, r.ctrl.Enabled())
}

func TestNormalizePointer(t *testing.T) {
	x, y := NormalizePointer(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = NormalizePointer(400, 300, 800, 600)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)

	x, y = NormalizePointer(2000, 900, 800, 600)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)

	x, y = NormalizePointer(10, 10, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestScrollProgress(t *testing.T) {
	assert.InDelta(t, 0.5, ScrollProgress(600, 600, 3), 1e-6)
	assert.Equal(t, float32(1), ScrollProgress(5000, 600, 3))
	assert.Equal(t, float32(0), ScrollProgress(-10, 600, 3))
	assert.Equal(t, float32(0), ScrollProgress(100, 600, 1))
}
