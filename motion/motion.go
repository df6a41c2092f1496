// Package motion turns normalized pointer and scroll input into rotations of
// scene groups and offsets of flat background layers.
package motion

import (
	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/scenegraph"
	"github.com/automoto/flyby/tween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// NormalizePointer maps a pixel position inside a w×h viewport to [-1,1] on
// both axes with y pointing up. Positions outside the viewport are clamped.
func NormalizePointer(px, py, w, h float32) (x, y float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	x = math32.Clamp(px/w*2-1, -1, 1)
	y = math32.Clamp(-(py/h*2 - 1), -1, 1)
	return x, y
}

// ScrollProgress maps a scroll offset in pixels to [0,1] over a virtual page
// pageHeights viewports tall.
func ScrollProgress(pos, viewportH, pageHeights float32) float32 {
	span := (pageHeights - 1) * viewportH
	if span <= 0 {
		return 0
	}
	return math32.Clamp(pos/span, 0, 1)
}

// Config holds the tilt, scrub and sway parameters. Angles are in radians.
type Config struct {
	TiltX    float32 // rotation x per unit of pointer y, applied negated
	TiltY    float32 // rotation y per unit of pointer x
	Duration float32
	Easing   ease.TweenFunc

	ScrollDelta math32.Vector3 // rotation added at full scroll

	SwayAngle    float32
	SwayDuration float32
	SwayEasing   ease.TweenFunc
}

// Layer is a flat layer whose offset follows the pointer.
type Layer struct {
	Entity   donburi.Entity
	ScaleX   float32 // pixels per unit of pointer x
	ScaleY   float32 // pixels per unit of pointer y
	Duration float32
	Easing   ease.TweenFunc
}

// Controller routes input to its targets. Every eased request goes through the
// registry, so a newer request on a target property replaces the older one.
type Controller struct {
	world  donburi.World
	tweens *tween.Registry
	cfg    Config

	tilt       donburi.Entity // pointer tilt target
	scrub      donburi.Entity // scroll scrub target
	scrollBase math32.Vector3
	progress   float32 // latest scroll progress, kept while disabled
	scrolled   bool
	sway       donburi.Entity
	swaying    bool

	layers  []Layer
	enabled bool
}

// NewController returns a controller with no targets. Layers react right
// away; scene targets react once Enable is called.
func NewController(w donburi.World, reg *tween.Registry, cfg Config) *Controller {
	if cfg.Easing == nil {
		cfg.Easing = ease.Linear
	}
	if cfg.SwayEasing == nil {
		cfg.SwayEasing = ease.InOutSine
	}
	return &Controller{
		world:  w,
		tweens: reg,
		cfg:    cfg,
		tilt:   donburi.Null,
		scrub:  donburi.Null,
		sway:   donburi.Null,
	}
}

// SetTargets chooses the group tilted by the pointer and the group scrubbed by
// scroll. The scrub base is the scrub target's rotation at this moment.
func (c *Controller) SetTargets(tilt, scrub donburi.Entity) {
	c.tilt = tilt
	c.scrub = scrub
	if t := scenegraph.Local(c.world, scrub); t != nil {
		c.scrollBase = t.Rotation
	}
}

// AddLayer registers a 2D layer for pointer parallax.
func (c *Controller) AddLayer(l Layer) {
	if l.Easing == nil {
		l.Easing = c.cfg.Easing
	}
	c.layers = append(c.layers, l)
}

// Enable starts routing input to the scene targets. A scroll made while
// disabled is applied at once.
func (c *Controller) Enable() {
	c.enabled = true
	if c.scrolled {
		c.applyScrub(c.progress)
	}
}

// Enabled reports whether scene targets receive input.
func (c *Controller) Enabled() bool { return c.enabled }

// Tilt returns the rotation a pointer at (x, y) asks for.
func (c *Controller) Tilt(x, y float32) (tiltX, tiltY float32) {
	return -y * c.cfg.TiltX, x * c.cfg.TiltY
}

// PointerMoved handles a normalized pointer position.
func (c *Controller) PointerMoved(x, y float32) {
	for _, l := range c.layers {
		c.animateLayer(l, x, y)
	}
	if !c.enabled {
		return
	}
	tiltX, tiltY := c.Tilt(x, y)
	c.rotate(c.tilt, tween.RotationX, tiltX, c.cfg.Duration, c.cfg.Easing, nil)
	c.rotate(c.tilt, tween.RotationY, tiltY, c.cfg.Duration, c.cfg.Easing, nil)
}

// Scrolled writes the scrub rotation for progress in [0,1]. The result
// depends only on progress, never on elapsed time.
func (c *Controller) Scrolled(progress float32) {
	c.progress = math32.Clamp(progress, 0, 1)
	c.scrolled = true
	if c.enabled {
		c.applyScrub(c.progress)
	}
}

func (c *Controller) applyScrub(progress float32) {
	t := scenegraph.Local(c.world, c.scrub)
	if t == nil {
		return
	}
	for _, p := range []tween.Property{tween.RotationX, tween.RotationY, tween.RotationZ} {
		c.tweens.CancelKey(tween.Key{Target: c.scrub, Property: p})
	}
	t.Rotation = c.scrollBase.Add(c.cfg.ScrollDelta.MulScalar(progress))
}

// StartSway rocks target around z between its current angle and -SwayAngle.
func (c *Controller) StartSway(target donburi.Entity) {
	t := scenegraph.Local(c.world, target)
	if t == nil || c.cfg.SwayDuration <= 0 || c.cfg.SwayAngle == 0 {
		return
	}
	c.sway = target
	c.swaying = true
	rest := t.Rotation.Z
	c.swing(rest, rest-c.cfg.SwayAngle)
}

func (c *Controller) swing(from, to float32) {
	if !c.swaying {
		return
	}
	c.rotate(c.sway, tween.RotationZ, to, c.cfg.SwayDuration, c.cfg.SwayEasing, func() {
		c.swing(to, from)
	})
}

// StopSway cancels the idle sway and leaves the target where it is.
func (c *Controller) StopSway() {
	c.swaying = false
	c.tweens.CancelKey(tween.Key{Target: c.sway, Property: tween.RotationZ})
}

// Swaying reports whether the idle sway is running.
func (c *Controller) Swaying() bool { return c.swaying }

// Dispose stops every tween this controller started and disables it.
func (c *Controller) Dispose() {
	c.StopSway()
	c.enabled = false
	for _, e := range []donburi.Entity{c.tilt, c.scrub} {
		if e != donburi.Null {
			c.tweens.CancelTarget(e)
		}
	}
	for _, l := range c.layers {
		c.tweens.CancelTarget(l.Entity)
	}
	c.layers = nil
}

// rotate eases one rotation axis of e from its current value to `to`.
func (c *Controller) rotate(e donburi.Entity, prop tween.Property, to, dur float32, easing ease.TweenFunc, done func()) {
	t := scenegraph.Local(c.world, e)
	if t == nil {
		return
	}
	from := axis(&t.Rotation, prop)
	w := c.world
	c.tweens.Animate(tween.Request{
		Key:  tween.Key{Target: e, Property: prop},
		From: *from, To: to, Duration: dur, Easing: easing,
		Apply: func(v float32) {
			// a disposed target swallows the write
			if t := scenegraph.Local(w, e); t != nil {
				*axis(&t.Rotation, prop) = v
			}
		},
		OnComplete: done,
	})
}

func axis(v *math32.Vector3, prop tween.Property) *float32 {
	switch prop {
	case tween.RotationX:
		return &v.X
	case tween.RotationY:
		return &v.Y
	}
	return &v.Z
}

func (c *Controller) animateLayer(l Layer, x, y float32) {
	data := layerData(c.world, l.Entity)
	if data == nil {
		return
	}
	w := c.world
	set := func(prop tween.Property, from, to float32) {
		c.tweens.Animate(tween.Request{
			Key:  tween.Key{Target: l.Entity, Property: prop},
			From: from, To: to, Duration: l.Duration, Easing: l.Easing,
			Apply: func(v float32) {
				d := layerData(w, l.Entity)
				if d == nil {
					return
				}
				if prop == tween.OffsetX {
					d.OffsetX = v
				} else {
					d.OffsetY = v
				}
			},
		})
	}
	fromX, fromY := data.OffsetX, data.OffsetY
	set(tween.OffsetX, fromX, x*l.ScaleX)
	set(tween.OffsetY, fromY, y*l.ScaleY)
}

func layerData(w donburi.World, e donburi.Entity) *components.LayerData {
	if !scenegraph.Alive(w, e) {
		return nil
	}
	entry := w.Entry(e)
	if !entry.HasComponent(components.Layer) {
		return nil
	}
	return components.Layer.Get(entry)
}
