package stage

import (
	"log"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/archetypes"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/config"
	"github.com/automoto/flyby/effects"
	"github.com/automoto/flyby/framing"
	"github.com/automoto/flyby/motion"
	"github.com/automoto/flyby/tween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

func easing(name string) ease.TweenFunc {
	fn, err := tween.ParseEasing(name)
	if err != nil {
		log.Printf("Warning: %v, using linear", err)
		return ease.Linear
	}
	return fn
}

func degrees(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(math32.DegToRad(v.X), math32.DegToRad(v.Y), math32.DegToRad(v.Z))
}

func rippleProfile() (effects.Profile, error) {
	c := config.Ripple
	policy, err := effects.ParsePolicy(c.Policy)
	if err != nil {
		return effects.Profile{}, err
	}
	ring := components.RingData{
		InnerRadius: c.InnerRadius,
		OuterRadius: c.OuterRadius,
		Color:       c.Color.Color(),
	}
	return effects.Profile{
		Name:        "ripple",
		Policy:      policy,
		Interval:    c.Interval,
		Gap:         c.Gap,
		Duration:    c.Duration,
		Rotation:    math32.Vec3(-math32.Pi/2, 0, 0), // lie flat on the ground plane
		ScaleFrom:   c.ScaleFrom,
		ScaleTo:     c.ScaleTo,
		OpacityFrom: c.OpacityFrom,
		OpacityTo:   c.OpacityTo,
		Easing:      easing(c.Easing),
		Components:  archetypes.Ripple.Components(),
		Init: func(entry *donburi.Entry, _ bool) {
			components.Ring.SetValue(entry, ring)
		},
	}, nil
}

// starProfile places falling elements in screen fractions: x in [0,1] from
// the left, y in [0,1] from the top.
func starProfile() effects.Profile {
	c := config.Stars
	return effects.Profile{
		Name:             "star",
		Policy:           effects.SelfChaining,
		StartDelayJitter: c.DelayMax,
		Duration:         c.DurationMin,
		DurationJitter:   max(c.DurationMax-c.DurationMin, 0),
		Base:             math32.Vec3(0.5, c.StartY, 0),
		Spread:           math32.Vec3(1, 0, 0),
		Travel:           math32.Vec3(0, c.EndY-c.StartY, 0),
		ScaleFrom:        1,
		ScaleTo:          1,
		OpacityPeak:      c.Peak,
		FadeIn:           c.FadeIn,
		FadeOut:          c.FadeOut,
		FadeEasing:       easing(c.FadeEasing),
		TravelEasing:     easing(c.Easing),
		AccentChance:     c.LargeChance,
		Components:       archetypes.Star.Components(),
	}
}

func fieldConfig() effects.FieldConfig {
	c := config.Particles
	return effects.FieldConfig{
		Count:     c.Count,
		Spread:    c.Spread,
		DriftXZ:   c.DriftXZ,
		DriftY:    c.DriftY,
		LifeMin:   c.LifeMin,
		LifeMax:   c.LifeMax,
		Size:      c.Size,
		Opacity:   c.Opacity,
		FadeShare: c.FadeShare,
		Color:     c.Color.Color(),
	}
}

func motionConfig() motion.Config {
	c := config.Motion
	return motion.Config{
		TiltX:        c.TiltX,
		TiltY:        c.TiltY,
		Duration:     c.PointerDuration,
		Easing:       easing(c.PointerEasing),
		ScrollDelta:  c.ScrollDelta,
		SwayAngle:    math32.DegToRad(c.SwayAngle),
		SwayDuration: c.SwayDuration,
		SwayEasing:   easing(c.SwayEasing),
	}
}

func layer(e donburi.Entity, c config.LayerMotionConfig) motion.Layer {
	return motion.Layer{
		Entity:   e,
		ScaleX:   c.ScaleX,
		ScaleY:   c.ScaleY,
		Duration: c.Duration,
		Easing:   easing(c.Easing),
	}
}

func framingOptions() framing.Options {
	c := config.Framing
	opt := framing.DefaultOptions()
	if mode, err := framing.ParseMode(c.Mode); err != nil {
		log.Printf("Warning: %v, framing toward the center", err)
	} else {
		opt.Mode = mode
	}
	opt.Factor = c.Factor
	opt.Yaw = c.OffsetYaw
	opt.Pitch = c.OffsetPitch
	opt.Offset = c.Offset
	opt.DefaultDistance = c.DefaultDistance
	opt.MinNear = c.MinNear
	opt.NearFactor = c.NearFactor
	opt.FarFactor = c.FarFactor
	if config.Light.RangeFactor > 0 {
		opt.LightRange = config.Light.RangeFactor
	}
	return opt
}

func cameraData(width, height int) components.CameraData {
	c := config.Camera
	cam := components.CameraData{
		Position: c.Position,
		Up:       math32.Vec3(0, 1, 0),
		FOV:      c.FOV,
		Near:     c.Near,
		Far:      c.Far,
		Aspect:   1,
		Follow:   c.Follow,
	}
	if height > 0 {
		cam.Aspect = float32(width) / float32(height)
	}
	return cam
}
