// Package framing places a camera so a bounding volume fills a chosen share
// of the view. Frame is a pure function and runs once per loaded asset.
package framing

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/shared/gamemath"
)

// Mode selects the side of the volume the camera ends up on.
type Mode int

const (
	// TowardCenter continues along the seed-to-center direction past the center.
	TowardCenter Mode = iota
	// AwayFromCenter stays on the seed's side of the center.
	AwayFromCenter
	// OffsetAngle rotates the toward-center direction by Yaw and Pitch.
	OffsetAngle
)

// ParseMode maps a config name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "toward-center":
		return TowardCenter, nil
	case "away-from-center":
		return AwayFromCenter, nil
	case "offset-angle":
		return OffsetAngle, nil
	}
	return 0, fmt.Errorf("unknown framing mode %q", name)
}

// DefaultFOV is used when the camera carries an unusable field of view.
const DefaultFOV float32 = 45

// Options tunes the placement. Angles are in degrees.
type Options struct {
	Mode   Mode
	Factor float32 // half extent as a fraction of the bounding diagonal
	Yaw    float32
	Pitch  float32
	Offset math32.Vector3 // added after the base placement

	DefaultDistance float32 // used for degenerate volumes
	MinNear         float32
	NearFactor      float32
	FarFactor       float32
	LightRange      float32 // light range as a multiple of the diagonal
}

// DefaultOptions frames the asset at half its diagonal.
func DefaultOptions() Options {
	return Options{
		Mode:            TowardCenter,
		Factor:          0.5,
		DefaultDistance: 10,
		MinNear:         0.01,
		NearFactor:      0.01,
		FarFactor:       100,
		LightRange:      10,
	}
}

func (o Options) validate() error {
	if o.Factor <= 0 || math32.IsNaN(o.Factor) {
		return errors.New("framing factor must be positive")
	}
	if o.DefaultDistance <= 0 {
		return errors.New("default distance must be positive")
	}
	if o.Mode < TowardCenter || o.Mode > OffsetAngle {
		return fmt.Errorf("framing mode %d", o.Mode)
	}
	return nil
}

// Result is the computed camera placement.
type Result struct {
	Position math32.Vector3
	Target   math32.Vector3
	Distance float32
	Size     float32 // bounding diagonal
	Near     float32
	Far      float32
	Light    components.LightData

	Degenerate  bool // the volume had no size; DefaultDistance was used
	FOVFallback bool // the camera FOV was unusable; DefaultFOV was used
}

// Frame computes where cam should sit to frame bounds. Only cam.Position (the
// direction seed), cam.FOV and the clip planes are read.
func Frame(bounds gamemath.BoundingVolume, cam components.CameraData, opt Options) (Result, error) {
	if err := opt.validate(); err != nil {
		return Result{}, err
	}
	center := bounds.Center()
	size := bounds.Diagonal()
	res := Result{Target: center, Size: size}

	fov := cam.FOV
	distance, err := gamemath.DistanceForFieldOfView(size*opt.Factor, math32.DegToRad(fov))
	if errors.Is(err, gamemath.ErrInvalidFieldOfView) {
		res.FOVFallback = true
		fov = DefaultFOV
		distance, err = gamemath.DistanceForFieldOfView(size*opt.Factor, math32.DegToRad(fov))
	}
	if err != nil || math32.IsInf(distance, 0) || math32.IsNaN(distance) {
		res.Degenerate = true
		distance = opt.DefaultDistance
	}
	res.Distance = distance

	dir := direction(cam.Position, center, opt)
	res.Position = center.Add(dir.MulScalar(distance)).Add(opt.Offset)

	if res.Degenerate {
		res.Near = max(cam.Near, opt.MinNear)
		res.Far = max(cam.Far, distance*2)
		res.Light = light(center, 1, opt.LightRange)
		return res, nil
	}
	res.Near = max(opt.MinNear, size*opt.NearFactor)
	res.Far = max(distance+size, size*opt.FarFactor)
	res.Light = light(center, size, opt.LightRange)
	return res, nil
}

func direction(seed, center math32.Vector3, opt Options) math32.Vector3 {
	switch opt.Mode {
	case AwayFromCenter:
		return gamemath.DirectionBetween(center, seed)
	case OffsetAngle:
		return rotate(gamemath.DirectionBetween(seed, center), opt.Yaw, opt.Pitch)
	}
	return gamemath.DirectionBetween(seed, center)
}

// rotate turns d by yaw around +Y and raises it by pitch, keeping it off the poles.
func rotate(d math32.Vector3, yawDeg, pitchDeg float32) math32.Vector3 {
	yaw := math32.Atan2(d.X, d.Z) + math32.DegToRad(yawDeg)
	limit := math32.DegToRad(89)
	pitch := math32.Asin(math32.Clamp(d.Y, -1, 1)) + math32.DegToRad(pitchDeg)
	pitch = math32.Clamp(pitch, -limit, limit)
	c := math32.Cos(pitch)
	return math32.Vec3(c*math32.Sin(yaw), math32.Sin(pitch), c*math32.Cos(yaw))
}

// light puts the key light above and in front of the center.
func light(center math32.Vector3, size, rangeFactor float32) components.LightData {
	return components.LightData{
		Position: center.Add(math32.Vec3(2, size*2, size*1.5)),
		Target:   center,
		Range:    size * rangeFactor,
	}
}

// Apply writes the placement into cam and marks it framed.
func (r Result) Apply(cam *components.CameraData) {
	cam.Position = r.Position
	cam.Target = r.Target
	cam.Near = r.Near
	cam.Far = r.Far
	if r.FOVFallback {
		cam.FOV = DefaultFOV
	}
	cam.Framed = true
}
