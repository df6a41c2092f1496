package gamemath

import (
	"cogentcore.org/core/math32"
)

// FallbackAxis is returned by DirectionBetween when both points coincide.
var FallbackAxis = math32.Vec3(0, 0, 1)

// DistanceForFieldOfView returns the distance at which an object with the
// given projected half extent exactly fills a vertical field of view (radians).
func DistanceForFieldOfView(halfExtent, verticalFOV float32) (float32, error) {
	if verticalFOV <= 0 || verticalFOV >= math32.Pi || math32.IsNaN(verticalFOV) {
		return 0, ErrInvalidFieldOfView
	}
	if halfExtent <= 0 || math32.IsNaN(halfExtent) || math32.IsInf(halfExtent, 0) {
		return 0, ErrDegenerateGeometry
	}
	return halfExtent / math32.Tan(verticalFOV/2), nil
}

// DirectionBetween returns the normalized direction from a to b.
func DirectionBetween(a, b math32.Vector3) math32.Vector3 {
	d := b.Sub(a)
	if d.Length() == 0 {
		return FallbackAxis
	}
	return d.Normal()
}

// Transform is a scale, XYZ Euler rotation and translation, applied in that order.
type Transform struct {
	Position math32.Vector3
	Rotation math32.Vector3
	Scale    math32.Vector3
}

// IdentityTransform has unit scale and no rotation or translation.
func IdentityTransform() Transform {
	return Transform{Scale: math32.Vec3(1, 1, 1)}
}

// Apply maps a local point into the parent space.
func (t Transform) Apply(p math32.Vector3) math32.Vector3 {
	p = p.Mul(t.Scale)
	if t.Rotation != (math32.Vector3{}) {
		p = p.MulQuat(math32.NewQuatEuler(t.Rotation))
	}
	return p.Add(t.Position)
}

// Projector maps world points to normalized device coordinates for a perspective camera.
type Projector struct {
	eye      math32.Vector3
	forward  math32.Vector3
	right    math32.Vector3
	up       math32.Vector3
	tanHalf  float32
	aspect   float32
	near     float32
	far      float32
	hasBasis bool
}

// NewProjector builds a view basis looking from eye toward target. fovDeg is vertical.
func NewProjector(eye, target, up math32.Vector3, fovDeg, aspect, near, far float32) Projector {
	forward := DirectionBetween(eye, target)
	if up == (math32.Vector3{}) {
		up = math32.Vec3(0, 1, 0)
	}
	right := forward.Cross(up)
	if right.Length() == 0 {
		// looking straight along up; pick any perpendicular
		right = forward.Cross(math32.Vec3(1, 0, 0))
	}
	right = right.Normal()
	if aspect <= 0 {
		aspect = 1
	}
	return Projector{
		eye:      eye,
		forward:  forward,
		right:    right,
		up:       right.Cross(forward).Normal(),
		tanHalf:  math32.Tan(math32.DegToRad(fovDeg) / 2),
		aspect:   aspect,
		near:     near,
		far:      far,
		hasBasis: true,
	}
}

// Project returns normalized device coordinates in [-1,1] (y up) and view depth.
// ok is false when the point lies outside the near/far range.
func (p Projector) Project(pt math32.Vector3) (x, y, depth float32, ok bool) {
	if !p.hasBasis || p.tanHalf <= 0 {
		return 0, 0, 0, false
	}
	d := pt.Sub(p.eye)
	depth = d.Dot(p.forward)
	if depth < p.near || depth > p.far {
		return 0, 0, depth, false
	}
	x = d.Dot(p.right) / (depth * p.tanHalf * p.aspect)
	y = d.Dot(p.up) / (depth * p.tanHalf)
	return x, y, depth, true
}

// ToScreen converts normalized device coordinates to pixel coordinates.
func ToScreen(x, y float32, width, height int) (float32, float32) {
	return (x + 1) * 0.5 * float32(width), (1 - y) * 0.5 * float32(height)
}

// EulerFromQuat converts a unit quaternion to XYZ Euler angles in radians.
func EulerFromQuat(x, y, z, w float32) math32.Vector3 {
	m11 := 1 - 2*(y*y+z*z)
	m12 := 2 * (x*y - z*w)
	m13 := 2 * (x*z + y*w)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - x*w)
	m32 := 2 * (y*z + x*w)
	m33 := 1 - 2*(x*x+y*y)

	var e math32.Vector3
	e.Y = math32.Asin(math32.Clamp(m13, -1, 1))
	if math32.Abs(m13) < 0.9999999 {
		e.X = math32.Atan2(-m23, m33)
		e.Z = math32.Atan2(-m12, m11)
	} else {
		e.X = math32.Atan2(m32, m22)
	}
	return e
}
