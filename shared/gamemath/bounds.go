package gamemath

import (
	"errors"

	"cogentcore.org/core/math32"
)

var (
	// ErrDegenerateGeometry is returned when a volume or extent has no size.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidFieldOfView is returned when a field of view is outside (0, π).
	ErrInvalidFieldOfView = errors.New("field of view must be in (0, pi)")
)

// Part is one drawable piece of an asset, already resolved to world-space corners.
type Part struct {
	Name    string
	Corners []math32.Vector3
}

// BoundingVolume is an axis-aligned box over a set of points.
type BoundingVolume struct {
	Min math32.Vector3
	Max math32.Vector3
}

// NewBoundingVolume builds a volume from explicit corners.
func NewBoundingVolume(min, max math32.Vector3) BoundingVolume {
	return BoundingVolume{Min: min, Max: max}
}

// ComputeBoundingVolume unions the extents of every part.
// Zero parts, or parts without corners, yield ErrDegenerateGeometry and a zero volume.
func ComputeBoundingVolume(parts []Part) (BoundingVolume, error) {
	box := math32.B3Empty()
	for _, p := range parts {
		box.ExpandByPoints(p.Corners)
	}
	if box.IsEmpty() {
		return BoundingVolume{}, ErrDegenerateGeometry
	}
	return BoundingVolume{Min: box.Min, Max: box.Max}, nil
}

// Center returns the midpoint of the volume.
func (b BoundingVolume) Center() math32.Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size returns the per-axis extents.
func (b BoundingVolume) Size() math32.Vector3 {
	return b.Max.Sub(b.Min)
}

// Diagonal returns the Euclidean length of the box diagonal.
func (b BoundingVolume) Diagonal() float32 {
	return b.Size().Length()
}

// IsDegenerate reports whether the volume has zero diagonal.
func (b BoundingVolume) IsDegenerate() bool {
	return b.Diagonal() <= 0
}

// Corners returns the eight corners of the box.
func (b BoundingVolume) Corners() [8]math32.Vector3 {
	lo, hi := b.Min, b.Max
	return [8]math32.Vector3{
		math32.Vec3(lo.X, lo.Y, lo.Z),
		math32.Vec3(hi.X, lo.Y, lo.Z),
		math32.Vec3(hi.X, hi.Y, lo.Z),
		math32.Vec3(lo.X, hi.Y, lo.Z),
		math32.Vec3(lo.X, lo.Y, hi.Z),
		math32.Vec3(hi.X, lo.Y, hi.Z),
		math32.Vec3(hi.X, hi.Y, hi.Z),
		math32.Vec3(lo.X, hi.Y, hi.Z),
	}
}

// BoxEdges lists corner index pairs for the twelve edges returned by Corners.
var BoxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxFaces lists the six faces of Corners, each wound counter-clockwise when
// seen from outside the box.
var BoxFaces = [6][4]int{
	{0, 3, 2, 1}, // -z
	{4, 5, 6, 7}, // +z
	{0, 4, 7, 3}, // -x
	{1, 2, 6, 5}, // +x
	{0, 1, 5, 4}, // -y
	{3, 7, 6, 2}, // +y
}
