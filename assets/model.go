package assets

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Mesh is the local bounding box and base color of one drawable node.
type Mesh struct {
	Name     string
	Min, Max math32.Vector3
	Color    color.RGBA
}

// Corners returns the eight corners of the mesh box in node space.
func (m *Mesh) Corners() [8]math32.Vector3 {
	return gamemath.NewBoundingVolume(m.Min, m.Max).Corners()
}

// Node is one node of the model hierarchy. Children index into Model.Nodes.
type Node struct {
	Name      string
	Transform gamemath.Transform
	Mesh      *Mesh
	Children  []int
}

// Model is a parsed asset hierarchy.
type Model struct {
	Name  string
	Nodes []Node
	Roots []int
}

// MeshCount returns how many nodes carry geometry.
func (m *Model) MeshCount() int {
	n := 0
	for _, node := range m.Nodes {
		if node.Mesh != nil {
			n++
		}
	}
	return n
}

var errNoScene = errors.New("model has no nodes")

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// ParseModel decodes a glTF document. Buffers must be embedded (glb or data URIs).
func ParseModel(name string, r io.Reader) (*Model, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%s: %w", name, errNoScene)
	}

	m := &Model{Name: name, Nodes: make([]Node, len(doc.Nodes))}
	meshes := make(map[int]*Mesh)
	for i, n := range doc.Nodes {
		node := Node{
			Name:      n.Name,
			Transform: nodeTransform(n),
			Children:  append([]int(nil), n.Children...),
		}
		for _, c := range n.Children {
			if c < 0 || c >= len(doc.Nodes) {
				return nil, fmt.Errorf("%s: node %d has child %d out of range", name, i, c)
			}
		}
		if n.Mesh != nil {
			mesh, ok := meshes[*n.Mesh]
			if !ok {
				var err error
				if mesh, err = meshBounds(doc, *n.Mesh); err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				meshes[*n.Mesh] = mesh
			}
			node.Mesh = mesh
		}
		m.Nodes[i] = node
	}
	m.Roots = roots(doc)
	return m, nil
}

func roots(doc *gltf.Document) []int {
	scene := 0
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	if scene < len(doc.Scenes) && len(doc.Scenes[scene].Nodes) > 0 {
		return append([]int(nil), doc.Scenes[scene].Nodes...)
	}
	// no scene: every node nobody references is a root
	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var out []int
	for i, isChild := range child {
		if !isChild {
			out = append(out, i)
		}
	}
	return out
}

func nodeTransform(n *gltf.Node) gamemath.Transform {
	t := gamemath.IdentityTransform()
	if n.Matrix != [16]float64{} && n.Matrix != identityMatrix {
		return matrixTransform(n.Matrix)
	}
	t.Position = math32.Vec3(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))
	if n.Scale != [3]float64{} {
		t.Scale = math32.Vec3(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	}
	if q := n.Rotation; q != [4]float64{} {
		t.Rotation = gamemath.EulerFromQuat(float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3]))
	}
	return t
}

// matrixTransform decomposes a column-major TRS matrix without shear.
func matrixTransform(m [16]float64) gamemath.Transform {
	col := func(i int) math32.Vector3 {
		return math32.Vec3(float32(m[i*4]), float32(m[i*4+1]), float32(m[i*4+2]))
	}
	x, y, z := col(0), col(1), col(2)
	scale := math32.Vec3(x.Length(), y.Length(), z.Length())
	t := gamemath.Transform{Position: col(3), Scale: scale}
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return t
	}
	x, y, z = x.DivScalar(scale.X), y.DivScalar(scale.Y), z.DivScalar(scale.Z)
	// rotation matrix elements mRC, columns x y z
	m13, m23, m33 := z.X, z.Y, z.Z
	m12, m11 := y.X, x.X
	m32, m22 := y.Z, y.Y
	t.Rotation.Y = math32.Asin(math32.Clamp(m13, -1, 1))
	if math32.Abs(m13) < 0.9999999 {
		t.Rotation.X = math32.Atan2(-m23, m33)
		t.Rotation.Z = math32.Atan2(-m12, m11)
	} else {
		t.Rotation.X = math32.Atan2(m32, m22)
	}
	return t
}

func meshBounds(doc *gltf.Document, idx int) (*Mesh, error) {
	if idx < 0 || idx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	src := doc.Meshes[idx]
	box := math32.B3Empty()
	mesh := &Mesh{Name: src.Name, Color: color.RGBA{R: 200, G: 200, B: 200, A: 255}}
	for _, prim := range src.Primitives {
		acc, ok := prim.Attributes[gltf.POSITION]
		if !ok || acc < 0 || acc >= len(doc.Accessors) {
			continue
		}
		a := doc.Accessors[acc]
		if len(a.Min) >= 3 && len(a.Max) >= 3 {
			box.ExpandByPoint(math32.Vec3(float32(a.Min[0]), float32(a.Min[1]), float32(a.Min[2])))
			box.ExpandByPoint(math32.Vec3(float32(a.Max[0]), float32(a.Max[1]), float32(a.Max[2])))
		} else {
			// some exporters omit the bounds
			pos, err := modeler.ReadPosition(doc, a, nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q positions: %w", src.Name, err)
			}
			for _, p := range pos {
				box.ExpandByPoint(math32.Vec3(p[0], p[1], p[2]))
			}
		}
		if prim.Material != nil && *prim.Material < len(doc.Materials) {
			mesh.Color = materialColor(doc.Materials[*prim.Material], mesh.Color)
		}
	}
	if box.IsEmpty() {
		return nil, fmt.Errorf("mesh %q has no positions", src.Name)
	}
	mesh.Min, mesh.Max = box.Min, box.Max
	return mesh, nil
}

func materialColor(mat *gltf.Material, fallback color.RGBA) color.RGBA {
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return fallback
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	to8 := func(v float64) uint8 { return uint8(math32.Clamp(float32(v), 0, 1)*255 + 0.5) }
	return color.RGBA{R: to8(f[0]), G: to8(f[1]), B: to8(f[2]), A: to8(f[3])}
}
