// Package scenegraph links donburi entities into a parent/child tree of
// named, transformable nodes.
package scenegraph

import (
	"errors"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/shared/gamemath"
	"github.com/yohamta/donburi"
)

// ErrDisposed is returned when attaching to or from a node that no longer exists.
var ErrDisposed = errors.New("scene node disposed")

// ErrCycle is returned when a node would become its own ancestor.
var ErrCycle = errors.New("scene graph cycle")

// NewNode creates a node with an identity transform under parent. Pass
// donburi.Null to create a root. Extra component types are added to the entity.
func NewNode(w donburi.World, name string, parent donburi.Entity, extra ...donburi.IComponentType) donburi.Entity {
	cs := append([]donburi.IComponentType{components.Node, components.Transform}, extra...)
	e := w.Create(cs...)
	entry := w.Entry(e)
	components.Node.SetValue(entry, components.NodeData{Name: name, Parent: donburi.Null})
	components.Transform.SetValue(entry, components.TransformData{Transform: gamemath.IdentityTransform()})
	if parent != donburi.Null {
		// a fresh node cannot form a cycle, only a dead parent can fail
		if err := Attach(w, e, parent); err != nil {
			components.Node.Get(entry).Disposed = true
			w.Remove(e)
			return donburi.Null
		}
	}
	return e
}

func node(w donburi.World, e donburi.Entity) *components.NodeData {
	if e == donburi.Null || !w.Valid(e) {
		return nil
	}
	entry := w.Entry(e)
	if !entry.HasComponent(components.Node) {
		return nil
	}
	n := components.Node.Get(entry)
	if n.Disposed {
		return nil
	}
	return n
}

// Alive reports whether e is a live scene node.
func Alive(w donburi.World, e donburi.Entity) bool {
	return node(w, e) != nil
}

// Parent returns the parent of e, or donburi.Null.
func Parent(w donburi.World, e donburi.Entity) donburi.Entity {
	n := node(w, e)
	if n == nil {
		return donburi.Null
	}
	return n.Parent
}

// Children returns a copy of e's child list.
func Children(w donburi.World, e donburi.Entity) []donburi.Entity {
	n := node(w, e)
	if n == nil {
		return nil
	}
	return append([]donburi.Entity(nil), n.Children...)
}

// Attach moves child under parent, detaching it from any previous parent.
func Attach(w donburi.World, child, parent donburi.Entity) error {
	c := node(w, child)
	p := node(w, parent)
	if c == nil || p == nil {
		return ErrDisposed
	}
	for a := parent; a != donburi.Null; a = Parent(w, a) {
		if a == child {
			return ErrCycle
		}
	}
	Detach(w, child)
	c.Parent = parent
	p.Children = append(p.Children, child)
	return nil
}

// Detach unlinks e from its parent. Detaching a root or a dead node is a no-op.
func Detach(w donburi.World, e donburi.Entity) {
	c := node(w, e)
	if c == nil || c.Parent == donburi.Null {
		return
	}
	if p := node(w, c.Parent); p != nil {
		for i, ch := range p.Children {
			if ch == e {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	c.Parent = donburi.Null
}

// Dispose detaches e and removes it and its whole subtree from the world.
// It returns the number of entities removed; disposing twice removes nothing.
func Dispose(w donburi.World, e donburi.Entity) int {
	n := node(w, e)
	if n == nil {
		return 0
	}
	Detach(w, e)
	return dispose(w, e)
}

func dispose(w donburi.World, e donburi.Entity) int {
	n := node(w, e)
	if n == nil {
		return 0
	}
	// removals move component storage, so n is not touched after the loop
	n.Disposed = true
	children := n.Children
	n.Children = nil
	removed := 0
	for _, ch := range children {
		removed += dispose(w, ch)
	}
	w.Remove(e)
	return removed + 1
}

// SetHidden toggles drawing of e and its subtree.
func SetHidden(w donburi.World, e donburi.Entity, hidden bool) {
	if n := node(w, e); n != nil {
		n.Hidden = hidden
	}
}

// Visible reports whether e and all its ancestors are alive and not hidden.
func Visible(w donburi.World, e donburi.Entity) bool {
	for a := e; a != donburi.Null; {
		n := node(w, a)
		if n == nil || n.Hidden {
			return false
		}
		a = n.Parent
	}
	return true
}

// Find returns the first node named name in the subtree of root, depth first.
func Find(w donburi.World, root donburi.Entity, name string) (donburi.Entity, bool) {
	found := donburi.Null
	Walk(w, root, func(e donburi.Entity, n *components.NodeData, _ int) bool {
		if n.Name == name {
			found = e
			return false
		}
		return true
	})
	return found, found != donburi.Null
}

// Walk visits root and its descendants depth first. Returning false from fn
// stops the walk. fn must not dispose nodes.
func Walk(w donburi.World, root donburi.Entity, fn func(e donburi.Entity, n *components.NodeData, depth int) bool) {
	walk(w, root, 0, fn)
}

func walk(w donburi.World, e donburi.Entity, depth int, fn func(donburi.Entity, *components.NodeData, int) bool) bool {
	n := node(w, e)
	if n == nil {
		return true
	}
	if !fn(e, n, depth) {
		return false
	}
	if n = node(w, e); n == nil {
		return true
	}
	for _, ch := range append([]donburi.Entity(nil), n.Children...) {
		if !walk(w, ch, depth+1, fn) {
			return false
		}
	}
	return true
}

// Local returns the local transform of e, or nil for a dead node.
func Local(w donburi.World, e donburi.Entity) *gamemath.Transform {
	if node(w, e) == nil {
		return nil
	}
	entry := w.Entry(e)
	if !entry.HasComponent(components.Transform) {
		return nil
	}
	return &components.Transform.Get(entry).Transform
}

// WorldPoint maps a point in e's local space to world space by applying
// every transform from e up to the root.
func WorldPoint(w donburi.World, e donburi.Entity, p math32.Vector3) math32.Vector3 {
	for a := e; a != donburi.Null; a = Parent(w, a) {
		if t := Local(w, a); t != nil {
			p = t.Apply(p)
		}
	}
	return p
}

// WorldPoints maps every point of pts into world space in place.
func WorldPoints(w donburi.World, e donburi.Entity, pts []math32.Vector3) {
	PointsIn(w, e, donburi.Null, pts)
}

// PointsIn maps pts from e's local space into the local space of ancestor,
// in place. Transforms are applied from e up to, but not including, ancestor.
func PointsIn(w donburi.World, e, ancestor donburi.Entity, pts []math32.Vector3) {
	chain := make([]*gamemath.Transform, 0, 4)
	for a := e; a != donburi.Null && a != ancestor; a = Parent(w, a) {
		if t := Local(w, a); t != nil {
			chain = append(chain, t)
		}
	}
	for i := range pts {
		for _, t := range chain {
			pts[i] = t.Apply(pts[i])
		}
	}
}

// Count returns the number of live nodes in the subtree of root.
func Count(w donburi.World, root donburi.Entity) int {
	n := 0
	Walk(w, root, func(donburi.Entity, *components.NodeData, int) bool {
		n++
		return true
	})
	return n
}
