package scenegraph

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func buildTree(t *testing.T) (donburi.World, donburi.Entity, donburi.Entity, donburi.Entity) {
	t.Helper()
	w := donburi.NewWorld()
	root := NewNode(w, "scene", donburi.Null)
	drag := NewNode(w, "drag-wrapper", root)
	model := NewNode(w, "model-wrapper", drag)
	require.NotEqual(t, donburi.Null, model)
	return w, root, drag, model
}

func TestAttachAndFind(t *testing.T) {
	w, root, drag, model := buildTree(t)

	assert.Equal(t, []donburi.Entity{drag}, Children(w, root))
	assert.Equal(t, drag, Parent(w, model))

	found, ok := Find(w, root, "model-wrapper")
	assert.True(t, ok)
	assert.Equal(t, model, found)

	_, ok = Find(w, root, "missing")
	assert.False(t, ok)
	assert.Equal(t, 3, Count(w, root))
}

func TestReattachMovesNode(t *testing.T) {
	w, root, drag, model := buildTree(t)

	require.NoError(t, Attach(w, model, root))
	assert.Empty(t, Children(w, drag))
	assert.ElementsMatch(t, []donburi.Entity{drag, model}, Children(w, root))
}

func TestAttachRejectsCycle(t *testing.T) {
	w, root, _, model := buildTree(t)
	assert.ErrorIs(t, Attach(w, root, model), ErrCycle)
	assert.ErrorIs(t, Attach(w, model, model), ErrCycle)
}

func TestDisposeRemovesSubtreeOnce(t *testing.T) {
	w, root, drag, model := buildTree(t)
	leaf := NewNode(w, "leaf", model)

	assert.Equal(t, 3, Dispose(w, drag))
	assert.False(t, Alive(w, drag))
	assert.False(t, Alive(w, model))
	assert.False(t, Alive(w, leaf))
	assert.Empty(t, Children(w, root))

	assert.Equal(t, 0, Dispose(w, drag), "second dispose is a no-op")
	Detach(w, model)
}

func TestAttachToDisposedParent(t *testing.T) {
	w, _, drag, _ := buildTree(t)
	Dispose(w, drag)

	assert.Equal(t, donburi.Null, NewNode(w, "late", drag))
	orphan := NewNode(w, "orphan", donburi.Null)
	assert.ErrorIs(t, Attach(w, orphan, drag), ErrDisposed)
}

func TestVisibleFollowsAncestors(t *testing.T) {
	w, _, drag, model := buildTree(t)
	assert.True(t, Visible(w, model))

	SetHidden(w, drag, true)
	assert.False(t, Visible(w, model))

	SetHidden(w, drag, false)
	assert.True(t, Visible(w, model))
}

func TestWorldPointComposesParents(t *testing.T) {
	w, root, drag, model := buildTree(t)
	Local(w, root).Position = math32.Vec3(0, 1, 0)
	Local(w, drag).Scale = math32.Vec3(2, 2, 2)
	Local(w, model).Position = math32.Vec3(1, 0, 0)

	p := WorldPoint(w, model, math32.Vec3(1, 0, 0))
	assert.InDelta(t, 4, p.X, 1e-6)
	assert.InDelta(t, 1, p.Y, 1e-6)

	pts := []math32.Vector3{math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 0)}
	WorldPoints(w, model, pts)
	assert.InDelta(t, 4, pts[0].X, 1e-6)
	assert.InDelta(t, 2, pts[1].X, 1e-6)
	assert.InDelta(t, 1, pts[1].Y, 1e-6)

	// stopping below drag skips its scale and the root offset
	in := []math32.Vector3{math32.Vec3(1, 0, 0)}
	PointsIn(w, model, drag, in)
	assert.Equal(t, math32.Vec3(2, 0, 0), in[0])
}

func TestWalkDepth(t *testing.T) {
	w, root, _, _ := buildTree(t)
	depths := map[string]int{}
	Walk(w, root, func(_ donburi.Entity, n *components.NodeData, depth int) bool {
		depths[n.Name] = depth
		return true
	})
	assert.Equal(t, map[string]int{"scene": 0, "drag-wrapper": 1, "model-wrapper": 2}, depths)
}
