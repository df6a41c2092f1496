package components

import (
	"github.com/yohamta/donburi"
)

// NodeData places an entity in the scene graph. Parent is donburi.Null for roots.
type NodeData struct {
	Name     string
	Parent   donburi.Entity
	Children []donburi.Entity
	Disposed bool
	Hidden   bool
}

var Node = donburi.NewComponentType[NodeData]()
