package components

import (
	cfg "github.com/automoto/flyby/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores this frame's normalized pointer and scroll signals plus
// the current and previous pressed state of every keyboard action.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool

	// Pointer in [-1,1] on both axes, y up.
	PointerX, PointerY float32
	PointerMoved       bool

	// Scroll position in pixels over a virtual page, and its [0,1] progress.
	ScrollPos      float32
	ScrollProgress float32
	ScrollChanged  bool

	// Viewport in pixels; zero means the configured window size.
	ViewportW, ViewportH int

	rawX, rawY int
	hasRaw     bool
}

// SetRawPointer records a pixel position and reports whether it changed.
func (in *InputData) SetRawPointer(x, y int) bool {
	if in.hasRaw && in.rawX == x && in.rawY == y {
		return false
	}
	in.rawX, in.rawY, in.hasRaw = x, y, true
	return true
}

var Input = donburi.NewComponentType[InputData]()
