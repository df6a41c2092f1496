package systems

import (
	"math"

	"cogentcore.org/core/math32"
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/motion"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slices for device IDs to avoid allocations
var (
	gamepadIDs []ebiten.GamepadID
	touchIDs   []ebiten.TouchID
)

// UpdateInput polls keys, gamepads, the cursor, touches and the wheel into
// the Input component. Must run BEFORE any system that reads it.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
				}
			}
		}
	}

	width, height := viewport(input)

	px, py := ebiten.CursorPosition()
	touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])
	if len(touchIDs) > 0 {
		px, py = ebiten.TouchPosition(touchIDs[0])
	}
	input.PointerMoved = false
	if input.SetRawPointer(px, py) {
		input.PointerX, input.PointerY = motion.NormalizePointer(float32(px), float32(py), width, height)
		input.PointerMoved = true
	}
	if x, y, ok := stickPointer(gamepadIDs); ok {
		input.PointerX, input.PointerY = x, y
		input.PointerMoved = true
	}

	_, wheelY := ebiten.Wheel()
	applyScroll(input, wheelY, height)
}

// stickPointer reads the right stick of the first gamepad pushed past the
// deadzone as a normalized pointer.
func stickPointer(gamepads []ebiten.GamepadID) (x, y float32, ok bool) {
	deadzone := cfg.Input.AnalogDeadzone
	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(h, v) < deadzone {
			continue
		}
		// stick y grows downward
		return float32(h), float32(-v), true
	}
	return 0, 0, false
}

// applyScroll moves the virtual page by the wheel and the scroll actions and
// recomputes the scroll progress for a viewport viewportH pixels tall.
func applyScroll(input *components.InputData, wheelY float64, viewportH float32) {
	span := max((cfg.Motion.PageHeights-1)*viewportH, 0)
	pos := input.ScrollPos

	// wheel up scrolls toward the top of the page
	pos -= float32(wheelY) * cfg.Motion.WheelStep
	if input.Current[cfg.ActionScrollUp] {
		pos -= cfg.Input.KeyScrollSpeed
	}
	if input.Current[cfg.ActionScrollDown] {
		pos += cfg.Input.KeyScrollSpeed
	}
	if GetAction(input, cfg.ActionScrollHome).JustPressed {
		pos = 0
	}
	if GetAction(input, cfg.ActionScrollEnd).JustPressed {
		pos = span
	}
	pos = math32.Clamp(pos, 0, span)

	input.ScrollChanged = pos != input.ScrollPos
	input.ScrollPos = pos
	input.ScrollProgress = motion.ScrollProgress(pos, viewportH, cfg.Motion.PageHeights)
}

// SetViewport records the screen size used to normalize the pointer and size
// the virtual scroll page.
func SetViewport(ecs *ecs.ECS, width, height int) {
	input := getOrCreateInput(ecs)
	input.ViewportW, input.ViewportH = width, height
}

func viewport(input *components.InputData) (width, height float32) {
	if input.ViewportW <= 0 || input.ViewportH <= 0 {
		return float32(cfg.C.Width), float32(cfg.C.Height)
	}
	return float32(input.ViewportW), float32(input.ViewportH)
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
		// Zero-value InputData is correct (all bools false)
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}
