package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical viewer action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionToggleDebug
	ActionToggleFollow
	ActionNextVariant
	ActionScrollUp
	ActionScrollDown
	ActionScrollHome
	ActionScrollEnd
	ActionQuit
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Pixels scrolled per frame while a scroll key is held
	KeyScrollSpeed float32
	// Deadzone for the right stick when it drives the pointer (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		KeyScrollSpeed: 12,
		AnalogDeadzone: 0.2,
		Bindings: map[ActionID]InputBinding{
			ActionToggleDebug: {
				Keys: []ebiten.Key{ebiten.KeyF3},
			},
			ActionToggleFollow: {
				Keys: []ebiten.Key{ebiten.KeyF},
				// Y / Triangle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightTop,
				},
			},
			ActionNextVariant: {
				Keys: []ebiten.Key{ebiten.KeyV},
				// X / Square button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightLeft,
				},
			},
			ActionScrollUp: {
				Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyPageUp, ebiten.KeyW},
				// D-pad Up
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftTop,
				},
			},
			ActionScrollDown: {
				Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyPageDown, ebiten.KeyS, ebiten.KeySpace},
				// D-pad Down
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftBottom,
				},
			},
			ActionScrollHome: {
				Keys: []ebiten.Key{ebiten.KeyHome},
			},
			ActionScrollEnd: {
				Keys: []ebiten.Key{ebiten.KeyEnd},
			},
			ActionQuit: {
				Keys: []ebiten.Key{ebiten.KeyEscape},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterRight,
				},
			},
		},
	}
}
