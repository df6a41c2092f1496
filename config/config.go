package config

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// SceneConfig names the asset and backdrop of the active variant.
type SceneConfig struct {
	Model      string   `yaml:"model"`
	Background HexColor `yaml:"background"`
}

// CameraConfig holds the perspective camera defaults before framing.
type CameraConfig struct {
	FOV      float32        `yaml:"fov"` // vertical, degrees
	Near     float32        `yaml:"near"`
	Far      float32        `yaml:"far"`
	Position math32.Vector3 `yaml:"position"`
	Follow   bool           `yaml:"follow"`
}

// FramingConfig controls how tightly the loaded model fills the view.
type FramingConfig struct {
	Factor          float32        `yaml:"factor"` // fraction of the bounding diagonal used as half extent
	Mode            string         `yaml:"mode"`   // toward-center, away-from-center, offset-angle
	OffsetYaw       float32        `yaml:"offset_yaw"`
	OffsetPitch     float32        `yaml:"offset_pitch"`
	Offset          math32.Vector3 `yaml:"offset"`
	DefaultDistance float32        `yaml:"default_distance"`
	NearFactor      float32        `yaml:"near_factor"`
	FarFactor       float32        `yaml:"far_factor"`
	MinNear         float32        `yaml:"min_near"`
	ModelRotation   math32.Vector3 `yaml:"model_rotation"` // degrees, applied to the model wrapper
}

// LightConfig describes the key light placed relative to the model bounds.
type LightConfig struct {
	Color       HexColor `yaml:"color"`
	Intensity   float32  `yaml:"intensity"`
	Ambient     float32  `yaml:"ambient"`
	RangeFactor float32  `yaml:"range_factor"`
}

// RippleConfig describes the expanding ground rings.
type RippleConfig struct {
	Policy      string   `yaml:"policy"`   // fixed-interval or self-chaining
	Interval    float64  `yaml:"interval"` // fixed-interval period, seconds
	Gap         float64  `yaml:"gap"`      // self-chaining delay after retirement
	Duration    float64  `yaml:"duration"`
	InnerRadius float32  `yaml:"inner_radius"`
	OuterRadius float32  `yaml:"outer_radius"`
	ScaleFrom   float32  `yaml:"scale_from"`
	ScaleTo     float32  `yaml:"scale_to"`
	OpacityFrom float32  `yaml:"opacity_from"`
	OpacityTo   float32  `yaml:"opacity_to"`
	Easing      string   `yaml:"easing"`
	GroupY      float32  `yaml:"group_y"` // fixed offset of the ripple plane, not derived from bounds
	Color       HexColor `yaml:"color"`
}

// ParticleConfig describes the ambient drifting point field.
type ParticleConfig struct {
	Count     int            `yaml:"count"`
	Spread    math32.Vector3 `yaml:"spread"` // x and z centered on origin, y from 0 up
	DriftXZ   float32        `yaml:"drift_xz"`
	DriftY    float32        `yaml:"drift_y"`
	LifeMin   float32        `yaml:"life_min"`
	LifeMax   float32        `yaml:"life_max"`
	Size      float32        `yaml:"size"`
	Opacity   float32        `yaml:"opacity"`
	Color     HexColor       `yaml:"color"`
	FadeShare float32        `yaml:"fade_share"` // share of a lifetime spent fading in and out
}

// StarConfig describes the screen-space falling elements.
type StarConfig struct {
	Count       int      `yaml:"count"`
	LargeChance float64  `yaml:"large_chance"`
	DurationMin float64  `yaml:"duration_min"`
	DurationMax float64  `yaml:"duration_max"`
	DelayMax    float64  `yaml:"delay_max"`
	FadeIn      float64  `yaml:"fade_in"`
	FadeOut     float64  `yaml:"fade_out"`
	Peak        float32  `yaml:"peak"`
	StartY      float32  `yaml:"start_y"` // screen fraction
	EndY        float32  `yaml:"end_y"`
	Easing      string   `yaml:"easing"`
	FadeEasing  string   `yaml:"fade_easing"`
	Size        float32  `yaml:"size"`
	LargeSize   float32  `yaml:"large_size"`
	Color       HexColor `yaml:"color"`
}

// LayerMotionConfig maps the normalized pointer to a 2D layer offset in pixels.
type LayerMotionConfig struct {
	ScaleX   float32 `yaml:"scale_x"`
	ScaleY   float32 `yaml:"scale_y"`
	Duration float32 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
}

// MotionConfig describes pointer tilt, scroll scrub and idle sway.
type MotionConfig struct {
	TiltX           float32        `yaml:"tilt_x"` // radians per unit of normalized pointer y
	TiltY           float32        `yaml:"tilt_y"` // radians per unit of normalized pointer x
	PointerDuration float32        `yaml:"pointer_duration"`
	PointerEasing   string         `yaml:"pointer_easing"`
	ScrollDelta     math32.Vector3 `yaml:"scroll_delta"` // radians added at full scroll
	PageHeights     float32        `yaml:"page_heights"` // virtual page length in viewport heights
	WheelStep       float32        `yaml:"wheel_step"`   // pixels per wheel notch
	SwayAngle       float32        `yaml:"sway_angle"`   // degrees
	SwayDuration    float32        `yaml:"sway_duration"`
	SwayEasing      string         `yaml:"sway_easing"`

	Clouds LayerMotionConfig `yaml:"clouds"`
	Stars  LayerMotionConfig `yaml:"stars"`
}

// LoadingConfig contains loading overlay configuration values
type LoadingConfig struct {
	DecorationMap string
	BarWidth      float32
	BarHeight     float32
	BarBgColor    color.RGBA
	BarFgColor    color.RGBA
	FailColor     color.RGBA
	TextColor     color.RGBA
	OverlayColor  color.RGBA
}

// DebugConfig contains debug command-line options
type DebugConfig struct {
	Enabled bool
}

// Global configuration instances
var C *Config
var Scene SceneConfig
var Camera CameraConfig
var Framing FramingConfig
var Light LightConfig
var Ripple RippleConfig
var Particles ParticleConfig
var Stars StarConfig
var Motion MotionConfig
var Loading LoadingConfig
var Debug DebugConfig

// Default is the renderer layer used by every drawing system.
const Default = 0

func init() {
	C = &Config{
		Width:  1280,
		Height: 720,
		Title:  "flyby",
	}

	Scene = SceneConfig{
		Model:      "models/jet.gltf",
		Background: HexColor{R: 5, G: 8, B: 20, A: 255},
	}

	Camera = CameraConfig{
		FOV:      45,
		Near:     0.1,
		Far:      10000,
		Position: math32.Vec3(0, -1, -10), // direction seed for framing
	}

	Framing = FramingConfig{
		Factor:          0.5,
		Mode:            "toward-center",
		DefaultDistance: 10,
		NearFactor:      0.01,
		FarFactor:       100,
		MinNear:         0.01,
		ModelRotation:   math32.Vec3(0, 56.16, 8.76),
	}

	Light = LightConfig{
		Color:       HexColor{R: 255, G: 255, B: 255, A: 255},
		Intensity:   150,
		Ambient:     0.5,
		RangeFactor: 10,
	}

	Ripple = RippleConfig{
		Policy:      PolicyFixedInterval,
		Interval:    5,
		Duration:    5,
		InnerRadius: 4,
		OuterRadius: 4.5,
		ScaleFrom:   0,
		ScaleTo:     3,
		OpacityFrom: 0.5,
		OpacityTo:   0,
		Easing:      "power1.out",
		GroupY:      0.5,
		Color:       HexColor{R: 255, G: 255, B: 255, A: 255},
	}

	Particles = ParticleConfig{
		Count:     1000,
		Spread:    math32.Vec3(100, 50, 100),
		DriftXZ:   0.6,
		DriftY:    0.6,
		LifeMin:   8,
		LifeMax:   16,
		Size:      0.15,
		Opacity:   0.6,
		Color:     HexColor{R: 0x88, G: 0xcc, B: 0xff, A: 255},
		FadeShare: 0.2,
	}

	Stars = StarConfig{
		Count:       50,
		LargeChance: 0.3,
		DurationMin: 8,
		DurationMax: 15,
		DelayMax:    5,
		FadeIn:      0.5,
		FadeOut:     0.5,
		Peak:        0.9,
		StartY:      -0.01,
		EndY:        1.1,
		Easing:      "none",
		FadeEasing:  "power1.inOut",
		Size:        1.5,
		LargeSize:   3,
		Color:       HexColor{R: 255, G: 255, B: 255, A: 255},
	}

	Motion = MotionConfig{
		TiltX:           0.025, // 0.1 tilt damped by 0.25
		TiltY:           0.075, // 0.3 tilt damped by 0.25
		PointerDuration: 1,
		PointerEasing:   "power2.out",
		ScrollDelta:     math32.Vec3(-0.1, -0.8, 0),
		PageHeights:     3,
		WheelStep:       60,
		SwayAngle:       8.76,
		SwayDuration:    2.5,
		SwayEasing:      "sine.inOut",
		Clouds: LayerMotionConfig{
			ScaleX: 30, ScaleY: -30, Duration: 1.5, Easing: "power2.out",
		},
		Stars: LayerMotionConfig{
			ScaleX: 30, ScaleY: -20, Duration: 1.5, Easing: "power2.out",
		},
	}

	Loading = LoadingConfig{
		DecorationMap: "maps/clouds.tmx",
		BarWidth:      240,
		BarHeight:     6,
		BarBgColor:    color.RGBA{R: 40, G: 40, B: 60, A: 255},
		BarFgColor:    color.RGBA{R: 136, G: 204, B: 255, A: 255},
		FailColor:     color.RGBA{R: 255, G: 100, B: 100, A: 255},
		TextColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		OverlayColor:  color.RGBA{R: 5, G: 8, B: 20, A: 230},
	}

	Debug = DebugConfig{
		Enabled: false,
	}

	defaults = snapshot()
	loadBuiltinVariants()
}
