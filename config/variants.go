package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/automoto/flyby/tween"
	"gopkg.in/yaml.v3"
)

// Recurrence policies for effect populations.
const (
	PolicyFixedInterval = "fixed-interval"
	PolicySelfChaining  = "self-chaining"
)

// Framing modes.
const (
	FramingTowardCenter   = "toward-center"
	FramingAwayFromCenter = "away-from-center"
	FramingOffsetAngle    = "offset-angle"
)

// ErrUnknownVariant is returned when a preset name is not defined.
var ErrUnknownVariant = errors.New("unknown variant")

//go:embed variants.yaml
var builtinVariants []byte

// Variant is a complete scene preset. Only the keys present in a YAML entry
// override the defaults.
type Variant struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Scene       SceneConfig    `yaml:"scene"`
	Camera      CameraConfig   `yaml:"camera"`
	Framing     FramingConfig  `yaml:"framing"`
	Light       LightConfig    `yaml:"light"`
	Ripple      RippleConfig   `yaml:"ripple"`
	Particles   ParticleConfig `yaml:"particles"`
	Stars       StarConfig     `yaml:"stars"`
	Motion      MotionConfig   `yaml:"motion"`
}

type variantsFile struct {
	Default  string      `yaml:"default"`
	Variants []yaml.Node `yaml:"variants"`
}

// Variants lists the built-in presets in file order.
var Variants []Variant

// DefaultVariant is the preset applied when nothing else is selected.
var DefaultVariant string

// ActiveVariant is the name of the last applied preset.
var ActiveVariant string

var defaults Variant

func snapshot() Variant {
	return Variant{
		Name:      "defaults",
		Scene:     Scene,
		Camera:    Camera,
		Framing:   Framing,
		Light:     Light,
		Ripple:    Ripple,
		Particles: Particles,
		Stars:     Stars,
		Motion:    Motion,
	}
}

func (v Variant) apply() {
	Scene = v.Scene
	Camera = v.Camera
	Framing = v.Framing
	Light = v.Light
	Ripple = v.Ripple
	Particles = v.Particles
	Stars = v.Stars
	Motion = v.Motion
	ActiveVariant = v.Name
}

func loadBuiltinVariants() {
	vs, def, err := ParseVariants(builtinVariants)
	if err != nil {
		panic(fmt.Sprintf("config: built-in variants: %v", err))
	}
	Variants = vs
	DefaultVariant = def
	if err := ApplyVariant(def); err != nil {
		panic(err)
	}
}

// ParseVariants decodes a presets document. Each entry starts from the
// built-in defaults.
func ParseVariants(data []byte) ([]Variant, string, error) {
	var f variantsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse variants: %w", err)
	}
	if len(f.Variants) == 0 {
		return nil, "", errors.New("no variants defined")
	}

	seen := make(map[string]bool, len(f.Variants))
	out := make([]Variant, 0, len(f.Variants))
	for i := range f.Variants {
		v := defaults
		v.Name = ""
		if err := f.Variants[i].Decode(&v); err != nil {
			return nil, "", fmt.Errorf("variant %d: %w", i, err)
		}
		if v.Name == "" {
			return nil, "", fmt.Errorf("variant %d: missing name", i)
		}
		if seen[v.Name] {
			return nil, "", fmt.Errorf("variant %q defined twice", v.Name)
		}
		if err := v.Validate(); err != nil {
			return nil, "", fmt.Errorf("variant %q: %w", v.Name, err)
		}
		seen[v.Name] = true
		out = append(out, v)
	}

	def := f.Default
	if def == "" {
		def = out[0].Name
	}
	if !seen[def] {
		return nil, "", fmt.Errorf("default %q: %w", def, ErrUnknownVariant)
	}
	return out, def, nil
}

// Validate rejects presets the scene cannot run with.
func (v Variant) Validate() error {
	if v.Scene.Model == "" {
		return errors.New("scene.model is empty")
	}
	if v.Camera.FOV <= 0 || v.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov %v out of range (0,180)", v.Camera.FOV)
	}
	switch v.Framing.Mode {
	case FramingTowardCenter, FramingAwayFromCenter, FramingOffsetAngle:
	default:
		return fmt.Errorf("framing.mode %q unknown", v.Framing.Mode)
	}
	if v.Framing.Factor <= 0 {
		return errors.New("framing.factor must be positive")
	}
	switch v.Ripple.Policy {
	case PolicyFixedInterval:
		if v.Ripple.Interval <= 0 {
			return errors.New("ripple.interval must be positive")
		}
	case PolicySelfChaining:
		if v.Ripple.Gap < 0 {
			return errors.New("ripple.gap is negative")
		}
	default:
		return fmt.Errorf("ripple.policy %q unknown", v.Ripple.Policy)
	}
	if v.Ripple.Duration <= 0 {
		return errors.New("ripple.duration must be positive")
	}
	if v.Particles.Count < 0 || v.Stars.Count < 0 {
		return errors.New("negative effect count")
	}
	if v.Stars.DurationMin <= 0 || v.Stars.DurationMax < v.Stars.DurationMin {
		return errors.New("stars duration range is invalid")
	}
	if v.Stars.FadeIn < 0 || v.Stars.FadeOut < 0 || v.Stars.FadeIn+v.Stars.FadeOut > v.Stars.DurationMin {
		return fmt.Errorf("stars fades of %v+%v exceed duration_min %v",
			v.Stars.FadeIn, v.Stars.FadeOut, v.Stars.DurationMin)
	}
	for _, name := range []string{
		v.Ripple.Easing, v.Stars.Easing, v.Stars.FadeEasing,
		v.Motion.PointerEasing, v.Motion.SwayEasing,
		v.Motion.Clouds.Easing, v.Motion.Stars.Easing,
	} {
		if _, err := tween.ParseEasing(name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyVariant overwrites the scene globals with the named preset.
func ApplyVariant(name string) error {
	for _, v := range Variants {
		if v.Name == name {
			v.apply()
			return nil
		}
	}
	return fmt.Errorf("%q: %w", name, ErrUnknownVariant)
}

// LoadVariants replaces the presets with the ones defined in data. The
// active preset is re-applied from the new set when it still exists,
// otherwise the new default is applied. On error nothing changes.
func LoadVariants(data []byte) error {
	vs, def, err := ParseVariants(data)
	if err != nil {
		return err
	}
	active := ActiveVariant
	Variants = vs
	DefaultVariant = def
	if err := ApplyVariant(active); err != nil {
		return ApplyVariant(def)
	}
	return nil
}

// NextVariant returns the preset following name, wrapping around.
func NextVariant(name string) string {
	for i, v := range Variants {
		if v.Name == name {
			return Variants[(i+1)%len(Variants)].Name
		}
	}
	if len(Variants) > 0 {
		return Variants[0].Name
	}
	return name
}

// VariantNames lists the built-in preset names.
func VariantNames() []string {
	names := make([]string, len(Variants))
	for i, v := range Variants {
		names[i] = v.Name
	}
	return names
}

// HexColor is an RGBA color written as "#rrggbb" or "#rrggbbaa" in YAML.
type HexColor color.RGBA

// Color returns c as a color.RGBA.
func (c HexColor) Color() color.RGBA { return color.RGBA(c) }

func (c HexColor) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (HexColor, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return HexColor{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return HexColor{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		n = n<<8 | 0xff
	}
	return HexColor{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *HexColor) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
