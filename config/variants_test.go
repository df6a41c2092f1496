package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinVariantsLoad(t *testing.T) {
	require.Len(t, Variants, 3)
	assert.Equal(t, "azure", DefaultVariant)
	assert.Equal(t, []string{"azure", "ember", "dusk"}, VariantNames())
}

func TestVariantOverridesOnlyListedKeys(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, ApplyVariant(DefaultVariant)) })

	require.NoError(t, ApplyVariant("ember"))
	assert.Equal(t, "ember", ActiveVariant)
	assert.Equal(t, "models/drone.gltf", Scene.Model)
	assert.Equal(t, PolicySelfChaining, Ripple.Policy)
	assert.Equal(t, 600, Particles.Count)
	assert.Equal(t, HexColor{R: 0xff, G: 0xaa, B: 0x66, A: 0xff}, Particles.Color)

	// untouched keys keep the defaults
	assert.Equal(t, float32(45), Camera.FOV)
	assert.Equal(t, float32(4), Ripple.InnerRadius)
	assert.Equal(t, float32(0.15), Particles.Size)
	assert.Equal(t, float32(30), Motion.Clouds.ScaleX)
}

func TestNestedVectorOverrideKeepsOtherAxes(t *testing.T) {
	vs, _, err := ParseVariants([]byte(`
variants:
  - name: a
    camera:
      position: {y: 3}
`))
	require.NoError(t, err)
	assert.Equal(t, float32(3), vs[0].Camera.Position.Y)
	assert.Equal(t, float32(0), vs[0].Camera.Position.X)
	assert.Equal(t, float32(10000), vs[0].Camera.Far)
}

func TestApplyUnknownVariant(t *testing.T) {
	err := ApplyVariant("nope")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestNextVariantWraps(t *testing.T) {
	assert.Equal(t, "ember", NextVariant("azure"))
	assert.Equal(t, "azure", NextVariant("dusk"))
	assert.Equal(t, "azure", NextVariant("missing"))
}

func TestParseVariantsRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":       `variants: []`,
		"no name":     "variants:\n  - scene: {model: x}\n",
		"duplicate":   "variants:\n  - name: a\n  - name: a\n",
		"bad policy":  "variants:\n  - name: a\n    ripple: {policy: sometimes}\n",
		"bad easing":  "variants:\n  - name: a\n    ripple: {easing: elastic.out}\n",
		"bad mode":    "variants:\n  - name: a\n    framing: {mode: sideways}\n",
		"bad fov":     "variants:\n  - name: a\n    camera: {fov: 180}\n",
		"bad color":   "variants:\n  - name: a\n    particles: {color: blue}\n",
		"bad default": "default: b\nvariants:\n  - name: a\n",
		"short stars": "variants:\n  - name: a\n    stars: {duration_min: 0.8, duration_max: 2}\n",
		"neg fade":    "variants:\n  - name: a\n    stars: {fade_in: -1}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseVariants([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#88ccff")
	require.NoError(t, err)
	assert.Equal(t, HexColor{R: 0x88, G: 0xcc, B: 0xff, A: 0xff}, c)
	assert.Equal(t, "#88ccff", c.String())

	c, err = ParseHexColor("#00000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)
	assert.Equal(t, "#00000080", c.String())

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
}

func TestLoadVariantsReplacesPresets(t *testing.T) {
	builtin := Variants
	t.Cleanup(func() {
		Variants = builtin
		DefaultVariant = "azure"
		require.NoError(t, ApplyVariant(DefaultVariant))
	})
	require.NoError(t, ApplyVariant("ember"))

	require.NoError(t, LoadVariants([]byte(`
default: calm
variants:
  - name: calm
    particles:
      count: 10
  - name: ember
    particles:
      count: 20
`)))
	assert.Equal(t, []string{"calm", "ember"}, VariantNames())
	assert.Equal(t, "ember", ActiveVariant, "the active preset survives a reload")
	assert.Equal(t, 20, Particles.Count)

	require.NoError(t, LoadVariants([]byte(`
variants:
  - name: calm
    particles:
      count: 10
`)))
	assert.Equal(t, "calm", ActiveVariant)
	assert.Equal(t, 10, Particles.Count)

	assert.Error(t, LoadVariants([]byte(`variants: []`)))
	assert.Equal(t, []string{"calm"}, VariantNames(), "a bad document changes nothing")
}
