package systems

import (
	"testing"

	cfg "github.com/automoto/flyby/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings(t *testing.T) {
	s, err := decodeSettings([]byte(`{"variant":"dusk","follow":true,"debug":false}`))
	require.NoError(t, err)
	assert.Equal(t, &SavedSettings{Variant: "dusk", Follow: true}, s)

	_, err = decodeSettings([]byte("{not json"))
	assert.Error(t, err)
}

func TestApplySavedSettingsKeepsVariantOnUnknownName(t *testing.T) {
	follow, debug := cfg.Camera.Follow, cfg.Debug.Enabled
	t.Cleanup(func() {
		cfg.Camera.Follow = follow
		cfg.Debug.Enabled = debug
		_ = cfg.ApplyVariant(cfg.DefaultVariant)
	})
	require.NoError(t, cfg.ApplyVariant(cfg.DefaultVariant))

	ApplySavedSettingsGlobal(&SavedSettings{Variant: "no-such-variant", Follow: true, Debug: true})
	assert.Equal(t, cfg.DefaultVariant, cfg.ActiveVariant)
	assert.True(t, cfg.Camera.Follow)
	assert.True(t, cfg.Debug.Enabled)

	ApplySavedSettingsGlobal(nil)
	assert.True(t, cfg.Camera.Follow, "nil is a no-op")
}

func TestPersistenceIsNoOpBeforeInit(t *testing.T) {
	s, err := LoadSettings()
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, SaveSettings(&SavedSettings{Variant: "x"}))
}
