package scenes

import (
	"context"
	"testing"

	"github.com/automoto/flyby/assets"
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/presets"
	"github.com/automoto/flyby/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleLoader struct{}

func (idleLoader) Load(context.Context, assets.Request) <-chan assets.Event {
	return make(chan assets.Event)
}

type recordingChanger struct{ scenes []interface{} }

func (r *recordingChanger) ChangeScene(scene interface{}) { r.scenes = append(r.scenes, scene) }

func TestConfigureFallsBackToDefaultVariant(t *testing.T) {
	t.Cleanup(func() { _ = cfg.ApplyVariant(cfg.DefaultVariant) })
	require.NoError(t, cfg.ApplyVariant("ember"))
	// a lifetime too short for the star fades makes the stage refuse to build
	cfg.Stars.DurationMin = 0.8

	ls := NewLandingScene(&recordingChanger{}, LandingOptions{Loader: idleLoader{}})
	require.NotPanics(t, ls.configure)
	t.Cleanup(ls.Dispose)

	assert.Equal(t, cfg.DefaultVariant, cfg.ActiveVariant)
	assert.Equal(t, stage.Loading, ls.stage.Phase())
	assert.NotNil(t, ls.ecs)
}

func TestReloadPresetsRebuildsScene(t *testing.T) {
	builtin := cfg.Variants
	t.Cleanup(func() {
		cfg.Variants = builtin
		cfg.DefaultVariant = "azure"
		_ = cfg.ApplyVariant(cfg.DefaultVariant)
	})
	require.NoError(t, cfg.ApplyVariant(cfg.DefaultVariant))

	sc := &recordingChanger{}
	ls := NewLandingScene(sc, LandingOptions{Loader: idleLoader{}, Settings: components.SettingsData{Variant: "azure"}})
	ls.configure()

	ls.reloadPresets(presetsEvent("variants:\n  - name: calm\n"))
	require.Len(t, sc.scenes, 1)
	assert.Equal(t, "calm", cfg.ActiveVariant)
	next := sc.scenes[0].(*LandingScene)
	assert.Equal(t, "calm", next.opts.Settings.Variant)
	assert.Equal(t, stage.Disposed, ls.stage.Phase())

	ls2 := NewLandingScene(sc, LandingOptions{Loader: idleLoader{}})
	ls2.configure()
	t.Cleanup(ls2.Dispose)
	ls2.reloadPresets(presetsEvent("variants: []"))
	assert.Len(t, sc.scenes, 1, "a bad file keeps the running scene")
}

func presetsEvent(doc string) presets.Event {
	return presets.Event{Data: []byte(doc)}
}

func TestResizeReachesStageAndInput(t *testing.T) {
	t.Cleanup(func() { _ = cfg.ApplyVariant(cfg.DefaultVariant) })
	ls := NewLandingScene(&recordingChanger{}, LandingOptions{Loader: idleLoader{}})
	ls.Resize(1024, 512) // layout runs before the first update
	ls.configure()
	t.Cleanup(ls.Dispose)

	w, h := ls.stage.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)

	ls.Resize(600, 600)
	w, h = ls.stage.Size()
	assert.Equal(t, 600, w)
	assert.Equal(t, 600, h)
	assert.InDelta(t, 1, ls.stage.CameraData().Aspect, 1e-6)
	assert.Equal(t, 600, components.Input.Get(components.Input.MustFirst(ls.ecs.World)).ViewportW)
}
