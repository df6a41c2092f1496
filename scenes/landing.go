package scenes

import (
	"context"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/automoto/flyby/assets"
	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/automoto/flyby/presets"
	"github.com/automoto/flyby/stage"
	"github.com/automoto/flyby/systems"
	"github.com/automoto/flyby/systems/factory"
	"github.com/automoto/flyby/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// LandingOptions selects what the landing scene shows.
type LandingOptions struct {
	Settings components.SettingsData
	Model    string // overrides the variant's model when set

	// Presets, when set, reloads the variants whenever the watched file changes.
	Presets *presets.Watcher

	// Loader defaults to the embedded asset loader.
	Loader stage.Loader
}

// LandingScene shows the loaded model over the animated backdrop
type LandingScene struct {
	ecs          *ecs.ECS
	stage        *stage.Stage
	loadingUI    *ui.LoadingUI
	sceneChanger SceneChanger
	opts         LandingOptions
	cancel       context.CancelFunc
	once         sync.Once
	quitting     bool

	width, height int // last size from Resize, zero until the first layout
}

// NewLandingScene creates a landing scene. Nothing is built until the first Update.
func NewLandingScene(sc SceneChanger, opts LandingOptions) *LandingScene {
	return &LandingScene{sceneChanger: sc, opts: opts}
}

func (ls *LandingScene) Update() {
	ls.once.Do(ls.configure)
	ls.ecs.Update()

	if ls.loadingUI != nil {
		ls.loadingUI.Update(ls.stage.LoadProgress())
	}

	if systems.QuitRequested(ls.ecs) {
		ls.quitting = true
		return
	}
	if systems.VariantRequested(ls.ecs) {
		ls.nextVariant()
		return
	}
	if ls.opts.Presets != nil {
		select {
		case ev, ok := <-ls.opts.Presets.Events():
			if ok {
				ls.reloadPresets(ev)
			}
		default:
		}
	}
}

// Quitting reports whether the viewer asked to exit.
func (ls *LandingScene) Quitting() bool {
	return ls.quitting
}

func (ls *LandingScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ls.ecs == nil {
		return
	}
	ls.ecs.Draw(screen)

	if ls.loadingUI != nil && !ls.stage.LoadProgress().Complete {
		ls.loadingUI.Draw(screen)
	}
}

// Resize forwards a new viewport size to the stage and the input system.
func (ls *LandingScene) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == ls.width && height == ls.height) {
		return
	}
	ls.width, ls.height = width, height
	if ls.stage != nil {
		ls.stage.Resize(width, height)
	}
	if ls.ecs != nil {
		systems.SetViewport(ls.ecs, width, height)
	}
}

func (ls *LandingScene) size() (int, int) {
	if ls.width > 0 && ls.height > 0 {
		return ls.width, ls.height
	}
	return cfg.C.Width, cfg.C.Height
}

// Dispose stops the load and tears the stage down.
func (ls *LandingScene) Dispose() {
	if ls.stage != nil {
		ls.stage.Dispose()
	}
	if ls.cancel != nil {
		ls.cancel()
	}
}

func (ls *LandingScene) configure() {
	settings := ls.opts.Settings
	if settings.Variant != "" {
		if err := cfg.ApplyVariant(settings.Variant); err != nil {
			log.Printf("Warning: %v, keeping %s", err, cfg.ActiveVariant)
		}
	}
	settings.Variant = cfg.ActiveVariant
	if ls.opts.Model != "" {
		cfg.Scene.Model = ls.opts.Model
	}
	cfg.Camera.Follow = settings.Follow
	cfg.Debug.Enabled = settings.Debug

	if assets.BackdropShader == nil {
		if err := assets.LoadShaders(); err != nil {
			log.Printf("Warning: Could not compile shaders, using a flat backdrop: %v", err)
		}
	}

	if err := ls.build(settings); err != nil {
		log.Printf("Warning: Could not build the %s scene, falling back to %s: %v",
			settings.Variant, cfg.DefaultVariant, err)
		ls.Dispose()
		if err := cfg.ApplyVariant(cfg.DefaultVariant); err != nil {
			panic("failed to apply the default variant: " + err.Error())
		}
		settings.Variant = cfg.ActiveVariant
		if ls.opts.Model != "" {
			cfg.Scene.Model = ls.opts.Model
		}
		if err := ls.build(settings); err != nil {
			panic("failed to build the landing scene: " + err.Error())
		}
	}

	lui, err := ui.NewLoadingUI(strings.ToUpper(settings.Variant))
	if err != nil {
		log.Printf("Warning: Could not build the loading labels: %v", err)
	} else {
		ls.loadingUI = lui
	}
}

// build creates the ECS and the stage for the active config.
func (ls *LandingScene) build(settings components.SettingsData) error {
	ecs := ecs.NewECS(donburi.NewWorld())
	factory.CreateSettings(ecs, settings)
	factory.CreateInput(ecs)
	width, height := ls.size()
	systems.SetViewport(ecs, width, height)

	ls.stage = stage.New(ecs.World, stage.Options{
		Loader: ls.loader(),
		Width:  width,
		Height: height,
	})
	ctx, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel
	if err := ls.stage.Init(ctx); err != nil {
		return err
	}

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateSettings)
	ecs.AddSystem(systems.NewUpdateStage(ls.stage))

	ecs.AddRenderer(cfg.Default, systems.DrawBackdrop)
	ecs.AddRenderer(cfg.Default, systems.NewDrawLayers(ls.stage))
	ecs.AddRenderer(cfg.Default, systems.NewDrawScene(ls.stage))
	ecs.AddRenderer(cfg.Default, systems.NewDrawLoading(ls.stage))
	ecs.AddRenderer(cfg.Default, systems.NewDrawDebug(ls.stage))

	ls.ecs = ecs
	return nil
}

func (ls *LandingScene) loader() stage.Loader {
	if ls.opts.Loader != nil {
		return ls.opts.Loader
	}
	return assets.NewLoader(nil)
}

// nextVariant rebuilds the scene with the following preset.
func (ls *LandingScene) nextVariant() {
	settings := *systems.GetOrCreateSettings(ls.ecs)
	settings.Variant = cfg.NextVariant(settings.Variant)
	systems.SaveCurrentSettings(&settings)
	ls.rebuild(settings)
}

// reloadPresets installs the changed presets and rebuilds the scene. A file
// that fails to parse leaves the running presets alone.
func (ls *LandingScene) reloadPresets(ev presets.Event) {
	if ev.Err != nil {
		log.Printf("Warning: Could not read presets: %v", ev.Err)
		return
	}
	if err := cfg.LoadVariants(ev.Data); err != nil {
		log.Printf("Warning: Could not reload presets from %s: %v", ls.presetsPath(), err)
		return
	}
	log.Printf("Reloaded presets from %s", ls.presetsPath())

	settings := *systems.GetOrCreateSettings(ls.ecs)
	settings.Variant = cfg.ActiveVariant
	ls.rebuild(settings)
}

func (ls *LandingScene) presetsPath() string {
	if ls.opts.Presets == nil {
		return "presets"
	}
	return ls.opts.Presets.Path()
}

func (ls *LandingScene) rebuild(settings components.SettingsData) {
	ls.Dispose()
	opts := ls.opts
	opts.Settings = settings
	next := NewLandingScene(ls.sceneChanger, opts)
	next.width, next.height = ls.width, ls.height
	ls.sceneChanger.ChangeScene(next)
}
