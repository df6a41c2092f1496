package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/automoto/flyby/components"
	"github.com/automoto/flyby/config"
	"github.com/automoto/flyby/fonts"
	"github.com/automoto/flyby/presets"
	"github.com/automoto/flyby/scenes"
	"github.com/automoto/flyby/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(opts scenes.LandingOptions) *Game {
	if err := fonts.LoadFontWithSize(fonts.Regular, goregular.TTF, 14); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := fonts.LoadFontWithSize(fonts.Mono, gomono.TTF, 12); err != nil {
		log.Printf("Warning: %v", err)
	}

	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewLandingScene(g, opts)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	if q, ok := g.scene.(interface{ Quitting() bool }); ok && q.Quitting() {
		if d, ok := g.scene.(interface{ Dispose() }); ok {
			d.Dispose()
		}
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout follows the window size so the camera aspect tracks resizes.
func (g *Game) Layout(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		width, height = config.C.Width, config.C.Height
	}
	g.bounds = image.Rect(0, 0, width, height)
	if r, ok := g.scene.(interface{ Resize(int, int) }); ok {
		r.Resize(width, height)
	}
	return width, height
}

func main() {
	variant := flag.String("variant", "", "scene preset: "+strings.Join(config.VariantNames(), ", "))
	model := flag.String("model", "", "glTF model path inside the embedded assets")
	follow := flag.Bool("follow", false, "keep the camera aimed at the model")
	debug := flag.Bool("debug", false, "show the debug overlay")
	presetsPath := flag.String("presets", "", "YAML variants file, reloaded while it changes")
	flag.Parse()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettingsGlobal(saved)
	}

	var watcher *presets.Watcher
	if *presetsPath != "" {
		w, err := loadPresets(*presetsPath)
		if err != nil {
			log.Fatalf("presets: %v", err)
		}
		defer w.Close()
		watcher = w
	}

	// Flags win over saved settings
	settings := components.SettingsData{
		Variant: config.ActiveVariant,
		Follow:  config.Camera.Follow || *follow,
		Debug:   config.Debug.Enabled || *debug,
	}
	if *variant != "" {
		settings.Variant = *variant
	}

	opts := scenes.LandingOptions{Settings: settings, Model: *model, Presets: watcher}
	if err := ebiten.RunGame(NewGame(opts)); err != nil {
		log.Fatal(err)
	}
}

// loadPresets replaces the built-in variants with the file at path and
// starts watching it for edits.
func loadPresets(path string) (*presets.Watcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.LoadVariants(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets.Watch(context.Background(), path, presets.DefaultDebounce)
}

