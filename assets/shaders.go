package assets

import (
	"embed"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

var (
	// BackdropShader fills the screen with a vertical gradient and a vignette
	BackdropShader *ebiten.Shader
)

// LoadShaders compiles and caches all shaders
func LoadShaders() error {
	var err error

	src, err := shaderFS.ReadFile("shaders/backdrop.kage")
	if err != nil {
		return err
	}
	BackdropShader, err = ebiten.NewShader(src)
	if err != nil {
		return err
	}

	return nil
}
