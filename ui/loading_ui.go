package ui

import (
	"bytes"
	"fmt"

	"github.com/automoto/flyby/components"
	cfg "github.com/automoto/flyby/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadingUI holds the ebitenui labels drawn over the loading overlay
type LoadingUI struct {
	UI *ebitenui.UI

	titleLabel  *widget.Label
	statusLabel *widget.Label

	// Fonts (stored as interface for ebitenui compatibility)
	titleFace text.Face
	smallFace text.Face
}

// NewLoadingUI creates the loading labels for the named model
func NewLoadingUI(title string) (*LoadingUI, error) {
	lui := &LoadingUI{}
	if err := lui.loadFonts(); err != nil {
		return nil, err
	}
	lui.buildUI(title)
	return lui, nil
}

func (lui *LoadingUI) loadFonts() error {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	lui.titleFace = &text.GoTextFace{
		Source: fontSource,
		Size:   20,
	}
	lui.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   12,
	}
	return nil
}

func (lui *LoadingUI) buildUI(title string) {
	// Transparent root so the scene and the bar show through
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(int(cfg.Loading.BarHeight)*4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	lui.titleLabel = widget.NewLabel(
		widget.LabelOpts.Text(title, &lui.titleFace, &widget.LabelColor{
			Idle: cfg.Loading.TextColor,
		}),
	)
	contentContainer.AddChild(lui.titleLabel)

	lui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &lui.smallFace, &widget.LabelColor{
			Idle: cfg.Loading.TextColor,
		}),
	)
	contentContainer.AddChild(lui.statusLabel)

	rootContainer.AddChild(contentContainer)

	lui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

// StatusText describes the load state shown under the bar
func StatusText(p components.LoadProgressData) string {
	switch {
	case p.Failed:
		return fmt.Sprintf("Could not load the model: %v", p.Err)
	case p.Complete:
		return "Ready"
	case p.ItemsTotal == 0:
		return "Loading..."
	}
	return fmt.Sprintf("Loading %d/%d (%.0f%%)", p.ItemsLoaded, p.ItemsTotal, p.Fraction*100)
}

// Update refreshes the labels from the progress and runs the UI
func (lui *LoadingUI) Update(p components.LoadProgressData) {
	lui.statusLabel.Label = StatusText(p)
	lui.UI.Update()
}

// Draw renders the labels
func (lui *LoadingUI) Draw(screen *ebiten.Image) {
	lui.UI.Draw(screen)
}
