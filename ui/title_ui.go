package ui

import (
	"bytes"
	"image/color"

	cfg "github.com/automoto/tiledoor/config"
	"github.com/automoto/tiledoor/scenes"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TitleUI holds the ebitenui interface for the title screen
type TitleUI struct {
	UI *ebitenui.UI

	// Callbacks
	OnStart func()

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewTitleUI creates the title screen. onStart runs when Start is clicked.
func NewTitleUI(onStart func()) *TitleUI {
	tui := &TitleUI{OnStart: onStart}
	tui.loadFonts()
	tui.buildUI()
	return tui
}

func (tui *TitleUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	// Sized for the 160x144 screen
	tui.titleFace = &text.GoTextFace{Source: fontSource, Size: 16}
	tui.normalFace = &text.GoTextFace{Source: fontSource, Size: 10}
	tui.smallFace = &text.GoTextFace{Source: fontSource, Size: 7}
}

func (tui *TitleUI) buildUI() {
	bg := cfg.Palette.Levels[1]
	fg := cfg.Palette.Levels[4]

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	contentContainer.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(cfg.Window.Title, &tui.titleFace, &widget.LabelColor{
			Idle: fg,
		}),
	))

	contentContainer.AddChild(widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(70, 18),
		),
		widget.ButtonOpts.Image(tui.buttonImage()),
		widget.ButtonOpts.Text("Start", &tui.normalFace, &widget.ButtonTextColor{
			Idle:    fg,
			Hover:   cfg.Palette.Levels[3],
			Pressed: cfg.Palette.Levels[2],
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if tui.OnStart != nil {
				tui.OnStart()
			}
		}),
	))

	contentContainer.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Enter: start  Esc: back", &tui.smallFace, &widget.LabelColor{
			Idle: cfg.Palette.Levels[3],
		}),
	))

	rootContainer.AddChild(contentContainer)

	tui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (tui *TitleUI) buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(cfg.Palette.Levels[2]),
		Hover:    image.NewNineSliceColor(cfg.Palette.Levels[1]),
		Pressed:  image.NewNineSliceColor(cfg.Palette.Levels[1]),
		Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
	}
}

// AddStages registers the UI on the title scene. The update stage honors the
// input lock so clicks are ignored mid-fade.
func (tui *TitleUI) AddStages(scene *scenes.Scene) {
	scene.AddStageFunc(scenes.StageUpdate, func(*scenes.Context) {
		tui.UI.Update()
	})
	scene.AddStageFunc(scenes.StageRender, func(ctx *scenes.Context) {
		if screen, ok := ctx.Screen.(*ebiten.Image); ok && screen != nil {
			tui.UI.Draw(screen)
		}
	})
}
