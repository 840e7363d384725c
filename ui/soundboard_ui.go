package ui

import (
	"fmt"
	"image/color"

	"github.com/automoto/simpleaudio/fonts"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// SoundboardActions are the callbacks the soundboard triggers
type SoundboardActions struct {
	Play       func(name string) error
	Stop       func(name string) error
	ChangeVol  func(delta float64)
	ToggleMute func()
}

// SoundboardUI holds the ebitenui interface listing every registered sound
type SoundboardUI struct {
	UI *ebitenui.UI

	actions SoundboardActions

	nameInput   *widget.TextInput
	statusLabel *widget.Label
	volumeLabel *widget.Label

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

func NewSoundboardUI(names []string, actions SoundboardActions) *SoundboardUI {
	ui := &SoundboardUI{
		actions:    actions,
		titleFace:  fonts.Title.Get(),
		normalFace: fonts.Normal.Get(),
		smallFace:  fonts.Small.Get(),
	}
	ui.buildUI(names)
	return ui
}

func (ui *SoundboardUI) buildUI(names []string) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	titleLabel := widget.NewLabel(
		widget.LabelOpts.Text("SOUNDBOARD", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)
	contentContainer.AddChild(titleLabel)

	contentContainer.AddChild(ui.buildSoundList(names))
	contentContainer.AddChild(ui.buildLookupPanel())
	contentContainer.AddChild(ui.buildVolumeRow())

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	contentContainer.AddChild(ui.statusLabel)

	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *SoundboardUI) buildSoundList(names []string) *widget.Container {
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{30, 30, 45, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	if len(names) == 0 {
		panel.AddChild(widget.NewLabel(
			widget.LabelOpts.Text("No sounds registered", &ui.normalFace, &widget.LabelColor{
				Idle: color.RGBA{160, 160, 160, 255},
			}),
		))
		return panel
	}

	for _, name := range names {
		panel.AddChild(ui.buildSoundRow(name))
	}
	return panel
}

func (ui *SoundboardUI) buildSoundRow(name string) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(fmt.Sprintf("%-16s", name), &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))
	row.AddChild(ui.newButton("Play", color.RGBA{40, 100, 40, 255}, func() { ui.play(name) }))
	row.AddChild(ui.newButton("Stop", color.RGBA{100, 40, 40, 255}, func() { ui.stop(name) }))
	return row
}

func (ui *SoundboardUI) buildLookupPanel() *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Name:", &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))

	ui.nameInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder("sound name"),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
	row.AddChild(ui.nameInput)

	row.AddChild(ui.newButton("Play", color.RGBA{40, 100, 40, 255}, func() { ui.play(ui.nameInput.GetText()) }))
	row.AddChild(ui.newButton("Stop", color.RGBA{100, 40, 40, 255}, func() { ui.stop(ui.nameInput.GetText()) }))
	return row
}

func (ui *SoundboardUI) buildVolumeRow() *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	ui.volumeLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	)

	row.AddChild(ui.newButton("-", color.RGBA{60, 60, 80, 255}, func() {
		if ui.actions.ChangeVol != nil {
			ui.actions.ChangeVol(-1)
		}
	}))
	row.AddChild(ui.volumeLabel)
	row.AddChild(ui.newButton("+", color.RGBA{60, 60, 80, 255}, func() {
		if ui.actions.ChangeVol != nil {
			ui.actions.ChangeVol(1)
		}
	}))
	row.AddChild(ui.newButton("Mute", color.RGBA{60, 60, 80, 255}, func() {
		if ui.actions.ToggleMute != nil {
			ui.actions.ToggleMute()
		}
	}))
	return row
}

func (ui *SoundboardUI) newButton(label string, base color.RGBA, onClick func()) *widget.Button {
	hover := color.RGBA{clampAdd(base.R, 30), clampAdd(base.G, 30), clampAdd(base.B, 30), 255}
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 22)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(base),
			Hover:   image.NewNineSliceColor(hover),
			Pressed: image.NewNineSliceColor(base),
		}),
		widget.ButtonOpts.Text(label, &ui.smallFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 255, 200, 255},
			Pressed: color.RGBA{200, 200, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (ui *SoundboardUI) play(name string) {
	if ui.actions.Play == nil {
		return
	}
	ui.SetStatus(statusText("Playing", name, ui.actions.Play(name)))
}

func (ui *SoundboardUI) stop(name string) {
	if ui.actions.Stop == nil {
		return
	}
	ui.SetStatus(statusText("Stopped", name, ui.actions.Stop(name)))
}

// statusText reports a finished action, or the error that prevented it
func statusText(verb, name string, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s %s", verb, name)
}

func (ui *SoundboardUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

// SetVolume updates the volume readout
func (ui *SoundboardUI) SetVolume(volume float64, muted bool) {
	if ui.volumeLabel == nil {
		return
	}
	if muted {
		ui.volumeLabel.Label = "Volume: muted"
		return
	}
	ui.volumeLabel.Label = fmt.Sprintf("Volume: %3.0f%%", volume*100)
}

func (ui *SoundboardUI) Update() {
	ui.UI.Update()
}

func clampAdd(v, d uint8) uint8 {
	if int(v)+int(d) > 255 {
		return 255
	}
	return v + d
}
