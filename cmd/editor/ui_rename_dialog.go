package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// formDialog is a modal overlay with a title, labelled text fields and
// OK/Cancel buttons.
type formDialog struct {
	Overlay *widget.Container
	Open    func(values ...string)
	IsOpen  func() bool
}

func newFormDialog(
	theme *widget.Theme,
	fontFace *text.Face,
	title string,
	fields []string,
	onSubmit func(values []string) error,
) *formDialog {
	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 140),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	errLabel := widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: color.RGBA{160, 0, 0, 255}}),
	)

	hide := func() {
		overlay.GetWidget().Visibility = widget.Visibility_Hide
		errLabel.Label = ""
	}

	inputs := make([]*widget.TextInput, len(fields))
	submit := func() {
		values := make([]string, len(inputs))
		for i, in := range inputs {
			values[i] = in.GetText()
		}
		if onSubmit != nil {
			if err := onSubmit(values); err != nil {
				errLabel.Label = err.Error()
				return
			}
		}
		hide()
	}

	dialog.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(title, fontFace, dialogTextColor),
	))
	for i, name := range fields {
		if len(fields) > 1 {
			dialog.AddChild(widget.NewLabel(
				widget.LabelOpts.Text(name, fontFace, dialogTextColor),
			))
		}
		inputs[i] = newTextInput(fontFace, 260,
			widget.TextInputOpts.SubmitOnEnter(true),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				submit()
			}),
		)
		dialog.AddChild(inputs[i])
	}
	dialog.AddChild(errLabel)

	buttonsRow := newRow(8)
	buttonsRow.AddChild(newButton(theme, fontFace, "OK", submit))
	buttonsRow.AddChild(newButton(theme, fontFace, "Cancel", hide))
	dialog.AddChild(buttonsRow)
	overlay.AddChild(dialog)

	open := func(values ...string) {
		for i, in := range inputs {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			in.SetText(v)
		}
		errLabel.Label = ""
		if len(inputs) > 0 {
			inputs[0].Focus(true)
		}
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}
	isOpen := func() bool {
		return overlay.GetWidget().Visibility == widget.Visibility_Show
	}

	return &formDialog{Overlay: overlay, Open: open, IsOpen: isOpen}
}

func newLayerRenameDialog(theme *widget.Theme, fontFace *text.Face, onLayerRenamed func(layerIndex int, newName string) error) (*formDialog, func(idx int, current string)) {
	renameIdx := -1
	d := newFormDialog(theme, fontFace, "Rename layer", []string{"Name"}, func(values []string) error {
		if renameIdx < 0 || onLayerRenamed == nil {
			return nil
		}
		return onLayerRenamed(renameIdx, values[0])
	})
	return d, func(idx int, current string) {
		renameIdx = idx
		d.Open(current)
	}
}
