package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilepaint/tilemap"
)

var toolOrder = []tilemap.Tool{tilemap.ToolSelect, tilemap.ToolPlace, tilemap.ToolErase}

func toolLabel(t tilemap.Tool) string {
	switch t {
	case tilemap.ToolSelect:
		return "Select"
	case tilemap.ToolPlace:
		return "Place"
	case tilemap.ToolErase:
		return "Erase"
	}
	return t.String()
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, cb EditorCallbacks, initialTool tilemap.Tool) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	var toolButtons []*widget.Button
	for _, t := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(toolLabel(t), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if cb.OnToolSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					cb.OnToolSelected(toolOrder[idx])
					return
				}
			}
		}),
	)

	// Plain action buttons share the bar with the tool group.
	actions := []struct {
		label string
		fn    func()
	}{
		{"Undo", cb.OnUndo},
		{"Redo", cb.OnRedo},
		{"Delete", cb.OnDelete},
		{"Export", cb.OnExport},
		{"PNG", cb.OnExportPNG},
		{"Copy", cb.OnCopy},
	}
	for _, a := range actions {
		fn := a.fn
		toolbar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.label, fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		))
	}

	tb := &ToolBar{group: group, buttons: toolButtons, tools: toolOrder}
	tb.SetTool(initialTool)
	return toolbar, tb
}
