package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func layerEntryLabel(e any) string {
	entry, ok := e.(LayerEntry)
	if !ok {
		return ""
	}
	mark := " "
	if !entry.Visible {
		mark = "-"
	}
	return fmt.Sprintf("%s %d. %s", mark, entry.Index+1, entry.Name)
}

func addLayersSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	layerPanel *LayerPanel,
	cb EditorCallbacks,
) *widget.Button {
	parent.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, panelLabelColor),
	))

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(layerEntryLabel),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || layerPanel.suppressEvents {
				return
			}
			if cb.OnLayerSelected != nil {
				cb.OnLayerSelected(entry.Index)
			}
		}),
		widget.ListOpts.ContainerOpts(
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(0, 180),
			),
		),
	)
	parent.AddChild(layerList)
	layerPanel.list = layerList

	withSelected := func(fn func(idx int)) func() {
		return func() {
			if fn == nil {
				return
			}
			if sel, ok := layerPanel.Selected(); ok {
				fn(sel.Index)
			}
		}
	}

	buttonsRow := newRow(6)
	buttonsRow.AddChild(newButton(theme, fontFace, "New", cb.OnNewLayer))
	buttonsRow.AddChild(newButton(theme, fontFace, "Up", withSelected(cb.OnMoveLayerUp)))
	buttonsRow.AddChild(newButton(theme, fontFace, "Down", withSelected(cb.OnMoveLayerDown)))
	parent.AddChild(buttonsRow)

	secondRow := newRow(6)
	renameBtn := newButton(theme, fontFace, "Rename", nil)
	secondRow.AddChild(renameBtn)
	secondRow.AddChild(newButton(theme, fontFace, "Show/Hide", withSelected(cb.OnLayerVisibility)))
	parent.AddChild(secondRow)

	return renameBtn
}
