package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func buildLeftPanelUI(
	theme *widget.Theme,
	fontFace *text.Face,
	width int,
	exportPath string,
	cb EditorCallbacks,
) *LeftPanelUI {
	layerPanel := NewLayerPanel()

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			),
		),
	)

	exportInput := addFileSection(leftPanel, fontFace, exportPath)

	newMap, openNewMap := newMapDialog(theme, fontFace, cb.OnNewMap)
	leftPanel.AddChild(newButton(theme, fontFace, "New Map", func() {
		if cb.CurrentConfig != nil {
			openNewMap(cb.CurrentConfig())
		}
	}))

	renameBtn := addLayersSection(leftPanel, theme, fontFace, layerPanel, cb)

	rename, openRename := newLayerRenameDialog(theme, fontFace, cb.OnLayerRenamed)
	layerPanel.openRenameDialog = openRename
	renameBtn.ClickedEvent.AddHandler(func(args any) {
		sel, ok := layerPanel.Selected()
		if !ok {
			return
		}
		layerPanel.openRenameDialog(sel.Index, sel.Name)
	})

	status := widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: color.RGBA{200, 220, 255, 255}}),
	)
	leftPanel.AddChild(status)

	return &LeftPanelUI{
		Container:     leftPanel,
		LayerPanel:    layerPanel,
		ExportInput:   exportInput,
		StatusLabel:   status,
		RenameOverlay: rename.Overlay,
		NewMapOverlay: newMap.Overlay,
		ModalOpen: func() bool {
			return rename.IsOpen() || newMap.IsOpen()
		},
	}
}
