package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addFileSection adds the export path input. An empty path falls back to the
// configured export path.
func addFileSection(parent *widget.Container, fontFace *text.Face, exportPath string) *widget.TextInput {
	fileLabel := widget.NewLabel(
		widget.LabelOpts.Text("Export file", fontFace, panelLabelColor),
	)
	fileNameInput := newTextInput(fontFace, 180,
		widget.TextInputOpts.Placeholder(exportPath),
	)
	fileNameInput.SetText(exportPath)
	parent.AddChild(fileLabel)
	parent.AddChild(fileNameInput)
	return fileNameInput
}
