package main

import "github.com/ebitenui/ebitenui/widget"

// buildGridPanel returns the empty center child of the root layout. The map
// itself is drawn by EditorGame.Draw underneath the UI.
func buildGridPanel() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 240),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
}
