package main

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/config"
	"github.com/milk9111/tilepaint/tilemap"
	"golang.org/x/image/font/gofont/goregular"
)

// EditorUI is everything BuildEditorUI hands back to the game.
type EditorUI struct {
	UI        *ebitenui.UI
	ToolBar   *ToolBar
	LeftPanel *LeftPanelUI
	Tileset   *TilesetPanelUI
}

func BuildEditorUI(cfg config.Config, assetList []assets.AssetInfo, cb EditorCallbacks, initialTool tilemap.Tool) (*EditorUI, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	rightPanel := buildTilesetPanelUI(assetList, cfg.Editor.RightPanelWidth, &fontFace, cb)
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb, initialTool)
	leftPanel := buildLeftPanelUI(ui.PrimaryTheme, &fontFace, cfg.Editor.LeftPanelWidth, cfg.ExportPath, cb)
	gridPanel := buildGridPanel()

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	gridPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(gridPanel)
	root.AddChild(leftPanel.Container)
	root.AddChild(rightPanel.Container)
	root.AddChild(toolbarContainer)
	// Overlays go last so they draw above the panels.
	for _, overlay := range []*widget.Container{leftPanel.RenameOverlay, leftPanel.NewMapOverlay} {
		overlay.GetWidget().LayoutData = widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
			StretchHorizontal:  true,
			StretchVertical:    true,
		}
		root.AddChild(overlay)
	}

	ui.Container = root
	return &EditorUI{UI: ui, ToolBar: toolBar, LeftPanel: leftPanel, Tileset: rightPanel}, nil
}
