package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/tilemap"
)

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	tools   []tilemap.Tool
}

func (tb *ToolBar) SetTool(t tilemap.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for i, tool := range tb.tools {
		if tool == t {
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

// TilesetPanelUI is the composed right-panel widget plus helper closures.
type TilesetPanelUI struct {
	Container           *widget.Container
	ApplyTileset        func(img *ebiten.Image, tileSize int)
	SetTilesetSelection func(x, y int)
	SetAssets           func(list []assets.AssetInfo)
}

// LeftPanelUI is the composed left-panel widget and its stateful helpers.
type LeftPanelUI struct {
	Container     *widget.Container
	LayerPanel    *LayerPanel
	ExportInput   *widget.TextInput
	StatusLabel   *widget.Label
	RenameOverlay *widget.Container
	NewMapOverlay *widget.Container
	ModalOpen     func() bool
}

// EditorCallbacks are the actions the UI can trigger on the editor.
type EditorCallbacks struct {
	OnToolSelected    func(tool tilemap.Tool)
	OnAssetSelected   func(asset assets.AssetInfo)
	OnTileSelected    func(x, y int)
	OnLayerSelected   func(layerIndex int)
	OnLayerRenamed    func(layerIndex int, newName string) error
	OnLayerVisibility func(layerIndex int)
	OnNewLayer        func()
	OnMoveLayerUp     func(layerIndex int)
	OnMoveLayerDown   func(layerIndex int)
	OnNewMap          func(width, height, tileSize int) error
	CurrentConfig     func() tilemap.MapConfig
	OnUndo            func()
	OnRedo            func()
	OnDelete          func()
	OnExport          func()
	OnExportPNG       func()
	OnCopy            func()
}
