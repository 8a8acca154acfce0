package main

import (
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/config"
	"github.com/milk9111/tilepaint/tilemap"
	"github.com/rs/zerolog/log"
)

// EditorGame is the Ebiten game driving a tilemap.Editor.
type EditorGame struct {
	cfg config.Config
	ed  *tilemap.Editor

	ui          *ebitenui.UI
	toolBar     *ToolBar
	layerPanel  *LayerPanel
	tilesetUI   *TilesetPanelUI
	statusLabel *widget.Label
	exportInput *widget.TextInput
	modalOpen   func() bool

	view      view
	tileset   *tilesetImage
	watcher   *assets.Watcher
	gridPixel *ebiten.Image

	isPanning        bool
	lastPanX         int
	lastPanY         int
	pointerDown      bool
	lastCell         tilemap.Cell
	lastTool         tilemap.Tool
	lastLayerVersion string
}

func NewEditorGame(cfg config.Config, ed *tilemap.Editor) *EditorGame {
	return &EditorGame{
		cfg:      cfg,
		ed:       ed,
		view:     newView(cfg.Editor.LeftPanelWidth),
		lastTool: ed.Tool(),
	}
}

func (g *EditorGame) hotkeysSuppressed() bool {
	if g.modalOpen != nil && g.modalOpen() {
		return true
	}
	if g.ui == nil {
		return false
	}
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func (g *EditorGame) Update() error {
	g.pollWatcher()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if shift != g.ed.Shift() {
		if shift {
			g.ed.KeyDown(tilemap.KeyShift)
		} else {
			g.ed.KeyUp(tilemap.KeyShift)
		}
	}

	if !g.hotkeysSuppressed() {
		g.handleHotkeys(ctrl, shift)
	}

	if g.ed.Tool() != g.lastTool {
		g.toolBar.SetTool(g.ed.Tool())
		g.lastTool = g.ed.Tool()
	}

	if g.ui != nil {
		g.ui.Update()
	}

	g.handleView()
	g.handlePointer()
	g.syncLayers()
	return nil
}

func (g *EditorGame) handleHotkeys(ctrl, shift bool) {
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) && shift:
		g.redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.exportJSON()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.exportPNG()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyExport()
	}
	if ctrl {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		g.ed.KeyDown(tilemap.KeyDelete)
		g.ed.KeyUp(tilemap.KeyDelete)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.ed.KeyDown(tilemap.KeyBackspace)
		g.ed.KeyUp(tilemap.KeyBackspace)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ed.Selection().Clear()
	}

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.ed.SetTool(tilemap.ToolSelect)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.ed.SetTool(tilemap.ToolPlace)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.ed.SetTool(tilemap.ToolErase)
	}

	// Cycle layers (Q/E)
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.cycleLayer(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.cycleLayer(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.addLayer()
	}
}

func (g *EditorGame) handleView() {
	// Pan with middle mouse drag.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.view.pan(cx-g.lastPanX, cy-g.lastPanY)
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}

	if ebuiinput.UIHovered {
		return
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		cx, cy := ebiten.CursorPosition()
		if wy > 0 {
			g.view.zoomAt(cx, cy, 1.1)
		} else {
			g.view.zoomAt(cx, cy, 1/1.1)
		}
	}
}

func (g *EditorGame) handlePointer() {
	cfg := g.ed.Document().Config()
	sx, sy := ebiten.CursorPosition()
	cell := g.view.cellAt(cfg, sx, sy)

	if g.pointerDown && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.ed.PointerUp(cell)
		g.pointerDown = false
		return
	}

	// Clicks on toolbar and panels must not also reach the map.
	if ebuiinput.UIHovered || (g.modalOpen != nil && g.modalOpen()) {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !cfg.InBounds(cell.X, cell.Y) {
			return
		}
		g.pointerDown = true
		g.lastCell = cell
		g.report(g.ed.PointerDown(cell))
		return
	}
	if g.pointerDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && cell != g.lastCell {
		g.lastCell = cell
		g.report(g.ed.PointerMove(cell))
	}
}

func (g *EditorGame) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, tilemap.ErrNoSourceTile):
		g.setStatus("Pick a tile from the tileset first")
	default:
		g.setStatus(err.Error())
	}
	log.Debug().Err(err).Msg("editor action rejected")
}

func (g *EditorGame) setStatus(msg string) {
	if g.statusLabel != nil {
		g.statusLabel.Label = msg
	}
}

func (g *EditorGame) undo() {
	if g.ed.Undo() {
		g.setStatus("Undo")
	}
}

func (g *EditorGame) redo() {
	if g.ed.Redo() {
		g.setStatus("Redo")
	}
}

func (g *EditorGame) addLayer() {
	l := g.ed.AddLayer()
	log.Info().Str("layer", l.ID).Msg("layer added")
}

func (g *EditorGame) cycleLayer(step int) {
	layers := g.ed.Document().Layers()
	if len(layers) == 0 {
		return
	}
	idx := g.activeIndex(layers)
	idx = (idx + step + len(layers)) % len(layers)
	g.report(g.ed.SelectLayer(layers[idx].ID))
}

func (g *EditorGame) activeIndex(layers []*tilemap.Layer) int {
	active := g.ed.Document().ActiveLayer()
	for i, l := range layers {
		if l.ID == active {
			return i
		}
	}
	return 0
}

func (g *EditorGame) layerByIndex(idx int) (*tilemap.Layer, bool) {
	layers := g.ed.Document().Layers()
	if idx < 0 || idx >= len(layers) {
		return nil, false
	}
	return layers[idx], true
}

// syncLayers refreshes the layer list when names, order, visibility or the
// active layer changed since the last frame.
func (g *EditorGame) syncLayers() {
	if g.layerPanel == nil {
		return
	}
	layers := g.ed.Document().Layers()
	entries := make([]LayerEntry, len(layers))
	version := g.ed.Document().ActiveLayer()
	for i, l := range layers {
		entries[i] = LayerEntry{Index: i, ID: l.ID, Name: l.Name, Visible: l.Visible}
		version += fmt.Sprintf("|%s:%s:%t", l.ID, l.Name, l.Visible)
	}
	if version == g.lastLayerVersion {
		return
	}
	g.lastLayerVersion = version
	g.layerPanel.SetLayers(entries)
	g.layerPanel.SetSelected(g.activeIndex(layers))
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
