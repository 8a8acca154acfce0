package main

import (
	"fmt"

	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/tilemap"
	"github.com/rs/zerolog/log"
)

func (g *EditorGame) callbacks() EditorCallbacks {
	return EditorCallbacks{
		OnToolSelected: func(tool tilemap.Tool) {
			g.ed.SetTool(tool)
			g.lastTool = tool
		},
		OnAssetSelected: func(asset assets.AssetInfo) {
			if err := g.loadTilesetFile(asset.Path); err != nil {
				log.Error().Err(err).Str("path", asset.Path).Msg("load tileset")
				g.setStatus("Could not load " + asset.Name)
			}
		},
		OnTileSelected: g.selectSourceTile,
		OnLayerSelected: func(idx int) {
			if l, ok := g.layerByIndex(idx); ok {
				g.report(g.ed.SelectLayer(l.ID))
			}
		},
		OnLayerRenamed: func(idx int, name string) error {
			l, ok := g.layerByIndex(idx)
			if !ok {
				return fmt.Errorf("no layer at %d", idx)
			}
			return g.ed.RenameLayer(l.ID, name)
		},
		OnLayerVisibility: func(idx int) {
			if l, ok := g.layerByIndex(idx); ok {
				g.report(g.ed.SetLayerVisible(l.ID, !l.Visible))
			}
		},
		OnNewLayer: g.addLayer,
		OnMoveLayerUp: func(idx int) {
			if l, ok := g.layerByIndex(idx); ok {
				g.report(g.ed.MoveLayerUp(l.ID))
			}
		},
		OnMoveLayerDown: func(idx int) {
			if l, ok := g.layerByIndex(idx); ok {
				g.report(g.ed.MoveLayerDown(l.ID))
			}
		},
		OnNewMap: func(width, height, tileSize int) error {
			cfg := tilemap.MapConfig{Width: width, Height: height, TileSize: tileSize}
			if err := g.ed.NewMap(cfg); err != nil {
				return err
			}
			g.pointerDown = false
			log.Info().Int("width", width).Int("height", height).Int("tile_size", tileSize).Msg("new map")
			g.setStatus(fmt.Sprintf("New %dx%d map", width, height))
			return nil
		},
		CurrentConfig: func() tilemap.MapConfig {
			return g.ed.Document().Config()
		},
		OnDelete: func() {
			if n := g.ed.DeleteSelection(); n > 0 {
				g.setStatus(fmt.Sprintf("Deleted %d tiles", n))
			}
		},
		OnUndo:      g.undo,
		OnRedo:      g.redo,
		OnExport:    g.exportJSON,
		OnExportPNG: g.exportPNG,
		OnCopy:      g.copyExport,
	}
}
