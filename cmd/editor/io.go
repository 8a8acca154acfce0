package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/render"
	"github.com/milk9111/tilepaint/tilemap"
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

// tilesetImage pairs a decoded tileset with its GPU copy. The GPU copy is
// freed when the registry releases the source.
type tilesetImage struct {
	path string
	src  *assets.Image
	img  *ebiten.Image
	info tilemap.Tileset
}

func (g *EditorGame) loadTilesetFile(path string) error {
	src, err := assets.DecodeFile(path)
	if err != nil {
		return err
	}
	return g.useTileset(path, src)
}

func (g *EditorGame) loadDefaultTileset() error {
	src, err := assets.LoadDefaultTileset()
	if err != nil {
		return err
	}
	return g.useTileset("", src)
}

func (g *EditorGame) useTileset(path string, src *assets.Image) error {
	info, err := g.ed.LoadTileset(src.Name, src, g.cfg.TilesetTileSize)
	if err != nil {
		src.Release()
		return err
	}
	img := ebiten.NewImageFromImage(src.Image())
	src.OnRelease(img.Deallocate)
	g.tileset = &tilesetImage{path: path, src: src, img: img, info: info}
	if g.tilesetUI != nil {
		g.tilesetUI.ApplyTileset(img, info.TileSize)
	}
	log.Info().
		Str("tileset", info.Name).
		Int("columns", info.Columns).
		Int("rows", info.Rows).
		Msg("tileset loaded")
	g.setStatus(fmt.Sprintf("Tileset %s (%dx%d tiles)", info.Name, info.Columns, info.Rows))
	return nil
}

func (g *EditorGame) selectSourceTile(x, y int) {
	if err := g.ed.SelectSourceTile(x, y); err != nil {
		g.report(err)
		return
	}
	if g.ed.Tool() != tilemap.ToolPlace {
		g.ed.SetTool(tilemap.ToolPlace)
	}
	if g.tilesetUI != nil {
		g.tilesetUI.SetTilesetSelection(x, y)
	}
}

// pollWatcher reloads the tileset when its file changes on disk.
func (g *EditorGame) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.onAssetChanged(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Warn().Err(err).Msg("asset watcher")
			}
			return
		default:
			return
		}
	}
}

func (g *EditorGame) onAssetChanged(path string) {
	if g.tilesetUI != nil {
		if list, err := assets.ListImages(g.cfg.AssetsDir); err == nil {
			g.tilesetUI.SetAssets(list)
		}
	}
	if g.tileset == nil || g.tileset.path == "" {
		return
	}
	if filepath.Clean(path) != filepath.Clean(g.tileset.path) {
		return
	}
	if err := g.loadTilesetFile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("tileset reload failed")
		return
	}
	log.Info().Str("path", path).Msg("tileset reloaded")
}

func (g *EditorGame) exportPath() string {
	var name string
	if g.exportInput != nil {
		name = strings.TrimSpace(g.exportInput.GetText())
	}
	if name == "" {
		name = g.cfg.ExportPath
	}
	if name == "" {
		name = tilemap.DefaultExportName
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	return name
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func (g *EditorGame) exportJSON() {
	path := g.exportPath()
	f, err := createFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("export failed")
		g.setStatus("Export failed: " + err.Error())
		return
	}
	defer f.Close()
	if err := g.ed.Document().WriteExport(f); err != nil {
		log.Error().Err(err).Str("path", path).Msg("export failed")
		g.setStatus("Export failed: " + err.Error())
		return
	}
	log.Info().Str("path", path).Msg("map exported")
	g.setStatus("Exported " + path)
}

func (g *EditorGame) exportPNG() {
	path := strings.TrimSuffix(g.exportPath(), filepath.Ext(g.exportPath())) + ".png"
	f, err := createFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("png export failed")
		g.setStatus("PNG export failed: " + err.Error())
		return
	}
	defer f.Close()

	opts := render.DefaultOptions()
	var src render.TileSource
	if g.tileset != nil {
		src = g.tileset.src
		opts.SourceTileSize = g.tileset.info.TileSize
	}
	if err := render.WritePNG(f, g.ed.Document().Export(), src, opts); err != nil {
		log.Error().Err(err).Str("path", path).Msg("png export failed")
		g.setStatus("PNG export failed: " + err.Error())
		return
	}
	log.Info().Str("path", path).Msg("map rendered")
	g.setStatus("Rendered " + path)
}

var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Warn().Err(err).Msg("clipboard unavailable")
		return
	}
	clipboardReady = true
}

// copyExport puts the export JSON on the system clipboard.
func (g *EditorGame) copyExport() {
	if !clipboardReady {
		g.setStatus("Clipboard unavailable")
		return
	}
	data, err := g.ed.Document().MarshalExport()
	if err != nil {
		log.Error().Err(err).Msg("marshal export")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("Copied map JSON to clipboard")
}
