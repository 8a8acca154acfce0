package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/common"
	"github.com/milk9111/tilepaint/config"
	"github.com/milk9111/tilepaint/tilemap"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "tilepaint.yaml", "path to config file")
	assetsDir := flag.String("dir", "", "directory containing tileset images (overrides config)")
	tilesetPath := flag.String("tileset", "", "tileset image to open at startup")
	width := flag.Int("width", 0, "map width in tiles (overrides config)")
	height := flag.Int("height", 0, "map height in tiles (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	common.SetupLogging(cfg.LogLevel)
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *width > 0 {
		cfg.Map.Width = *width
	}
	if *height > 0 {
		cfg.Map.Height = *height
	}

	log.Info().
		Int("width", cfg.Map.Width).
		Int("height", cfg.Map.Height).
		Int("tile_size", cfg.Map.TileSize).
		Msg("editor starting")

	ed, err := tilemap.NewEditor(cfg.Map)
	if err != nil {
		log.Fatal().Err(err).Msg("create editor")
	}

	assetList, err := assets.ListImages(cfg.AssetsDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.AssetsDir).Msg("list assets")
	}

	game := NewEditorGame(cfg, ed)
	eui, err := BuildEditorUI(cfg, assetList, game.callbacks(), ed.Tool())
	if err != nil {
		log.Fatal().Err(err).Msg("build ui")
	}
	game.ui = eui.UI
	game.toolBar = eui.ToolBar
	game.layerPanel = eui.LeftPanel.LayerPanel
	game.statusLabel = eui.LeftPanel.StatusLabel
	game.exportInput = eui.LeftPanel.ExportInput
	game.modalOpen = eui.LeftPanel.ModalOpen
	game.tilesetUI = eui.Tileset

	switch {
	case *tilesetPath != "":
		err = game.loadTilesetFile(*tilesetPath)
	case len(assetList) > 0:
		err = game.loadTilesetFile(assetList[0].Path)
	default:
		err = game.loadDefaultTileset()
	}
	if err != nil {
		log.Warn().Err(err).Msg("load tileset, falling back to bundled tileset")
		if err := game.loadDefaultTileset(); err != nil {
			log.Error().Err(err).Msg("load bundled tileset")
		}
	}

	if cfg.Editor.WatchAssets {
		var dirs []string
		if _, err := os.Stat(cfg.AssetsDir); err == nil {
			dirs = append(dirs, cfg.AssetsDir)
		}
		if *tilesetPath != "" {
			if dir := filepath.Dir(*tilesetPath); filepath.Clean(dir) != filepath.Clean(cfg.AssetsDir) {
				dirs = append(dirs, dir)
			}
		}
		if len(dirs) > 0 {
			w, err := assets.NewWatcher(dirs...)
			if err != nil {
				log.Warn().Err(err).Msg("asset watcher disabled")
			} else {
				game.watcher = w
				defer w.Close()
			}
		}
	}

	initClipboard()

	ebiten.SetWindowSize(cfg.Editor.WindowWidth, cfg.Editor.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Tilepaint")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run editor")
	}
	ed.Registry().Close()
}
