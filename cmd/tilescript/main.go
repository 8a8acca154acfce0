package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/tilepaint/assets"
	"github.com/milk9111/tilepaint/common"
	"github.com/milk9111/tilepaint/config"
	"github.com/milk9111/tilepaint/render"
	"github.com/milk9111/tilepaint/script"
	"github.com/milk9111/tilepaint/tilemap"
	"github.com/rs/zerolog/log"
)

type options struct {
	script  string
	example string
	tileset string
	out     string
	png     string
	seed    int
	timeout time.Duration
}

func main() {
	configPath := flag.String("config", "tilepaint.yaml", "path to config file")
	opts := options{}
	flag.StringVar(&opts.script, "script", "", "path to a .tengo script")
	flag.StringVar(&opts.example, "example", "", "run a bundled script ("+strings.Join(script.Examples(), ", ")+")")
	flag.StringVar(&opts.tileset, "tileset", "", "tileset image (defaults to the bundled tileset)")
	flag.StringVar(&opts.out, "out", "", "JSON output path (overrides config export_path)")
	flag.StringVar(&opts.png, "png", "", "optional PNG preview output path")
	flag.IntVar(&opts.seed, "seed", 0, "value of the script's seed global")
	flag.DurationVar(&opts.timeout, "timeout", 10*time.Second, "script time limit")
	width := flag.Int("width", 0, "map width in tiles (overrides config)")
	height := flag.Int("height", 0, "map height in tiles (overrides config)")
	watch := flag.Bool("watch", false, "rerun when the script or tileset changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	common.SetupLogging(cfg.LogLevel)
	if *width > 0 {
		cfg.Map.Width = *width
	}
	if *height > 0 {
		cfg.Map.Height = *height
	}
	if opts.out == "" {
		opts.out = cfg.ExportPath
	}
	if opts.script == "" && opts.example == "" {
		log.Fatal().Msg("one of -script or -example is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := build(ctx, cfg, opts); err != nil {
		log.Error().Err(err).Msg("build failed")
		if !*watch {
			os.Exit(1)
		}
	}
	if !*watch {
		return
	}

	var dirs []string
	if opts.script != "" {
		dirs = append(dirs, filepath.Dir(opts.script))
	}
	if opts.tileset != "" {
		dirs = append(dirs, filepath.Dir(opts.tileset))
	}
	if len(dirs) == 0 {
		log.Fatal().Msg("-watch needs -script or -tileset on disk")
	}
	w, err := assets.NewFilteredWatcher(watchFilter(opts), dirs...)
	if err != nil {
		log.Fatal().Err(err).Msg("watch")
	}
	defer w.Close()

	log.Info().Strs("dirs", dirs).Msg("watching for changes")
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			log.Info().Str("file", name).Msg("changed, rebuilding")
			if err := build(ctx, cfg, opts); err != nil {
				log.Error().Err(err).Msg("build failed")
			}
		case err, ok := <-w.Errors:
			if ok {
				log.Warn().Err(err).Msg("watcher error")
			}
		case <-ctx.Done():
			return
		}
	}
}

// watchFilter accepts scripts and images but never the files a build writes,
// so a preview saved next to its tileset does not trigger another build.
func watchFilter(opts options) func(string) bool {
	outputs := make(map[string]bool)
	for _, p := range []string{opts.out, opts.png} {
		if p != "" {
			outputs[absPath(p)] = true
		}
	}
	return func(p string) bool {
		if outputs[absPath(p)] {
			return false
		}
		return strings.EqualFold(filepath.Ext(p), ".tengo") || assets.IsImageFile(p)
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func build(ctx context.Context, cfg config.Config, opts options) error {
	src, err := loadScript(opts)
	if err != nil {
		return err
	}

	ed, err := tilemap.NewEditor(cfg.Map)
	if err != nil {
		return err
	}
	img, err := loadTileset(opts.tileset)
	if err != nil {
		return err
	}
	defer ed.Registry().Close()
	if _, err := ed.LoadTileset(img.Name, img, cfg.TilesetTileSize); err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	if err := script.Run(runCtx, ed, src, script.Options{Vars: map[string]any{"seed": opts.seed}}); err != nil {
		return err
	}

	if err := writeJSON(ed.Document(), opts.out); err != nil {
		return err
	}
	log.Info().Str("path", opts.out).Msg("saved map")

	if opts.png != "" {
		if err := writePNG(ed, img, cfg.TilesetTileSize, opts.png); err != nil {
			return err
		}
		log.Info().Str("path", opts.png).Msg("saved preview")
	}
	return nil
}

func loadScript(opts options) ([]byte, error) {
	if opts.script != "" {
		b, err := os.ReadFile(opts.script)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		return b, nil
	}
	b, err := script.LoadExample(opts.example)
	if err != nil {
		return nil, fmt.Errorf("load example %q: %w", opts.example, err)
	}
	return b, nil
}

func loadTileset(path string) (*assets.Image, error) {
	if path == "" {
		return assets.LoadDefaultTileset()
	}
	return assets.DecodeFile(path)
}

func writeJSON(doc *tilemap.Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.WriteExport(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePNG(ed *tilemap.Editor, img *assets.Image, tileSize int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	opts := render.DefaultOptions()
	opts.SourceTileSize = tileSize
	if err := render.WritePNG(f, ed.Document().Export(), img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
