package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/milk9111/tilepaint/tilemap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// TileSource hands out single tileset tiles with bounds starting at the
// origin.
type TileSource interface {
	Tile(x, y, tileSize int) (*image.RGBA, bool)
}

type Options struct {
	// SourceTileSize is the tile size of the tileset grid. Zero means the
	// map tile size.
	SourceTileSize int
	Background     color.Color
	Grid           bool
	GridColor      color.Color
	IncludeHidden  bool
	Caption        string
}

func DefaultOptions() Options {
	return Options{
		SourceTileSize: tilemap.DefaultTilesetTileSize,
		GridColor:      color.NRGBA{R: 255, G: 255, B: 255, A: 60},
	}
}

// Map composites the visible layers of exp bottom to top. Tiles the source
// cannot provide are drawn as magenta placeholders.
func Map(exp tilemap.Export, src TileSource, opts Options) image.Image {
	return draw(exp, src, opts).Image()
}

func WritePNG(w io.Writer, exp tilemap.Export, src TileSource, opts Options) error {
	if err := draw(exp, src, opts).EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

func draw(exp tilemap.Export, src TileSource, opts Options) *gg.Context {
	ts := exp.Config.TileSize
	srcTS := opts.SourceTileSize
	if srcTS <= 0 {
		srcTS = ts
	}
	dc := gg.NewContext(exp.Config.Width*ts, exp.Config.Height*ts)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}

	cache := make(map[tilemap.SourceTile]*image.RGBA)
	scale := float64(ts) / float64(srcTS)
	for _, l := range exp.Layers {
		if !l.Visible && !opts.IncludeHidden {
			continue
		}
		for _, t := range l.Tiles {
			key := tilemap.SourceTile{X: t.TileX, Y: t.TileY}
			tile, ok := cache[key]
			if !ok && src != nil {
				tile, _ = src.Tile(t.TileX, t.TileY, srcTS)
				cache[key] = tile
			}
			x, y := float64(t.X*ts), float64(t.Y*ts)
			if tile == nil {
				dc.SetRGBA255(255, 0, 255, 255)
				dc.DrawRectangle(x, y, float64(ts), float64(ts))
				dc.Fill()
				continue
			}
			dc.Push()
			dc.Translate(x, y)
			dc.Scale(scale, scale)
			dc.DrawImage(tile, 0, 0)
			dc.Pop()
		}
	}

	if opts.Grid {
		drawGrid(dc, exp.Config, opts.GridColor)
	}
	if opts.Caption != "" {
		drawCaption(dc, opts.Caption)
	}
	return dc
}

func drawGrid(dc *gg.Context, cfg tilemap.MapConfig, c color.Color) {
	if c == nil {
		c = color.White
	}
	dc.SetColor(c)
	dc.SetLineWidth(1)
	w, h := float64(cfg.Width*cfg.TileSize), float64(cfg.Height*cfg.TileSize)
	for x := 0; x <= cfg.Width; x++ {
		px := float64(x*cfg.TileSize) + 0.5
		dc.DrawLine(px, 0, px, h)
	}
	for y := 0; y <= cfg.Height; y++ {
		py := float64(y*cfg.TileSize) + 0.5
		dc.DrawLine(0, py, w, py)
	}
	dc.Stroke()
}

func drawCaption(dc *gg.Context, caption string) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return
	}
	size := 12.0
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	tw, _ := dc.MeasureString(caption)
	dc.SetRGBA255(0, 0, 0, 160)
	dc.DrawRectangle(0, 0, tw+8, size+8)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawString(caption, 4, size+2)
}
