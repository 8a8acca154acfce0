package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilepaint/tilemap"
)

var (
	canvasBackground = color.RGBA{24, 24, 28, 255}
	mapBackground    = color.RGBA{48, 48, 56, 255}
	gridColor        = color.RGBA{200, 200, 200, 64}
	missingTileColor = color.RGBA{255, 0, 255, 200}
	selectionColor   = color.RGBA{80, 180, 255, 90}
	dragRectColor    = color.RGBA{255, 230, 80, 70}
)

func (g *EditorGame) Draw(screen *ebiten.Image) {
	if g.gridPixel == nil {
		g.gridPixel = ebiten.NewImage(1, 1)
		g.gridPixel.Fill(color.White)
	}
	screen.Fill(canvasBackground)

	snap := g.ed.Snapshot()
	cfg := snap.Config
	ts := float64(cfg.TileSize)

	g.fillRect(screen, 0, 0, float64(cfg.Width)*ts, float64(cfg.Height)*ts, mapBackground)

	// Layers are stored bottom to top.
	for _, l := range snap.Layers {
		if !l.Visible {
			continue
		}
		for _, t := range l.Tiles {
			g.drawTile(screen, cfg, t.X, t.Y, t.TileX, t.TileY, 1)
		}
	}

	for _, c := range snap.Selection {
		g.fillRect(screen, float64(c.X)*ts, float64(c.Y)*ts, ts, ts, selectionColor)
	}
	if r := snap.DragRect; r != nil {
		g.fillRect(screen, float64(r.X0)*ts, float64(r.Y0)*ts, float64(r.X1-r.X0+1)*ts, float64(r.Y1-r.Y0+1)*ts, dragRectColor)
	}

	g.drawGrid(screen, cfg)
	g.drawCursorPreview(screen, snap)

	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

// drawTile draws source tile (tx, ty) at map cell (x, y).
func (g *EditorGame) drawTile(screen *ebiten.Image, cfg tilemap.MapConfig, x, y, tx, ty int, alpha float32) {
	ts := float64(cfg.TileSize)
	if g.tileset == nil || !g.tileset.info.Contains(tx, ty) {
		c := missingTileColor
		c.A = uint8(float32(c.A) * alpha)
		g.fillRect(screen, float64(x)*ts, float64(y)*ts, ts, ts, c)
		return
	}
	srcTS := g.tileset.info.TileSize
	sub := g.tileset.img.SubImage(image.Rect(tx*srcTS, ty*srcTS, (tx+1)*srcTS, (ty+1)*srcTS)).(*ebiten.Image)
	sx, sy := g.view.toScreen(float64(x)*ts, float64(y)*ts)
	scale := ts / float64(srcTS) * g.view.zoom
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(sub, op)
}

// fillRect fills a rectangle given in map pixels.
func (g *EditorGame) fillRect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	sx, sy := g.view.toScreen(x, y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w*g.view.zoom, h*g.view.zoom)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	screen.DrawImage(g.gridPixel, op)
}

func (g *EditorGame) drawGrid(screen *ebiten.Image, cfg tilemap.MapConfig) {
	ts := float64(cfg.TileSize)
	w := float64(cfg.Width) * ts
	h := float64(cfg.Height) * ts
	line := 1 / g.view.zoom
	for x := 0; x <= cfg.Width; x++ {
		g.fillRect(screen, float64(x)*ts, 0, line, h, gridColor)
	}
	for y := 0; y <= cfg.Height; y++ {
		g.fillRect(screen, 0, float64(y)*ts, w, line, gridColor)
	}
}

// drawCursorPreview ghosts the selected source tile under the cursor while
// the place tool is active.
func (g *EditorGame) drawCursorPreview(screen *ebiten.Image, snap tilemap.Snapshot) {
	if snap.Tool != tilemap.ToolPlace || snap.SourceTile == nil {
		return
	}
	cx, cy := ebiten.CursorPosition()
	if cx < g.view.originX {
		return
	}
	cell := g.view.cellAt(snap.Config, cx, cy)
	if !snap.Config.InBounds(cell.X, cell.Y) {
		return
	}
	g.drawTile(screen, snap.Config, cell.X, cell.Y, snap.SourceTile.X, snap.SourceTile.Y, 0.5)
}
